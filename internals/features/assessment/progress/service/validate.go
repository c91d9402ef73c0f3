package service

import (
	"fmt"
	"regexp"
	"strings"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
)

// ValidateAnswer checks a normalized answer against a question's option set
// and rules. Pure: no database access, no side effects. The bool is the
// is_valid flag stored on the response; the message accompanies invalid
// answers.
func ValidateAnswer(q *catalogModel.QuestionModel, a responseDTO.Answer) (bool, *string) {
	if a.IsEmpty() {
		if !q.Required {
			return true, nil
		}
		// an empty selection on a multiple-choice question reports the
		// min-count rule rather than the generic empty message
		if q.QuestionType == catalogModel.TypeMultipleChoice {
			if rules, err := q.DecodeRules(); err == nil && rules.MinCount > 0 {
				return invalid(fmt.Sprintf("Please select at least %d option(s)", rules.MinCount))
			}
		}
		return invalid("Answer cannot be empty")
	}

	switch q.QuestionType {
	case catalogModel.TypeMultipleChoice:
		return validateMultiChoice(q, a)
	case catalogModel.TypeText:
		return validateText(q, a)
	default:
		return validateSingleChoice(q, a)
	}
}

func validateSingleChoice(q *catalogModel.QuestionModel, a responseDTO.Answer) (bool, *string) {
	if a.Kind != responseDTO.AnswerSingle || a.Index == nil {
		return invalid("Invalid option(s) selected")
	}
	if *a.Index < 0 || *a.Index >= len(q.Options) {
		return invalid("Invalid option(s) selected")
	}
	return true, nil
}

func validateMultiChoice(q *catalogModel.QuestionModel, a responseDTO.Answer) (bool, *string) {
	if a.Kind != responseDTO.AnswerMulti {
		return invalid("Invalid option(s) selected")
	}
	for _, title := range a.Selections {
		if !q.HasOption(title) {
			return invalid("Invalid option(s) selected")
		}
	}

	rules, err := q.DecodeRules()
	if err != nil {
		return invalid("Answer format is invalid")
	}
	if rules.MinCount > 0 && len(a.Selections) < rules.MinCount {
		return invalid(fmt.Sprintf("Please select at least %d option(s)", rules.MinCount))
	}
	if rules.MaxCount > 0 && len(a.Selections) > rules.MaxCount {
		return invalid(fmt.Sprintf("Please select no more than %d option(s)", rules.MaxCount))
	}
	return true, nil
}

func validateText(q *catalogModel.QuestionModel, a responseDTO.Answer) (bool, *string) {
	if a.Kind != responseDTO.AnswerText {
		return invalid("Answer format is invalid")
	}
	text := strings.TrimSpace(a.Text)

	rules, err := q.DecodeRules()
	if err != nil {
		return invalid("Answer format is invalid")
	}
	if rules.MinLength > 0 && len(text) < rules.MinLength {
		return invalid(fmt.Sprintf("Answer must be at least %d characters long", rules.MinLength))
	}
	if rules.MaxLength > 0 && len(text) > rules.MaxLength {
		return invalid(fmt.Sprintf("Answer must not exceed %d characters", rules.MaxLength))
	}
	if rules.Pattern != "" {
		re, err := regexp.Compile(rules.Pattern)
		if err != nil || !re.MatchString(text) {
			return invalid("Answer format is invalid")
		}
	}
	return true, nil
}

func invalid(msg string) (bool, *string) {
	return false, &msg
}
