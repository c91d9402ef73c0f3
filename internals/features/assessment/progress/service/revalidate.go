package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	progressDTO "roadmapguide_backend/internals/features/assessment/progress/dto"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
)

// RevalidateAll re-runs validation for every stored response of a setup
// against the current question catalog, and reports required questions under
// the selected initiatives that have no response at all. Rows whose verdict
// changed are updated in place, so an edited rule set takes effect on old
// answers.
func RevalidateAll(db *gorm.DB, setupID uuid.UUID) (*progressDTO.ValidateAllResponse, error) {
	var responses []responseModel.ResponseModel
	if err := db.Where("setup_id = ?", setupID).
		Order("question_id ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	result := &progressDTO.ValidateAllResponse{Invalid: []progressDTO.ValidationIssue{}}
	answered := make(map[uint]struct{}, len(responses))

	for i := range responses {
		resp := &responses[i]
		result.Total++
		answered[resp.QuestionID] = struct{}{}

		var question catalogModel.QuestionModel
		if err := db.First(&question, "id = ?", resp.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// question was removed from the catalog; the orphaned
				// response no longer counts as valid
				markVerdict(db, resp, false, strPtr("Question not found"))
				result.Invalid = append(result.Invalid, progressDTO.ValidationIssue{
					QuestionID: resp.QuestionID,
					Message:    "Question not found",
				})
				continue
			}
			return nil, err
		}

		answer, err := responseDTO.DecodeAnswer(resp.Answer)
		if err != nil {
			markVerdict(db, resp, false, strPtr("Answer format is invalid"))
			result.Invalid = append(result.Invalid, progressDTO.ValidationIssue{
				QuestionID: resp.QuestionID,
				Message:    "Answer format is invalid",
			})
			continue
		}

		isValid, message := ValidateAnswer(&question, answer)
		markVerdict(db, resp, isValid, message)
		if isValid {
			result.Valid++
		} else {
			msg := ""
			if message != nil {
				msg = *message
			}
			result.Invalid = append(result.Invalid, progressDTO.ValidationIssue{
				QuestionID: resp.QuestionID,
				Message:    msg,
			})
		}
	}

	selected, err := SelectedInitiatives(db, setupID)
	if err != nil {
		return nil, err
	}
	if len(selected) > 0 {
		var required []catalogModel.QuestionModel
		if err := db.Where("strategic_goal IN ? AND id <> ? AND required = ?",
			selected, catalogModel.SelectionQuestionID, true).
			Order("id ASC").
			Find(&required).Error; err != nil {
			return nil, err
		}
		for _, q := range required {
			if _, ok := answered[q.ID]; ok {
				continue
			}
			result.Total++
			result.Invalid = append(result.Invalid, progressDTO.ValidationIssue{
				QuestionID: q.ID,
				Message:    "This question requires an answer",
			})
		}
	}

	return result, nil
}

func markVerdict(db *gorm.DB, resp *responseModel.ResponseModel, isValid bool, message *string) {
	if resp.IsValid == isValid && equalMsg(resp.ValidationMessage, message) {
		return
	}
	db.Model(resp).Updates(map[string]interface{}{
		"is_valid":           isValid,
		"validation_message": message,
	})
}

func equalMsg(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }
