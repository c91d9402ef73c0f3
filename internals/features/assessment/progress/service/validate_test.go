package service

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
)

func mustRules(t *testing.T, rules catalogModel.QuestionRules) datatypes.JSON {
	t.Helper()
	blob, err := json.Marshal(rules)
	require.NoError(t, err)
	return datatypes.JSON(blob)
}

func singleChoiceQuestion() *catalogModel.QuestionModel {
	return &catalogModel.QuestionModel{
		ID:            2,
		StrategicGoal: "Cloud Adoption and Business Alignment",
		Text:          "How mature is your cloud inventory?",
		Options:       pq.StringArray{"None", "Partial", "Complete"},
		QuestionType:  catalogModel.TypeSingleChoice,
		Required:      true,
	}
}

func singleIdx(i int) responseDTO.Answer {
	return responseDTO.Answer{Kind: responseDTO.AnswerSingle, Index: &i}
}

func TestValidateAnswerEmptyRequired(t *testing.T) {
	q := singleChoiceQuestion()
	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerSingle})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Answer cannot be empty", *msg)
}

func TestValidateAnswerEmptyOptional(t *testing.T) {
	q := singleChoiceQuestion()
	q.Required = false
	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerSingle})
	assert.True(t, ok)
	assert.Nil(t, msg)
}

func TestValidateSingleChoiceBounds(t *testing.T) {
	q := singleChoiceQuestion()

	cases := []struct {
		name  string
		index int
		valid bool
	}{
		{"first option", 0, true},
		{"last option", 2, true},
		{"past last option", 3, false},
		{"negative", -1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := ValidateAnswer(q, singleIdx(tc.index))
			assert.Equal(t, tc.valid, ok)
			if !tc.valid {
				require.NotNil(t, msg)
				assert.Equal(t, "Invalid option(s) selected", *msg)
			}
		})
	}
}

func TestValidateSingleChoiceWrongKind(t *testing.T) {
	q := singleChoiceQuestion()
	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: []string{"None"}})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Invalid option(s) selected", *msg)
}

func TestValidateMultiChoiceCounts(t *testing.T) {
	q := &catalogModel.QuestionModel{
		ID:           catalogModel.SelectionQuestionID,
		Options:      pq.StringArray{"A", "B", "C", "D"},
		QuestionType: catalogModel.TypeMultipleChoice,
		Required:     true,
		Rules:        mustRules(t, catalogModel.QuestionRules{MinCount: 1, MaxCount: 3}),
	}

	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: []string{"A", "B"}})
	assert.True(t, ok)
	assert.Nil(t, msg)

	// an empty multi answer reports the min-count rule, not the generic
	// empty message
	ok, msg = ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Please select at least 1 option(s)", *msg)

	ok, msg = ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: []string{"A", "B", "C", "D"}})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Please select no more than 3 option(s)", *msg)
}

func TestValidateMultiChoiceMinCountOnOptional(t *testing.T) {
	q := &catalogModel.QuestionModel{
		Options:      pq.StringArray{"A", "B", "C"},
		QuestionType: catalogModel.TypeMultipleChoice,
		Required:     true,
		Rules:        mustRules(t, catalogModel.QuestionRules{MinCount: 2}),
	}
	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: []string{"A"}})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Please select at least 2 option(s)", *msg)
}

func TestValidateMultiChoiceMembership(t *testing.T) {
	q := &catalogModel.QuestionModel{
		Options:      pq.StringArray{"A", "B"},
		QuestionType: catalogModel.TypeMultipleChoice,
		Required:     true,
	}
	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerMulti, Selections: []string{"A", "Z"}})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Invalid option(s) selected", *msg)
}

func TestValidateTextRules(t *testing.T) {
	q := &catalogModel.QuestionModel{
		QuestionType: catalogModel.TypeText,
		Required:     true,
		Rules:        mustRules(t, catalogModel.QuestionRules{MinLength: 5, MaxLength: 10}),
	}

	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerText, Text: "hi"})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Answer must be at least 5 characters long", *msg)

	ok, msg = ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerText, Text: "way too long answer"})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Answer must not exceed 10 characters", *msg)

	ok, msg = ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerText, Text: "just right"})
	assert.True(t, ok)
	assert.Nil(t, msg)
}

func TestValidateTextPattern(t *testing.T) {
	q := &catalogModel.QuestionModel{
		QuestionType: catalogModel.TypeText,
		Required:     true,
		Rules:        mustRules(t, catalogModel.QuestionRules{Pattern: `^[0-9]+$`}),
	}

	ok, msg := ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerText, Text: "12345"})
	assert.True(t, ok)
	assert.Nil(t, msg)

	ok, msg = ValidateAnswer(q, responseDTO.Answer{Kind: responseDTO.AnswerText, Text: "abc"})
	assert.False(t, ok)
	require.NotNil(t, msg)
	assert.Equal(t, "Answer format is invalid", *msg)
}
