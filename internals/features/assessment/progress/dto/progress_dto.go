package dto

import "encoding/json"

type SaveAnswerRequest struct {
	QuestionID uint            `json:"question_id" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
}

type SelectInitiativesRequest struct {
	Initiatives []string `json:"initiatives" validate:"required,min=1,max=3,dive,required"`
}

// SavedAnswerItem is one row of the saved-answers map sent to the client so
// it can rehydrate the form.
type SavedAnswerItem struct {
	QuestionID        uint            `json:"question_id"`
	Answer            json.RawMessage `json:"answer"`
	IsValid           bool            `json:"is_valid"`
	ValidationMessage *string         `json:"validation_message,omitempty"`
}

type ValidationIssue struct {
	QuestionID uint   `json:"question_id"`
	Message    string `json:"message"`
}

type ValidateAllResponse struct {
	Total   int               `json:"total"`
	Valid   int               `json:"valid"`
	Invalid []ValidationIssue `json:"invalid"`
}
