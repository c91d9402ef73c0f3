package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResponseModel is the only workflow-mutable entity: one row per
// (setup, question). Answer holds the normalized tagged-variant JSON.
// IsValid is recomputed on every write and never trusted from a prior one.
type ResponseModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SetupID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_setup_question,priority:1" json:"setup_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:uniq_setup_question,priority:2" json:"question_id"`

	Answer datatypes.JSON `gorm:"not null" json:"answer"`

	// no column default here: GORM omits zero values on insert, so a
	// default of true would flip a freshly stored invalid answer to valid
	IsValid           bool    `gorm:"not null" json:"is_valid"`
	ValidationMessage *string `gorm:"size:200" json:"validation_message,omitempty"`

	Timestamp time.Time `gorm:"not null;autoUpdateTime" json:"timestamp"`
}

func (ResponseModel) TableName() string {
	return "responses"
}
