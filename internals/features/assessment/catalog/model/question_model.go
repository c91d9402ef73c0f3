package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SelectionQuestionID is the reserved id of the initiative-selection question.
// Its answer (a list of initiative titles) drives which questions count
// toward progress; it is excluded from both progress counts itself.
const SelectionQuestionID uint = 1

// Question types
const (
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeText           = "text"
)

// QuestionRules is the decoded form of the per-question validation rule JSON.
// Choice questions use MinCount/MaxCount, text questions the length/pattern
// fields. Zero values mean "no bound".
type QuestionRules struct {
	MinCount  int    `json:"min_count,omitempty"`
	MaxCount  int    `json:"max_count,omitempty"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// QuestionModel is reference data: one maturity prompt scoped to an
// initiative (StrategicGoal holds the owning initiative title). Options are
// ordered; the stored option index maps to maturity score index+1.
type QuestionModel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	StrategicGoal string         `gorm:"size:200;not null;index" json:"strategic_goal"`
	MajorArea     string         `gorm:"column:major_cnapp_area;size:100;not null" json:"major_cnapp_area"`
	Text          string         `gorm:"size:500;not null" json:"text"`
	Options       pq.StringArray `gorm:"type:text[]" json:"options"`
	QuestionType  string         `gorm:"size:20;not null;default:'single_choice'" json:"question_type"`
	Required      bool           `gorm:"not null" json:"required"`
	Rules         datatypes.JSON `gorm:"column:validation_rules" json:"validation_rules,omitempty"`

	// maturity score range label, e.g. "1-5"
	WeightingScore string `gorm:"size:20" json:"weighting_score,omitempty"`

	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

// DecodeRules unpacks the rule JSON; a missing blob yields zero rules.
func (q *QuestionModel) DecodeRules() (QuestionRules, error) {
	var rules QuestionRules
	if len(q.Rules) == 0 {
		return rules, nil
	}
	err := json.Unmarshal(q.Rules, &rules)
	return rules, err
}

// HasOption reports whether title is one of the question's options.
func (q *QuestionModel) HasOption(title string) bool {
	for _, opt := range q.Options {
		if opt == title {
			return true
		}
	}
	return false
}
