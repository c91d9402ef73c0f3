package dto

import (
	"encoding/json"
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	m "roadmapguide_backend/internals/features/assessment/catalog/model"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateQuestionRequest struct {
	StrategicGoal string   `json:"strategic_goal" validate:"required,min=3,max=200"`
	MajorArea     string   `json:"major_cnapp_area" validate:"required,min=2,max=100"`
	Text          string   `json:"text" validate:"required,min=5,max=500"`
	Options       []string `json:"options" validate:"omitempty,dive,min=1"`
	QuestionType  string   `json:"question_type" validate:"omitempty,oneof=single_choice multiple_choice text"`
	Required      *bool    `json:"required"`

	Rules *m.QuestionRules `json:"validation_rules"`

	WeightingScore string `json:"weighting_score" validate:"omitempty,max=20"`
	Order          int    `json:"order" validate:"gte=0"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.StrategicGoal = strings.TrimSpace(r.StrategicGoal)
	r.MajorArea = strings.TrimSpace(r.MajorArea)
	r.Text = strings.TrimSpace(r.Text)
	for i, opt := range r.Options {
		r.Options[i] = strings.TrimSpace(opt)
	}
	if r.QuestionType == "" {
		r.QuestionType = m.TypeSingleChoice
	}
}

func (r CreateQuestionRequest) ToModel() (m.QuestionModel, error) {
	required := true
	if r.Required != nil {
		required = *r.Required
	}

	var rules datatypes.JSON
	if r.Rules != nil {
		blob, err := json.Marshal(r.Rules)
		if err != nil {
			return m.QuestionModel{}, err
		}
		rules = blob
	}

	return m.QuestionModel{
		StrategicGoal:  r.StrategicGoal,
		MajorArea:      r.MajorArea,
		Text:           r.Text,
		Options:        pq.StringArray(r.Options),
		QuestionType:   r.QuestionType,
		Required:       required,
		Rules:          rules,
		WeightingScore: r.WeightingScore,
		Order:          r.Order,
	}, nil
}

/* =========================================================
   UPDATE (partial)
   ========================================================= */

type UpdateQuestionRequest struct {
	StrategicGoal *string  `json:"strategic_goal" validate:"omitempty,min=3,max=200"`
	MajorArea     *string  `json:"major_cnapp_area" validate:"omitempty,min=2,max=100"`
	Text          *string  `json:"text" validate:"omitempty,min=5,max=500"`
	Options       []string `json:"options" validate:"omitempty,dive,min=1"`
	QuestionType  *string  `json:"question_type" validate:"omitempty,oneof=single_choice multiple_choice text"`
	Required      *bool    `json:"required"`

	Rules *m.QuestionRules `json:"validation_rules"`

	WeightingScore *string `json:"weighting_score" validate:"omitempty,max=20"`
	Order          *int    `json:"order" validate:"omitempty,gte=0"`
}

func (r UpdateQuestionRequest) Apply(model *m.QuestionModel) error {
	if r.StrategicGoal != nil {
		model.StrategicGoal = strings.TrimSpace(*r.StrategicGoal)
	}
	if r.MajorArea != nil {
		model.MajorArea = strings.TrimSpace(*r.MajorArea)
	}
	if r.Text != nil {
		model.Text = strings.TrimSpace(*r.Text)
	}
	if r.Options != nil {
		opts := make([]string, 0, len(r.Options))
		for _, opt := range r.Options {
			opts = append(opts, strings.TrimSpace(opt))
		}
		model.Options = pq.StringArray(opts)
	}
	if r.QuestionType != nil {
		model.QuestionType = *r.QuestionType
	}
	if r.Required != nil {
		model.Required = *r.Required
	}
	if r.Rules != nil {
		blob, err := json.Marshal(r.Rules)
		if err != nil {
			return err
		}
		model.Rules = blob
	}
	if r.WeightingScore != nil {
		model.WeightingScore = *r.WeightingScore
	}
	if r.Order != nil {
		model.Order = *r.Order
	}
	return nil
}
