package dto

import (
	"strings"

	m "roadmapguide_backend/internals/features/assessment/catalog/model"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateInitiativeRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required"`
	Order       int    `json:"order" validate:"gte=0"`
}

func (r *CreateInitiativeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateInitiativeRequest) ToModel() m.InitiativeModel {
	return m.InitiativeModel{
		Title:       r.Title,
		Description: r.Description,
		Order:       r.Order,
	}
}

/* =========================================================
   UPDATE (partial)
   ========================================================= */

type UpdateInitiativeRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
}

func (r UpdateInitiativeRequest) Apply(model *m.InitiativeModel) {
	if r.Title != nil {
		model.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		model.Description = strings.TrimSpace(*r.Description)
	}
	if r.Order != nil {
		model.Order = *r.Order
	}
}
