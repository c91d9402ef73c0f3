package dto

import (
	"strings"

	"github.com/google/uuid"

	m "roadmapguide_backend/internals/features/assessment/setup/model"
)

type CreateSetupRequest struct {
	AdvisorName  string `json:"advisor_name" validate:"required,min=2,max=100"`
	AdvisorEmail string `json:"advisor_email" validate:"required,email,max=120"`

	LeaderName     string `json:"leader_name" validate:"required,min=2,max=100"`
	LeaderEmail    string `json:"leader_email" validate:"required,email,max=120"`
	LeaderEmployer string `json:"leader_employer" validate:"required,min=2,max=200"`
}

func (r *CreateSetupRequest) Normalize() {
	r.AdvisorName = strings.TrimSpace(r.AdvisorName)
	r.AdvisorEmail = strings.ToLower(strings.TrimSpace(r.AdvisorEmail))
	r.LeaderName = strings.TrimSpace(r.LeaderName)
	r.LeaderEmail = strings.ToLower(strings.TrimSpace(r.LeaderEmail))
	r.LeaderEmployer = strings.TrimSpace(r.LeaderEmployer)
}

func (r CreateSetupRequest) ToModel(userID uuid.UUID) m.SetupModel {
	return m.SetupModel{
		UserID:         userID,
		AdvisorName:    r.AdvisorName,
		AdvisorEmail:   r.AdvisorEmail,
		LeaderName:     r.LeaderName,
		LeaderEmail:    r.LeaderEmail,
		LeaderEmployer: r.LeaderEmployer,
	}
}
