package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SetupModel is one engagement record pairing an advisor with a security
// leader. Created once per engagement, never updated, queried by recency.
// Responses hang off the setup, not the user.
type SetupModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	AdvisorName  string `gorm:"size:100;not null" json:"advisor_name"`
	AdvisorEmail string `gorm:"size:120;not null" json:"advisor_email"`

	LeaderName     string `gorm:"size:100;not null" json:"leader_name"`
	LeaderEmail    string `gorm:"size:120;not null;index" json:"leader_email"`
	LeaderEmployer string `gorm:"size:200;not null" json:"leader_employer"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *SetupModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (SetupModel) TableName() string {
	return "setups"
}
