package model

import (
	"time"
)

// InitiativeModel is read-only reference data: a strategic focus area the
// user picks 1–3 of before the questionnaire starts.
type InitiativeModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;uniqueIndex" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InitiativeModel) TableName() string {
	return "initiatives"
}
