package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresentationModel records one exported roadmap document so repeated
// exports can be listed and deduplicated client side.
type PresentationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SetupID     uuid.UUID `gorm:"type:uuid;not null;index" json:"setup_id"`
	GoogleDocID string    `gorm:"size:128;not null" json:"google_doc_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *PresentationModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (PresentationModel) TableName() string {
	return "presentations"
}

// DocURL is the canonical link for the exported document.
func (p *PresentationModel) DocURL() string {
	return "https://docs.google.com/document/d/" + p.GoogleDocID
}
