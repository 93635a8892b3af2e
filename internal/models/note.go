package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:char(36);not null;index" json:"owner_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsTechnical bool      `gorm:"not null;default:false" json:"is_technical"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
