package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity, timestamps and soft-delete marker shared by every
// catalog entity. The ID is generated on insert and never taken from callers.
type Base struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at" swaggertype:"string"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Base) GetID() uuid.UUID {
	return b.ID
}
