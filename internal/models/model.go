package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all persisted resources.
type DefaultModel struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	CreatedAt time.Time       `json:"createdAt" example:"2025-04-02T19:28:44.491514Z"`                               // Time the resource was created
	UpdatedAt time.Time       `json:"updatedAt" example:"2025-04-17T20:14:01.048145Z"`                               // Last time the resource was updated
	DeletedAt *gorm.DeletedAt `json:"-" gorm:"index"`
}

// AfterFind sets the timezone of the timestamps to UTC.
//
// They are stored in UTC, but read back as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates the UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
