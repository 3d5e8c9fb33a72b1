package models

import (
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
)

// YearResult is the record of a budget year the board approved.
type YearResult struct {
	DefaultModel
	SessionID uuid.UUID            `json:"sessionId" gorm:"type:uuid;index" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Session   Session              `json:"-"`
	Year      int                  `json:"year" example:"2025"`
	Verdict   simulation.Verdict   `json:"verdict" gorm:"serializer:json"`
	Narrative string               `json:"narrative"`
	State     simulation.GameState `json:"state" gorm:"serializer:json"` // Derived state at the end of the year
	Decisions []simulation.Card    `json:"decisions" gorm:"serializer:json"`
}
