package v1

import (
	ez_uuid "github.com/edunomics/superintendent/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type QueryScenario struct {
	Scenario string `form:"scenario" example:"urban"` // ID of the scenario
}
