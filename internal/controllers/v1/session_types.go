package v1

import (
	"fmt"

	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SessionCreate starts a session either from a built-in scenario or from a real district.
type SessionCreate struct {
	Scenario string               `json:"scenario" example:"urban"` // ID of a built-in scenario
	District *simulation.District `json:"district"`                 // A real district. Takes precedence over the scenario.
}

type MoveCreate struct {
	Card      string               `json:"card" example:"p_12"`      // ID of the card in the current hand
	Selection simulation.Selection `json:"selection" example:"Fund"` // One of None, Fund, OneTime, Reject
}

type ProposalCreate struct {
	Title     string          `json:"title" example:"Hire reading coaches"`
	Amount    decimal.Decimal `json:"amount" example:"250000"`       // Amount in dollars, always positive
	Type      string          `json:"type" example:"expense"`        // One of expense, savings
	Frequency string          `json:"frequency" example:"recurring"` // One of recurring, onetime
}

func (p ProposalCreate) model() (game.Proposal, error) {
	proposal := game.Proposal{
		Title:  p.Title,
		Amount: p.Amount,
	}

	switch p.Type {
	case "expense":
	case "savings":
		proposal.Savings = true
	default:
		return game.Proposal{}, errProposalType
	}

	switch p.Frequency {
	case "onetime":
	case "recurring":
		proposal.Recurring = true
	default:
		return game.Proposal{}, errProposalFrequency
	}

	return proposal, nil
}

type SubmissionCreate struct {
	Narrative string `json:"narrative" example:"We protect classrooms by closing the under-enrolled annex."` // The budget narrative presented to the board
}

type ChatCreate struct {
	Message string `json:"message" example:"Why did you vote against the arts cut?"` // Question to the board
}

// Session is a session with links to all its actions.
type Session struct {
	game.View
	Links SessionLinks `json:"links"`
}

type SessionLinks struct {
	Self              string `json:"self" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e"`                                 // The session itself
	Accept            string `json:"accept" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/accept"`                        // Accept the briefing
	Moves             string `json:"moves" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/moves"`                          // Sort a card
	Undo              string `json:"undo" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/undo"`                            // Undo the last decision
	Redo              string `json:"redo" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/redo"`                            // Redo the last undone decision
	Proposals         string `json:"proposals" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/proposals"`                  // Add a custom proposal
	NarrativeTemplate string `json:"narrativeTemplate" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/narrative-template"` // Draft narrative for the current decisions
	Submissions       string `json:"submissions" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/submissions"`              // Submit the budget to the board
	Revise            string `json:"revise" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/revise"`                        // Return to the budget after a verdict
	Advance           string `json:"advance" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/advance"`                      // Start the next fiscal year
	Chat              string `json:"chat" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/chat"`                            // Ask the board a question
	Years             string `json:"years" example:"https://example.com/api/v1/sessions/1b1d8e1c-4a4f-4a4b-9c6d-6f5a2a0f1c3e/years"`                          // Results of completed years
}

func newSession(c *gin.Context, view game.View) Session {
	url := fmt.Sprintf("%s/v1/sessions/%s", c.GetString(string(models.DBContextURL)), view.ID)

	return Session{
		View: view,
		Links: SessionLinks{
			Self:              url,
			Accept:            url + "/accept",
			Moves:             url + "/moves",
			Undo:              url + "/undo",
			Redo:              url + "/redo",
			Proposals:         url + "/proposals",
			NarrativeTemplate: url + "/narrative-template",
			Submissions:       url + "/submissions",
			Revise:            url + "/revise",
			Advance:           url + "/advance",
			Chat:              url + "/chat",
			Years:             url + "/years",
		},
	}
}

type SessionResponse struct {
	Data  *Session `json:"data"`                                                    // Data for the session
	Error *string  `json:"error" example:"there is no session matching your query"` // The error, if any occurred
}

type NarrativeTemplate struct {
	Narrative string `json:"narrative" example:"We are investing in Hire reading coaches to support student outcomes."` // Draft narrative
}

type NarrativeTemplateResponse struct {
	Data  *NarrativeTemplate `json:"data"`                                                    // The draft narrative
	Error *string            `json:"error" example:"there is no session matching your query"` // The error, if any occurred
}

type YearListResponse struct {
	Data  []models.YearResult `json:"data"`                                                    // Results of completed years, oldest first
	Error *string             `json:"error" example:"there is no session matching your query"` // The error, if any occurred
}
