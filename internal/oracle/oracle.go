// Package oracle generates the content of a game that depends on knowledge about
// real districts: briefings, school rosters and the judgment of the school board.
package oracle

import (
	"context"

	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/simulation"
)

// Oracle is the source of all generated content. Every call can fail, callers
// are expected to fall back to static content.
type Oracle interface {
	// Briefing estimates the archetype and starting state of a real district.
	Briefing(ctx context.Context, district simulation.District) (Briefing, error)

	// DistrictID resolves the 7 digit NCES id of a district.
	DistrictID(ctx context.Context, district simulation.District) (string, error)

	// Roster lists the schools of a district. Known financials are used as facts.
	Roster(ctx context.Context, district simulation.District, financials *opendata.Financials) ([]simulation.School, error)

	// Verdict lets the school board vote on a budget.
	Verdict(ctx context.Context, req VerdictRequest) (simulation.Verdict, error)

	// Chat answers a question of the superintendent after the vote.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// Fact returns a one sentence statistic about school finance.
	Fact(ctx context.Context) (string, error)
}

// Briefing is the generated first look at a real district.
type Briefing struct {
	Archetype    string               `json:"archetype"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	InitialState simulation.GameState `json:"initialState"`
}

// VerdictRequest is everything the board knows when it votes.
type VerdictRequest struct {
	Title       string
	Description string
	State       simulation.GameState // Derived state of the decisions
	Decisions   []simulation.Card
	Narrative   string
}

// ChatRequest is a question to the board after a vote.
type ChatRequest struct {
	Title     string
	Verdict   simulation.Verdict
	State     simulation.GameState
	Decisions []simulation.Card
	History   []simulation.ChatMessage
	Message   string
}
