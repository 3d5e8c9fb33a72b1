package models

import (
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Phase is the stage of a budget year a session is in.
type Phase string

const (
	PhaseBriefing Phase = "briefing" // The district was presented, the player has not accepted yet
	PhasePlaying  Phase = "playing"  // Cards are being sorted
	PhaseJudged   Phase = "judged"   // The board has voted on the submission
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseBriefing, PhasePlaying, PhaseJudged:
		return true
	}
	return false
}

// Session is one playthrough of the game.
//
// The decision ledger is persisted as its full history and cursor, the
// current hand is always History[HistoryIndex].
type Session struct {
	DefaultModel
	ScenarioID   string                   `json:"scenarioId" example:"urban"`
	Title        string                   `json:"title" example:"Urban / Declining"`
	Description  string                   `json:"description"`
	District     simulation.District      `json:"district" gorm:"embedded;embeddedPrefix:district_"`
	Phase        Phase                    `json:"phase" example:"playing"`
	Base         simulation.GameState     `json:"base" gorm:"serializer:json"`
	Schools      []simulation.School      `json:"schools" gorm:"serializer:json"`
	History      [][]simulation.Card      `json:"-" gorm:"serializer:json"`
	HistoryIndex int                      `json:"-"`
	FundedUnique map[string]bool          `json:"-" gorm:"serializer:json"`
	Narrative    string                   `json:"narrative"`
	Verdict      *simulation.Verdict      `json:"verdict" gorm:"serializer:json"`
	Chat         []simulation.ChatMessage `json:"chat" gorm:"serializer:json"`
	DataSource   string                   `json:"dataSource" example:"US Census Bureau (F-33 Survey, 2021)"`
	DatasetURL   string                   `json:"datasetUrl" example:"https://data.example.gov/d/abcd-1234"`
}

func (s *Session) BeforeSave(_ *gorm.DB) error {
	if !s.Phase.Valid() {
		return ErrInvalidPhase
	}
	return nil
}

// FindSession loads a session by its ID.
func FindSession(db *gorm.DB, id uuid.UUID) (Session, error) {
	var s Session
	err := db.First(&s, "id = ?", id).Error
	return s, err
}

// YearResults returns the finished years of the session in order.
func (s Session) YearResults(db *gorm.DB) ([]YearResult, error) {
	var results []YearResult
	err := db.Where(&YearResult{SessionID: s.ID}).Order("year ASC").Find(&results).Error
	return results, err
}
