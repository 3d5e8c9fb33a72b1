package simulation

import (
	"github.com/shopspring/decimal"
)

// Selection is the disposition a player has chosen for a card in the current year.
type Selection string

const (
	SelectionNone    Selection = "None"
	SelectionFund    Selection = "Fund"
	SelectionOneTime Selection = "OneTime"
	SelectionReject  Selection = "Reject"
)

// Valid reports whether s is one of the known selections.
func (s Selection) Valid() bool {
	switch s {
	case SelectionNone, SelectionFund, SelectionOneTime, SelectionReject:
		return true
	}
	return false
}

// Funded reports whether the selection spends money on the card.
func (s Selection) Funded() bool {
	return s == SelectionFund || s == SelectionOneTime
}

type RiskFactor string

const (
	RiskLow    RiskFactor = "Low"
	RiskMedium RiskFactor = "Medium"
	RiskHigh   RiskFactor = "High"
)

// TrustPenalty is the community trust lost when a card with this risk is funded.
func (r RiskFactor) TrustPenalty() int {
	switch r {
	case RiskHigh:
		return 10
	case RiskMedium:
		return 5
	}
	return 0
}

// Card is a budget line item under consideration.
//
// A positive cost increases spending, a negative cost is a savings or revenue measure.
type Card struct {
	ID              string          `json:"id" yaml:"id" example:"u_c2"`
	Title           string          `json:"title" yaml:"title" example:"Hire Reading Specialists"`
	Description     string          `json:"description" yaml:"description" example:"Add 5 FTE literacy coaches for Title I schools."`
	Cost            decimal.Decimal `json:"cost" yaml:"cost" example:"600000"`
	StudentsServed  int             `json:"studentsServed" yaml:"studentsServed" example:"1500"`
	IsRecurring     bool            `json:"isRecurring" yaml:"isRecurring"`
	RiskFactor      RiskFactor      `json:"riskFactor" yaml:"riskFactor" example:"Low"`
	RiskDescription string          `json:"riskDescription" yaml:"riskDescription" example:"High academic ROI."`
	Category        string          `json:"category" yaml:"category" example:"Personnel"`
	Effects         []Effect        `json:"effects" yaml:"effects"`
	Selected        Selection       `json:"selected" yaml:"-" example:"None"`
}

// IsSavings reports whether the card saves or raises money instead of spending it.
func (c Card) IsSavings() bool {
	return c.Cost.LessThanOrEqual(decimal.Zero)
}

// HasEffect reports whether the card carries the effect tag.
func (c Card) HasEffect(e Effect) bool {
	for _, have := range c.Effects {
		if have == e {
			return true
		}
	}
	return false
}

// PoolCard is a card template in the static catalog.
type PoolCard struct {
	Card           `yaml:",inline"`
	ValidScenarios []string `json:"validScenarios" yaml:"validScenarios" example:"urban,rural"`
	Unique         bool     `json:"unique" yaml:"unique"` // Can only be funded once per playthrough
}

// ValidFor reports whether the card may be proposed in the scenario.
func (p PoolCard) ValidFor(scenarioID string) bool {
	for _, s := range p.ValidScenarios {
		if s == ScenarioAll || s == scenarioID {
			return true
		}
	}
	return false
}

type Revenue struct {
	Local          decimal.Decimal `json:"local" yaml:"local" example:"45000000"`
	State          decimal.Decimal `json:"state" yaml:"state" example:"35000000"`
	FederalOneTime decimal.Decimal `json:"federalOneTime" yaml:"federalOneTime" example:"3000000"`
}

type Expenditures struct {
	Personnel  decimal.Decimal `json:"personnel" yaml:"personnel" example:"68000000"`
	Operations decimal.Decimal `json:"operations" yaml:"operations" example:"10000000"`
	Fixed      decimal.Decimal `json:"fixed" yaml:"fixed" example:"5000000"`
}

// GameState is the financial and political state of the district for a year.
type GameState struct {
	Year           int             `json:"year" yaml:"year" example:"2025"`
	Enrollment     int             `json:"enrollment" yaml:"enrollment" example:"5000"`
	Revenue        Revenue         `json:"revenue" yaml:"revenue"`
	Expenditures   Expenditures    `json:"expenditures" yaml:"expenditures"`
	FundBalance    decimal.Decimal `json:"fundBalance" yaml:"fundBalance" example:"4000000"`
	StructuralGap  decimal.Decimal `json:"structuralGap" yaml:"structuralGap" example:"-3000000"` // Negative is a deficit
	CommunityTrust int             `json:"communityTrust" yaml:"communityTrust" example:"75"`     // 0 to 100
}

type SchoolType string

const (
	SchoolHigh       SchoolType = "High"
	SchoolMiddle     SchoolType = "Middle"
	SchoolElementary SchoolType = "Elementary"
)

type AcademicScores struct {
	Math int `json:"math" yaml:"math" example:"42"`
	ELA  int `json:"ela" yaml:"ela" example:"54"`
}

type Staffing struct {
	Senior int `json:"senior" yaml:"senior" example:"60"`
	Junior int `json:"junior" yaml:"junior" example:"20"`
}

type School struct {
	ID               string          `json:"id" yaml:"id" example:"s1"`
	Name             string          `json:"name" yaml:"name" example:"North High"`
	Type             SchoolType      `json:"type" yaml:"type" example:"High"`
	Enrollment       int             `json:"enrollment" yaml:"enrollment" example:"1200"`
	SpendingPerPupil decimal.Decimal `json:"spendingPerPupil" yaml:"spendingPerPupil" example:"15500"`
	AcademicOutcome  AcademicScores  `json:"academicOutcome" yaml:"academicOutcome"`
	PovertyRate      float64         `json:"povertyRate" yaml:"povertyRate" example:"0.75"`
	Principal        string          `json:"principal" yaml:"principal" example:"M. Ross"`
	Staffing         Staffing        `json:"staffing" yaml:"staffing"`
}

// District identifies the real school district a session is personalized to.
type District struct {
	Name     string `json:"name" example:"Springfield Public Schools"`
	Location string `json:"location" example:"Springfield, IL"`
	State    string `json:"state" example:"Illinois"`
}

// Verdict is the school board's judgment of a submitted budget.
type Verdict struct {
	Approved  bool   `json:"approved"`
	VoteCount string `json:"voteCount" example:"5-2"`
	Feedback  string `json:"feedback" example:"The board appreciates the focus on literacy."`
}

const (
	RoleUser  = "user"
	RoleBoard = "model"
)

// ChatMessage is one turn of the conversation with the school board.
type ChatMessage struct {
	Role string `json:"role" example:"model"` // "user" or "model"
	Text string `json:"text" example:"The board appreciates the focus on literacy."`
}
