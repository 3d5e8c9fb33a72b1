package simulation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Effect tags a card with an academic side effect on schools.
type Effect string

const (
	EffectReadingBoost   Effect = "readingBoost"
	EffectClassSizeBoost Effect = "classSizeBoost"
	EffectTutoringBoost  Effect = "tutoringBoost"
	EffectArtsCut        Effect = "artsCut"
)

// Triggers maps title keywords to the effect they imply.
//
// Catalog cards declare their effects explicitly. Only cards without a catalog
// entry, like custom proposals, get their effects from these keywords.
var Triggers = []struct {
	Word   string
	Effect Effect
}{
	{"Reading", EffectReadingBoost},
	{"Class Size", EffectClassSizeBoost},
	{"Tutoring", EffectTutoringBoost},
	{"Arts", EffectArtsCut},
}

// EffectsForTitle infers effect tags from a card title.
func EffectsForTitle(title string) []Effect {
	effects := make([]Effect, 0)
	for _, t := range Triggers {
		if strings.Contains(title, t.Word) {
			effects = append(effects, t.Effect)
		}
	}
	return effects
}

// Rule adjusts school metrics when a card with its effect has one of the trigger selections.
type Rule struct {
	Effect     Effect
	Selections []Selection
	Applies    func(School) bool // nil applies to every school
	Math       int
	ELA        int
	Spending   decimal.Decimal
}

// Rules is the rule table for ProjectSchools. Rules are additive and evaluated independently.
var Rules = []Rule{
	{
		Effect:     EffectReadingBoost,
		Selections: []Selection{SelectionFund, SelectionOneTime},
		Applies:    func(s School) bool { return s.PovertyRate > 0.6 },
		ELA:        5,
		Spending:   decimal.NewFromInt(200),
	},
	{
		Effect:     EffectClassSizeBoost,
		Selections: []Selection{SelectionFund, SelectionOneTime},
		Math:       2,
		ELA:        2,
		Spending:   decimal.NewFromInt(500),
	},
	{
		Effect:     EffectTutoringBoost,
		Selections: []Selection{SelectionFund, SelectionOneTime},
		Math:       4,
	},
	{
		// Only a recurring cut hurts
		Effect:     EffectArtsCut,
		Selections: []Selection{SelectionFund},
		ELA:        -2,
	},
}

// triggered reports whether any decision fires the rule.
func (r Rule) triggered(decisions []Card) bool {
	for _, d := range decisions {
		if !d.HasEffect(r.Effect) {
			continue
		}
		for _, s := range r.Selections {
			if d.Selected == s {
				return true
			}
		}
	}
	return false
}

// ProjectSchools returns a copy of the schools with the rule table applied for the decisions.
//
// Each rule fires at most once per school, no matter how many cards carry its effect.
func ProjectSchools(schools []School, decisions []Card) []School {
	active := make([]Rule, 0, len(Rules))
	for _, r := range Rules {
		if r.triggered(decisions) {
			active = append(active, r)
		}
	}

	derived := make([]School, 0, len(schools))
	for _, s := range schools {
		for _, r := range active {
			if r.Applies != nil && !r.Applies(s) {
				continue
			}
			s.AcademicOutcome.Math += r.Math
			s.AcademicOutcome.ELA += r.ELA
			s.SpendingPerPupil = s.SpendingPerPupil.Add(r.Spending)
		}
		derived = append(derived, s)
	}

	return derived
}
