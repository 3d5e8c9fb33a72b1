package oracle

import (
	"context"
	"math/rand/v2"

	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/simulation"
)

// ChatUnavailable is the board's answer when the chat fails.
const ChatUnavailable = "Board members are currently unavailable for comment."

// FallbackVerdict passes the budget when the board cannot be consulted.
func FallbackVerdict() simulation.Verdict {
	return simulation.Verdict{
		Approved:  true,
		VoteCount: "Pass (Manual Override)",
		Feedback:  "The AI Board Service was unavailable, so the budget passes by default. However, the State Auditor notes this is irregular.",
	}
}

var facts = []string{
	"Public education accounts for roughly 3.5% of U.S. GDP.",
	"Personnel costs (salaries and benefits) typically make up 80-85% of a school district's budget.",
	"Federal funding usually accounts for only ~8-10% of K-12 school budgets; the rest is State and Local.",
	"The 'Fiscal Cliff' refers to the sudden drop in funding when ESSER (COVID relief) grants expire.",
	"Per-pupil spending in the U.S. ranges wildly, from under $8,000 to over $30,000 depending on the district.",
	"Inflation impacts school budgets heavily because schools are labor-intensive institutions.",
	"Declining enrollment often increases per-pupil costs because fixed costs (buildings, utilities) remain the same.",
	"Special Education costs have risen significantly faster than general education funding in the last decade.",
	"Deferred maintenance on U.S. school buildings is estimated to be over $270 billion.",
	"Teacher pension obligations are a growing liability for many state education budgets.",
	"Transportation costs (buses) are often fully reimbursed by states, but only based on miles driven, not time.",
	"Cyber insurance premiums for school districts have tripled since 2019 due to ransomware threats.",
	"Textbook adoption cycles typically happen every 5-7 years and cost millions in a single year.",
	"Utility costs (heating/cooling) are often the second largest operational line item after staff.",
	"Title I funds are federal dollars specifically allocated for schools with high percentages of low-income students.",
}

// StaticFact returns a random entry of the built-in fact list.
func StaticFact() string {
	return facts[rand.IntN(len(facts))]
}

// Facts returns the built-in fact list.
func Facts() []string {
	return append([]string{}, facts...)
}

// Disabled is the oracle used without an API key. Every call fails with ErrUnavailable.
type Disabled struct{}

var _ Oracle = Disabled{}

func (Disabled) Briefing(context.Context, simulation.District) (Briefing, error) {
	return Briefing{}, ErrUnavailable
}

func (Disabled) DistrictID(context.Context, simulation.District) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) Roster(context.Context, simulation.District, *opendata.Financials) ([]simulation.School, error) {
	return nil, ErrUnavailable
}

func (Disabled) Verdict(context.Context, VerdictRequest) (simulation.Verdict, error) {
	return simulation.Verdict{}, ErrUnavailable
}

func (Disabled) Chat(context.Context, ChatRequest) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) Fact(context.Context) (string, error) {
	return "", ErrUnavailable
}
