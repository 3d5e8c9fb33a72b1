package oracle

import (
	"fmt"

	"github.com/edunomics/superintendent/internal/simulation"
)

// validateBriefing checks a generated briefing and fills gaps from the fallback scenario.
func validateBriefing(b Briefing) (Briefing, error) {
	if !simulation.IsArchetype(b.Archetype) {
		b.Archetype = simulation.FallbackScenario
	}

	scenario, err := simulation.LookupScenario(b.Archetype)
	if err != nil {
		return Briefing{}, err
	}

	if b.InitialState.Enrollment <= 0 {
		return Briefing{}, fmt.Errorf("%w: briefing has no enrollment", ErrInvalidResponse)
	}

	if b.Title == "" {
		b.Title = scenario.Title
	}

	if b.Description == "" {
		b.Description = scenario.Description
	}

	if b.InitialState.Year <= 0 {
		b.InitialState.Year = scenario.InitialState.Year
	}

	b.InitialState.CommunityTrust = max(0, min(100, b.InitialState.CommunityTrust))
	return b, nil
}

type verdictResponse struct {
	Approved  *bool  `json:"approved"`
	VoteCount string `json:"voteCount"`
	Feedback  string `json:"feedback"`
}

func (v verdictResponse) validate() (simulation.Verdict, error) {
	if v.Approved == nil || v.Feedback == "" {
		return simulation.Verdict{}, fmt.Errorf("%w: verdict needs approved and feedback", ErrInvalidResponse)
	}

	voteCount := v.VoteCount
	if voteCount == "" {
		voteCount = "Unrecorded"
	}

	return simulation.Verdict{
		Approved:  *v.Approved,
		VoteCount: voteCount,
		Feedback:  v.Feedback,
	}, nil
}
