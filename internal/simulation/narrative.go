package simulation

import "fmt"

// NarrativeTemplate drafts a budget narrative from the first funded investment
// and the first funded cut of the decisions.
func NarrativeTemplate(decisions []Card) string {
	invest, cut := "[Investment]", "[Reduction]"
	reason := "balance our structural deficit"

	foundInvestment, foundCut := false, false
	for _, d := range decisions {
		if !d.Selected.Funded() {
			continue
		}

		switch {
		case d.Cost.IsPositive() && !foundInvestment:
			invest, foundInvestment = d.Title, true
			reason = "address critical academic gaps"
		case d.Cost.IsNegative() && !foundCut:
			cut, foundCut = d.Title, true
		}
	}

	return fmt.Sprintf("Our data suggests that our students need support to %s. "+
		"Therefore, we are prioritizing investments in %s. "+
		"To responsibly fund this, we made the difficult decision to proceed with %s, "+
		"recognizing that while painful, it is necessary to ensure long-term solvency.", reason, invest, cut)
}
