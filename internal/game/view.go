package game

import (
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// View is a session with all values derived from its current decisions.
type View struct {
	models.Session
	State            simulation.GameState `json:"state"`          // Base state with the decisions applied
	DerivedSchools   []simulation.School  `json:"derivedSchools"` // Schools with the decisions applied
	Hand             []simulation.Card    `json:"hand"`           // Current decisions
	CanUndo          bool                 `json:"canUndo"`
	CanRedo          bool                 `json:"canRedo"`
	AllSorted        bool                 `json:"allSorted"` // Every card has a selection
	OneTimeUsed      decimal.Decimal      `json:"oneTimeUsed" example:"400000"`
	OneTimeRemaining decimal.Decimal      `json:"oneTimeRemaining" example:"2600000"` // Negative if the fund balance has to cover one-time spending
}

func newView(st *state) View {
	decisions := st.ledger.Decisions()
	used := simulation.OneTimeSpend(decisions)

	session := st.session
	session.History = nil
	session.FundedUnique = nil
	session.Schools = slices.Clone(st.session.Schools)
	session.Chat = slices.Clone(st.session.Chat)
	if st.session.Verdict != nil {
		verdict := *st.session.Verdict
		session.Verdict = &verdict
	}

	return View{
		Session:          session,
		State:            simulation.ProjectBudget(st.session.Base, decisions),
		DerivedSchools:   simulation.ProjectSchools(st.session.Schools, decisions),
		Hand:             decisions,
		CanUndo:          st.ledger.CanUndo(),
		CanRedo:          st.ledger.CanRedo(),
		AllSorted:        len(decisions) > 0 && simulation.AllSorted(decisions),
		OneTimeUsed:      used,
		OneTimeRemaining: st.session.Base.Revenue.FederalOneTime.Sub(used),
	}
}
