package game

import "errors"

var (
	ErrNarrativeTooShort = errors.New("the narrative must be at least 10 characters long")
	ErrUnsortedProposals = errors.New("every proposal must be funded, funded with one-time money or rejected before submitting")
	ErrWrongPhase        = errors.New("the session is not in the right phase for this action")
	ErrNotApproved       = errors.New("the board has not approved the budget, revise it first")
	ErrEmptyMessage      = errors.New("the message must not be empty")
	ErrInvalidProposal   = errors.New("a proposal needs a title and an amount larger than zero")
	ErrStaleResult       = errors.New("the session changed while the board was deliberating, please try again")
	ErrSessionClosed     = errors.New("the session has been closed")
	ErrMissingScenario   = errors.New("either a scenario or a district must be given")
)
