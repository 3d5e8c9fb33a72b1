package simulation

import "errors"

var (
	ErrInvalidPool      = errors.New("the card catalog is invalid")
	ErrUnknownScenario  = errors.New("there is no scenario with this id")
	ErrUnknownCard      = errors.New("there is no card with this id in the current hand")
	ErrDuplicateCard    = errors.New("a card with this id is already in the current hand")
	ErrInvalidSelection = errors.New("the selection must be one of None, Fund, OneTime, Reject")
	ErrSavingsOneTime   = errors.New("savings and revenue cards cannot be funded with one-time money")
)
