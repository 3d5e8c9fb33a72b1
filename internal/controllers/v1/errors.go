package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/simulation"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// clientErrors are caused by the request. Any other error is a server error.
var clientErrors = []error{
	httputil.ErrInvalidBody,
	httputil.ErrRequestBodyEmpty,
	httputil.ErrInvalidUUID,
	httputil.ErrInvalidQueryString,
	models.ErrInvalidPhase,
	game.ErrNarrativeTooShort,
	game.ErrUnsortedProposals,
	game.ErrWrongPhase,
	game.ErrNotApproved,
	game.ErrEmptyMessage,
	game.ErrInvalidProposal,
	game.ErrMissingScenario,
	simulation.ErrUnknownScenario,
	simulation.ErrUnknownCard,
	simulation.ErrDuplicateCard,
	simulation.ErrInvalidSelection,
	simulation.ErrSavingsOneTime,
	errScenarioNotSetInQuery,
	errProposalType,
	errProposalFrequency,
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}

	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, game.ErrSessionClosed) {
		return http.StatusNotFound
	}

	if errors.Is(err, game.ErrStaleResult) {
		return http.StatusConflict
	}

	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

var (
	errScenarioNotSetInQuery = errors.New("the scenario query parameter must be set")
	errProposalType          = errors.New("the type of a proposal must be one of expense, savings")
	errProposalFrequency     = errors.New("the frequency of a proposal must be one of recurring, onetime")
)
