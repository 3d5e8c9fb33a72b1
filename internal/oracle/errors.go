package oracle

import "errors"

var (
	ErrUnavailable     = errors.New("the oracle is not configured")
	ErrEmptyResponse   = errors.New("the oracle returned an empty response")
	ErrInvalidResponse = errors.New("the oracle response is not usable")
)
