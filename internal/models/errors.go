package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrInvalidPhase     = errors.New("the phase must be one of briefing, playing, judged")
)
