package opendata

import "errors"

var (
	ErrInvalidDistrictID = errors.New("the NCES district id must have 7 digits")
	ErrNoData            = errors.New("the data source has no usable record for this district")
	ErrUpstream          = errors.New("the data source responded with an error")
)
