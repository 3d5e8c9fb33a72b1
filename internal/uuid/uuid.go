package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that gin can bind from path parameters.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements the uuid.Parse method
// from https://pkg.go.dev/github.com/google/uuid#Parse
// for UUID
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
