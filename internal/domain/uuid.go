package domain

import (
	"github.com/google/uuid"
)

// ParseID parses a resource identifier. Malformed input yields false so that
// callers can treat it the same as an unknown id.
func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
