package domain

import "github.com/google/uuid"

// Principal is the authenticated identity on whose behalf an operation runs.
type Principal struct {
	ID    uuid.UUID
	Email string
}

func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}
