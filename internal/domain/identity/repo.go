package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no clinician matches the lookup.
var ErrNotFound = errors.New("clinician not found")

type Repository interface {
	Create(ctx context.Context, c *Clinician) error
	GetByID(ctx context.Context, id uuid.UUID) (*Clinician, error)
	GetByUsername(ctx context.Context, username string) (*Clinician, error)
	GetByEmail(ctx context.Context, email string) (*Clinician, error)
}
