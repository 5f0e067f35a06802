package repository

import (
	"context"
	"time"

	"lashstudio/internal/confirmation"
	sessionserrors "lashstudio/internal/sessions/errors"
	"lashstudio/internal/wizard"

	"github.com/google/uuid"
)

// Record is a stored wizard session. Revision increases by one on every
// successful write and is used for optimistic concurrency.
type Record struct {
	ID        string                `json:"id"`
	Revision  int64                 `json:"revision"`
	Session   wizard.Session        `json:"session"`
	Receipt   *confirmation.Receipt `json:"receipt,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (r *Record) Clone() *Record {
	out := *r
	out.Session = r.Session.Clone()
	if r.Receipt != nil {
		receipt := *r.Receipt
		out.Receipt = &receipt
	}
	return &out
}

type SessionRepository interface {
	// Create stores rec with Revision 1. It fails with ErrConflict when the
	// ID is taken.
	Create(ctx context.Context, rec *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	// Update writes rec if the stored revision still equals rec.Revision,
	// then bumps rec.Revision. A stale revision yields ErrConflict.
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func NewID() string {
	return uuid.NewString()
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return sessionserrors.ErrInvalidID
	}
	return nil
}
