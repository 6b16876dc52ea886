package service

import (
	"context"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

// RemoteStore is a per-user account store. Implementations reject guest sessions
// with model.ErrUnauthenticated.
type RemoteStore interface {
	Save(ctx context.Context, sess model.Session, rec model.SavedCalculation) (string, error)
	List(ctx context.Context, sess model.Session, limit int) ([]model.SavedCalculation, error)
	Delete(ctx context.Context, sess model.Session, id string) error
	UpdateNotes(ctx context.Context, sess model.Session, id, notes string) error
}

// LocalStore holds one most-recent-first list per client, shared by that client's guest
// saves and degraded account saves. Implementations reject an empty client id with
// model.ErrNoClient.
type LocalStore interface {
	Prepend(ctx context.Context, clientID string, rec model.SavedCalculation) error
	List(ctx context.Context, clientID string, limit int) ([]model.SavedCalculation, error)
	Delete(ctx context.Context, clientID, id string) error
	UpdateNotes(ctx context.Context, clientID, id, notes string) error
}
