// Package interfaces defines the storage contracts the rest of the
// application depends on. Implementations can be swapped (BadgerDB now, an
// external document store later) without touching call sites.
package interfaces

import (
	"context"
	"errors"

	"github.com/quantlab/stockdash/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when creating a user with an email that is
// already registered.
var ErrDuplicateEmail = errors.New("email already in use")

// StorageManager provides access to domain-specific storage interfaces.
type StorageManager interface {
	Users() UserStorage
	Close() error
}

// UserStorage persists user accounts, preferences, and dashboard configs.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}
