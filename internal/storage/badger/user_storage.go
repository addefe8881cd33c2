package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/interfaces"
	"github.com/quantlab/stockdash/internal/models"
)

// UserStorage implements interfaces.UserStorage using BadgerDB.
type UserStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewUserStorage creates a user storage backed by BadgerDB.
func NewUserStorage(db *BadgerDB, logger *common.Logger) *UserStorage {
	return &UserStorage{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user. The email must not already be registered.
func (s *UserStorage) Create(_ context.Context, user *models.User) error {
	existing, err := s.findByEmail(user.Email)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}
	if existing != nil {
		return interfaces.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.db.Store().Insert(user.ID, user); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("user %s already exists: %w", user.ID, err)
		}
		return fmt.Errorf("failed to create user %s: %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStorage) GetByID(_ context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.Store().Get(id, &user)
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address.
func (s *UserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findByEmail(email)
}

// Update persists changes to an existing user.
func (s *UserStorage) Update(_ context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	if err := s.db.Store().Update(user.ID, user); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return interfaces.ErrNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStorage) Delete(_ context.Context, id string) error {
	err := s.db.Store().Delete(id, models.User{})
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

// List retrieves all users.
func (s *UserStorage) List(_ context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.Store().Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserStorage) findByEmail(email string) (*models.User, error) {
	var users []models.User
	err := s.db.Store().Find(&users, badgerhold.Where("Email").Eq(email).Index("Email"))
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &users[0], nil
}
