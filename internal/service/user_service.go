package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	items  *itemLookup
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, cache domain.ItemCache, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		items:  &itemLookup{repo: repo, cache: cache, logger: logger},
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	user := &models.User{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
	}
	if err := s.ensureEmailFree(ctx, user.Email, 0); err != nil {
		return nil, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("User created")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// UpdateUser applies the non-empty fields of patch.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(patch.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(patch.Email); email != "" && !strings.EqualFold(email, user.Email) {
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and everything they own. Cached copies of
// their items are dropped once the store delete succeeds.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	owned, err := s.repo.GetItemsByOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	for _, item := range owned {
		s.items.invalidate(ctx, item.ID)
	}
	s.logger.Info().Int64("user_id", id).Int("items", len(owned)).Msg("User deleted")
	return nil
}

// ensureEmailFree fails with ErrConflict when email belongs to a user other
// than selfID.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		s.logger.Warn().Str("email", email).Msg("Email already registered")
		return fmt.Errorf("%w: email %s already registered", domain.ErrConflict, email)
	}
	return nil
}
