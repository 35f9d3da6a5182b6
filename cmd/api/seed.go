package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shareit/internal/api"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
	Items []seedItem `yaml:"items"`
}

type seedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type seedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
	OwnerEmail  string `yaml:"owner_email"`
}

func readSeed(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// loadSeed creates the users and items of the seed file. Users already
// registered by email and items their owner already lists by name are
// skipped, so a restart does not duplicate data.
func loadSeed(ctx context.Context, path string, users domain.UserRepository, svc api.Services, logger *zerolog.Logger) error {
	seed, err := readSeed(path)
	if err != nil {
		return err
	}

	created := 0
	for _, u := range seed.Users {
		_, err := svc.Users.CreateUser(ctx, models.UserInput{Name: u.Name, Email: u.Email})
		switch {
		case errors.Is(err, domain.ErrConflict):
		case err != nil:
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		default:
			created++
		}
	}

	for _, it := range seed.Items {
		owner, err := users.GetUserByEmail(ctx, it.OwnerEmail)
		if err != nil {
			return fmt.Errorf("seed item %s: owner %s: %w", it.Name, it.OwnerEmail, err)
		}
		existing, err := svc.Items.GetOwnerItems(ctx, owner.ID)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.Name, err)
		}
		if hasItem(existing, it.Name) {
			continue
		}
		available := it.Available
		if _, err := svc.Items.CreateItem(ctx, owner.ID, models.ItemInput{
			Name:        it.Name,
			Description: it.Description,
			Available:   &available,
		}); err != nil {
			return fmt.Errorf("seed item %s: %w", it.Name, err)
		}
		created++
	}

	logger.Info().Int("created", created).Str("seed_path", path).Msg("seed loaded")
	return nil
}

func hasItem(items []models.ItemView, name string) bool {
	for _, it := range items {
		if it.Name == name {
			return true
		}
	}
	return false
}
