// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/hydrate/models"
)

// DefaultGoal is every seeded user's daily goal in ml
const DefaultGoal = 3000

type RosterEntry struct {
	Name  string
	Color string
}

// Roster is the fixed set of users created on an empty store.
var Roster = []RosterEntry{
	{Name: "Nikhil", Color: "#3B82F6"},
	{Name: "Karthik", Color: "#10B981"},
	{Name: "Prabhath", Color: "#F59E0B"},
	{Name: "Samson", Color: "#EF4444"},
	{Name: "Chakri", Color: "#8B5CF6"},
	{Name: "Praveen", Color: "#EC4899"},
}

// Seed creates the roster when the store has no users and does nothing otherwise.
// Names are unique, so a concurrent seeder racing past the count check only
// hits ErrConflict, which is skipped.
func Seed(ctx context.Context, s Store) (models.SeedResponse, error) {
	existing, err := s.CountUsers(ctx)
	if err != nil {
		return models.SeedResponse{}, err
	}
	if existing > 0 {
		return models.SeedResponse{Message: models.MessageAlreadySeeded, Count: existing}, nil
	}

	for _, entry := range Roster {
		_, err := s.CreateUser(ctx, entry.Name, DefaultGoal, entry.Color)
		if errors.Is(err, ErrConflict) {
			slog.Info("seed user already present", "name", entry.Name)
			continue
		}
		if err != nil {
			return models.SeedResponse{}, fmt.Errorf("failed to seed %s: %w", entry.Name, err)
		}
	}

	count, err := s.CountUsers(ctx)
	if err != nil {
		return models.SeedResponse{}, err
	}

	slog.Info("users seeded", "count", count)
	return models.SeedResponse{Message: models.MessageSeeded, Count: count}, nil
}
