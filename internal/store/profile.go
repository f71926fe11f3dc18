package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetProfileByID = `
SELECT id, email, name, role, created_at
FROM profiles
WHERE id = $1`

// GetProfileByID retrieves the profile of an authenticated user
func (s *Store) GetProfileByID(ctx context.Context, profileID uuid.UUID) (Profile, error) {
	var profile Profile
	if err := s.db.GetContext(ctx, &profile, sqlGetProfileByID, profileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get profile", err)
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// CreateProfileParams describes a profile provisioned on first sign-in
type CreateProfileParams struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  string
}

const sqlCreateProfile = `
INSERT INTO profiles (id, email, name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
RETURNING id, email, name, role, created_at`

// CreateProfile inserts a profile, returning the existing row when another request
// created it first
func (s *Store) CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error) {
	var profile Profile
	err := s.db.GetContext(ctx, &profile, sqlCreateProfile,
		params.ID,
		params.Email,
		params.Name,
		params.Role,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create profile", err)
		return Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}
