package processor

import (
	"context"

	"finecho-server/internal/store"

	"github.com/google/uuid"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	GetProfileByID(ctx context.Context, profileID uuid.UUID) (store.Profile, error)
	CreateProfile(ctx context.Context, params store.CreateProfileParams) (store.Profile, error)
}
