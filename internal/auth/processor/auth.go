package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"

	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
	ErrParseJWTToken    = errors.New("failed to parse jwt token")
	ErrExpiredToken     = errors.New("token expired")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrInsufficientRole = errors.New("insufficient role")
)

type AuthProcessor struct {
	store     AuthStore
	jwtSecret string
	logger    *observability.Logger
}

func New(store AuthStore, jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// UserMetadata is the free-form metadata the identity provider puts in the token
type UserMetadata struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type BaseClaims struct {
	ExpirationTime *jwt.NumericDate `json:"exp"`
	IssuedAt       *jwt.NumericDate `json:"iat"`
	NotBefore      *jwt.NumericDate `json:"nbf"`
	Issuer         string           `json:"iss"`
	Subject        string           `json:"sub"`
	Audience       jwt.ClaimStrings `json:"aud"`
	Email          string           `json:"email"`
	UserMetadata   UserMetadata     `json:"user_metadata"`
}

// ResolveProfile returns the profile for the token subject. A subject without a
// profile gets one provisioned from the token claims, defaulting to the advisor role.
func (p *AuthProcessor) ResolveProfile(ctx context.Context, claims BaseClaims) (store.Profile, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return store.Profile{}, ErrInvalidJWTToken
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID.String()})

	profile, err := p.store.GetProfileByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get profile", err)
		return store.Profile{}, err
	}

	if claims.Email == "" {
		return store.Profile{}, ErrProfileNotFound
	}

	profile, err = p.store.CreateProfile(ctx, store.CreateProfileParams{
		ID:    userID,
		Email: claims.Email,
		Name:  profileName(claims),
		Role:  profileRole(claims),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to provision profile", err)
		return store.Profile{}, ErrProfileNotFound
	}

	p.logger.Info(ctx, "provisioned profile on first sign-in")
	return profile, nil
}

func profileName(claims BaseClaims) string {
	if name := strings.TrimSpace(claims.UserMetadata.Name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(claims.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}

func profileRole(claims BaseClaims) string {
	if claims.UserMetadata.Role == store.ProfileRoleAdmin {
		return store.ProfileRoleAdmin
	}
	return store.ProfileRoleAdvisor
}

// HasRole reports whether role is one of allowed
func HasRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
