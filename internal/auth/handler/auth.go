package handler

import (
	"net/http"
	"strings"

	"finecho-server/internal/apierrors"
	"finecho-server/internal/auth/processor"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Keys set on the gin context by HandleJWTMiddleware
const (
	ContextKeyUserID   = "User-ID"
	ContextKeyUserRole = "User-Role"
	contextKeyProfile  = "User-Profile"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleJWTMiddleware validates the bearer token and loads the caller's profile
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.AbortWithError(c, apierrors.Unauthorized("Missing or invalid authorization header"))
		return
	}

	// Extract the JWT token from the header
	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	claims, err := h.authProcessor.ValidateJWTToken(ctx, tokenString)
	if err != nil {
		apierrors.AbortWithError(c, err)
		return
	}

	profile, err := h.authProcessor.ResolveProfile(ctx, claims)
	if err != nil {
		apierrors.AbortWithError(c, err)
		return
	}

	c.Set(ContextKeyUserID, profile.ID.String())
	c.Set(ContextKeyUserRole, profile.Role)
	c.Set(contextKeyProfile, profile)
	c.Request = c.Request.WithContext(observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: profile.ID.String()},
	))

	// Continue to the next handler if the token is valid
	c.Next()
}

// RequireRole aborts with 403 unless the authenticated user has one of roles
func (h *Handler) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyUserRole)
		if !processor.HasRole(role, roles...) {
			apierrors.AbortWithError(c, apierrors.Forbidden(apierrors.CodeForbidden,
				"Access denied. Required role: "+strings.Join(roles, " or ")))
			return
		}
		c.Next()
	}
}

// RequireAdvisor lets advisors and admins through
func (h *Handler) RequireAdvisor() gin.HandlerFunc {
	return h.RequireRole(store.ProfileRoleAdvisor, store.ProfileRoleAdmin)
}

func (h *Handler) GetUserInfo(c *gin.Context) {
	ctx := c.Request.Context()
	profile, ok := c.Get(contextKeyProfile)
	if !ok {
		h.logger.Error(ctx, "failed to get profile from context", nil)
		apierrors.RespondWithError(c, apierrors.Unauthorized("Not authenticated"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UserFromContext returns the id and role HandleJWTMiddleware stored on c
func UserFromContext(c *gin.Context) (uuid.UUID, string, bool) {
	userID, err := uuid.Parse(c.GetString(ContextKeyUserID))
	if err != nil {
		return uuid.Nil, "", false
	}
	return userID, c.GetString(ContextKeyUserRole), true
}
