package processor

import (
	"context"

	"finecho-server/internal/store"

	"github.com/google/uuid"
)

// AdvisorStore defines the database operations required by AdvisorProcessor
type AdvisorStore interface {
	ListClientsByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]store.Client, error)
	CountCalls(ctx context.Context, params store.CallCountParams) (int, error)
	CountComplianceFlags(ctx context.Context, params store.CallCountParams) (int, error)
	CountFollowUps(ctx context.Context, params store.CallCountParams) (int, error)
	ListCalls(ctx context.Context, params store.ListCallsParams) ([]store.Call, error)
}
