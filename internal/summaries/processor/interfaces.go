package processor

import (
	"context"

	"finecho-server/internal/store"

	"github.com/google/uuid"
)

// SummaryStore defines the database operations required by SummaryProcessor
type SummaryStore interface {
	GetCallByID(ctx context.Context, callID uuid.UUID) (store.Call, error)
	UpsertSummary(ctx context.Context, params store.UpsertSummaryParams) (store.Summary, error)
	GetSummaryByCallID(ctx context.Context, callID uuid.UUID) (store.Summary, error)
	ListSummaries(ctx context.Context, params store.ListSummariesParams) ([]store.Summary, error)
}
