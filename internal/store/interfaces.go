package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	GetDB() *sqlx.DB
	Ping(ctx context.Context) error

	// Call operations
	CreateCall(ctx context.Context, params CreateCallParams) (Call, error)
	GetCallByID(ctx context.Context, callID uuid.UUID) (Call, error)
	ListCalls(ctx context.Context, params ListCallsParams) ([]Call, error)
	MarkCallTranscribing(ctx context.Context, callID uuid.UUID) error
	SaveCallTranscript(ctx context.Context, callID uuid.UUID, transcript string) error
	SaveCallAnalysis(ctx context.Context, callID uuid.UUID, params SaveCallAnalysisParams) error
	MarkCallFailed(ctx context.Context, callID uuid.UUID, status CallStatus, summary, errorDetail string) error
	ResetFailedCall(ctx context.Context, callID uuid.UUID) error
	CountCalls(ctx context.Context, params CallCountParams) (int, error)
	CountComplianceFlags(ctx context.Context, params CallCountParams) (int, error)

	// Summary operations
	UpsertSummary(ctx context.Context, params UpsertSummaryParams) (Summary, error)
	GetSummaryByCallID(ctx context.Context, callID uuid.UUID) (Summary, error)
	ListSummaries(ctx context.Context, params ListSummariesParams) ([]Summary, error)
	CountFollowUps(ctx context.Context, params CallCountParams) (int, error)

	// Client operations
	ListClientsByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]Client, error)
	GetClientByID(ctx context.Context, clientID uuid.UUID) (Client, error)

	// Profile operations
	GetProfileByID(ctx context.Context, profileID uuid.UUID) (Profile, error)
	CreateProfile(ctx context.Context, params CreateProfileParams) (Profile, error)
}

var _ Storer = (*Store)(nil)
