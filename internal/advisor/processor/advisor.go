package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"time"

	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidDateRange = errors.New("from date is after to date")

type AdvisorProcessor struct {
	store  AdvisorStore
	logger *observability.Logger
}

func New(store AdvisorStore, logger *observability.Logger) AdvisorProcessor {
	return AdvisorProcessor{
		store:  store,
		logger: logger,
	}
}

// DateRange bounds dashboard and export queries by call creation time
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// DashboardStats are the headline counters on the advisor dashboard
type DashboardStats struct {
	TotalCallsRecorded    int `json:"totalCallsRecorded"`
	CallsProcessedByAI    int `json:"callsProcessedByAI"`
	CallsPendingReview    int `json:"callsPendingReview"`
	ComplianceFlagsRaised int `json:"complianceFlagsRaised"`
	FollowUpsRequired     int `json:"followUpsRequired"`
}

// ListClients returns the advisor's clients ordered by name
func (p *AdvisorProcessor) ListClients(ctx context.Context, advisorID uuid.UUID) ([]store.Client, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "advisor_id", Value: advisorID.String()})

	clients, err := p.store.ListClientsByAdvisor(ctx, advisorID)
	if err != nil {
		p.logger.Error(ctx, "failed to list clients", err)
		return nil, err
	}
	if clients == nil {
		clients = []store.Client{}
	}
	return clients, nil
}

// Dashboard computes the advisor's counters for the range. Calls needing review
// are those whose compliance status is warning or risk. Follow-ups are summaries
// where the client deferred.
func (p *AdvisorProcessor) Dashboard(ctx context.Context, advisorID uuid.UUID, dateRange DateRange) (DashboardStats, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "advisor_id", Value: advisorID.String()})

	if err := dateRange.validate(); err != nil {
		return DashboardStats{}, err
	}

	base := store.CallCountParams{
		AdvisorID: &advisorID,
		From:      dateRange.From,
		To:        dateRange.To,
	}
	completed := base
	completed.Statuses = []string{string(store.CallStatusCompleted)}
	pending := base
	pending.ComplianceStatuses = []string{store.ComplianceStatusWarning, store.ComplianceStatusRisk}

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := p.store.CountCalls(gctx, base)
		stats.TotalCallsRecorded = n
		return err
	})
	g.Go(func() error {
		n, err := p.store.CountCalls(gctx, completed)
		stats.CallsProcessedByAI = n
		return err
	})
	g.Go(func() error {
		n, err := p.store.CountCalls(gctx, pending)
		stats.CallsPendingReview = n
		return err
	})
	g.Go(func() error {
		n, err := p.store.CountComplianceFlags(gctx, base)
		stats.ComplianceFlagsRaised = n
		return err
	})
	g.Go(func() error {
		n, err := p.store.CountFollowUps(gctx, base)
		stats.FollowUpsRequired = n
		return err
	})

	if err := g.Wait(); err != nil {
		p.logger.Error(ctx, "failed to compute dashboard", err)
		return DashboardStats{}, err
	}
	return stats, nil
}
