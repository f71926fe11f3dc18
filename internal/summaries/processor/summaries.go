package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrCallNotFound     = errors.New("call not found")
	ErrSummaryNotFound  = errors.New("summary not found")
	ErrInvalidDateRange = errors.New("from date is after to date")
)

type SummaryProcessor struct {
	store  SummaryStore
	logger *observability.Logger
}

func New(store SummaryStore, logger *observability.Logger) SummaryProcessor {
	return SummaryProcessor{
		store:  store,
		logger: logger,
	}
}

// SIPDetails describes the systematic investment plan discussed on the call
type SIPDetails struct {
	Type          *string
	Amount        *float64
	Category      *string
	RiskExplained *bool
}

// SaveSummaryRequest is the advisor's write-up of one of their calls
type SaveSummaryRequest struct {
	CallID         uuid.UUID
	Summary        string
	Goals          []string
	RiskLevel      *string
	SIP            *SIPDetails
	ClientResponse *string
	Compliance     *string
}

// SaveSummary stores the summary for a call owned by the advisor. Saving again for
// the same call replaces the earlier summary.
func (p *SummaryProcessor) SaveSummary(ctx context.Context, advisorID uuid.UUID, req SaveSummaryRequest) (store.Summary, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "advisor_id", Value: advisorID.String()},
		observability.Field{Key: "call_id", Value: req.CallID.String()},
	)

	call, err := p.store.GetCallByID(ctx, req.CallID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Summary{}, ErrCallNotFound
		}
		p.logger.Error(ctx, "failed to get call", err)
		return store.Summary{}, err
	}
	if call.AdvisorID != advisorID {
		return store.Summary{}, ErrCallNotFound
	}

	params := store.UpsertSummaryParams{
		CallID:         req.CallID,
		AdvisorID:      advisorID,
		Summary:        strings.TrimSpace(req.Summary),
		Goals:          cleanGoals(req.Goals),
		RiskLevel:      req.RiskLevel,
		ClientResponse: lower(req.ClientResponse),
		Compliance:     lower(req.Compliance),
	}
	if req.SIP != nil {
		params.SIPType = req.SIP.Type
		params.SIPAmount = req.SIP.Amount
		params.SIPCategory = req.SIP.Category
		params.RiskExplained = req.SIP.RiskExplained
	}

	summary, err := p.store.UpsertSummary(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to save summary", err)
		return store.Summary{}, err
	}

	p.logger.Info(ctx, "call summary saved")
	return summary, nil
}

// ListSummaries returns the advisor's summaries created within [from, to], newest first
func (p *SummaryProcessor) ListSummaries(ctx context.Context, advisorID uuid.UUID, from, to *time.Time) ([]store.Summary, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "advisor_id", Value: advisorID.String()})

	if from != nil && to != nil && from.After(*to) {
		return nil, ErrInvalidDateRange
	}

	summaries, err := p.store.ListSummaries(ctx, store.ListSummariesParams{
		AdvisorID: advisorID,
		From:      from,
		To:        to,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list summaries", err)
		return nil, err
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	return summaries, nil
}

// GetCallSummary returns the summary of one of the advisor's calls
func (p *SummaryProcessor) GetCallSummary(ctx context.Context, advisorID, callID uuid.UUID) (store.Summary, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID.String()})

	summary, err := p.store.GetSummaryByCallID(ctx, callID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Summary{}, ErrSummaryNotFound
		}
		p.logger.Error(ctx, "failed to get summary", err)
		return store.Summary{}, err
	}
	if summary.AdvisorID != advisorID {
		return store.Summary{}, ErrSummaryNotFound
	}
	return summary, nil
}

// cleanGoals trims goals and drops blanks and repeats
func cleanGoals(goals []string) []string {
	out := make([]string, 0, len(goals))
	seen := make(map[string]struct{}, len(goals))
	for _, goal := range goals {
		goal = strings.TrimSpace(goal)
		if goal == "" {
			continue
		}
		if _, ok := seen[goal]; ok {
			continue
		}
		seen[goal] = struct{}{}
		out = append(out, goal)
	}
	return out
}

func lower(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}
