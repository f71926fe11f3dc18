package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const summaryColumns = `id, call_id, advisor_id, summary, goals, risk_level, sip_type, sip_amount,
	sip_category, risk_explained, client_response, compliance, created_at, updated_at`

// UpsertSummaryParams holds the fields of a call summary
type UpsertSummaryParams struct {
	CallID         uuid.UUID
	AdvisorID      uuid.UUID
	Summary        string
	Goals          []string
	RiskLevel      *string
	SIPType        *string
	SIPAmount      *float64
	SIPCategory    *string
	RiskExplained  *bool
	ClientResponse *string
	Compliance     *string
}

const sqlUpsertSummary = `
INSERT INTO summaries (call_id, advisor_id, summary, goals, risk_level, sip_type, sip_amount,
	sip_category, risk_explained, client_response, compliance)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (call_id) DO UPDATE SET
	summary = EXCLUDED.summary,
	goals = EXCLUDED.goals,
	risk_level = EXCLUDED.risk_level,
	sip_type = EXCLUDED.sip_type,
	sip_amount = EXCLUDED.sip_amount,
	sip_category = EXCLUDED.sip_category,
	risk_explained = EXCLUDED.risk_explained,
	client_response = EXCLUDED.client_response,
	compliance = EXCLUDED.compliance,
	updated_at = CURRENT_TIMESTAMP
RETURNING ` + summaryColumns

// UpsertSummary stores the summary of a call, replacing any earlier one
func (s *Store) UpsertSummary(ctx context.Context, params UpsertSummaryParams) (Summary, error) {
	var summary Summary
	err := s.db.GetContext(ctx, &summary, sqlUpsertSummary,
		params.CallID,
		params.AdvisorID,
		params.Summary,
		StringArray(params.Goals),
		params.RiskLevel,
		params.SIPType,
		params.SIPAmount,
		params.SIPCategory,
		params.RiskExplained,
		params.ClientResponse,
		params.Compliance,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert summary", err)
		return Summary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}
	return summary, nil
}

const sqlGetSummaryByCallID = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE call_id = $1`

// GetSummaryByCallID returns the summary written for a call
func (s *Store) GetSummaryByCallID(ctx context.Context, callID uuid.UUID) (Summary, error) {
	var summary Summary
	if err := s.db.GetContext(ctx, &summary, sqlGetSummaryByCallID, callID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get summary", err)
		return Summary{}, fmt.Errorf("failed to get summary: %w", err)
	}
	return summary, nil
}

// ListSummariesParams filters an advisor's summaries
type ListSummariesParams struct {
	AdvisorID uuid.UUID
	From      *time.Time
	To        *time.Time
}

// ListSummaries returns an advisor's summaries, newest first
func (s *Store) ListSummaries(ctx context.Context, params ListSummariesParams) ([]Summary, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE advisor_id = $1`
	args := []interface{}{params.AdvisorID}

	if params.From != nil {
		args = append(args, *params.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	summaries := []Summary{}
	if err := s.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		s.logger.Error(ctx, "failed to list summaries", err)
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// CountFollowUps counts summaries in range whose client deferred the decision.
// Only the advisor and date bounds of params apply.
func (s *Store) CountFollowUps(ctx context.Context, params CallCountParams) (int, error) {
	clause, args := CallCountParams{AdvisorID: params.AdvisorID, From: params.From, To: params.To}.where()
	args = append(args, ClientResponseDeferred)
	query := "SELECT COUNT(*) FROM summaries" + clause + fmt.Sprintf(" AND client_response = $%d", len(args))

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		s.logger.Error(ctx, "failed to count follow-ups", err)
		return 0, fmt.Errorf("failed to count follow-ups: %w", err)
	}
	return count, nil
}
