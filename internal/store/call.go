package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const callColumns = `
    c.id,
    c.advisor_id,
    c.client_id,
    cl.name AS client_name,
    c.status,
    c.transcript,
    c.summary,
    c.goals,
    c.language,
    c.compliance_flags,
    c.compliance_status,
    c.error_detail,
    c.analysis_source,
    c.audio_filename,
    c.audio_path,
    c.created_at,
    c.updated_at`

// CreateCallParams holds the fields known when an upload is accepted
type CreateCallParams struct {
	ID            uuid.UUID
	AdvisorID     uuid.UUID
	ClientID      *uuid.UUID
	AudioFilename string
	AudioPath     string
}

const sqlCreateCall = `
INSERT INTO calls (id, advisor_id, client_id, status, audio_filename, audio_path)
VALUES ($1, $2, $3, 'uploaded', $4, $5)
RETURNING id`

// CreateCall inserts a new call in the uploaded state
func (s *Store) CreateCall(ctx context.Context, params CreateCallParams) (Call, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlCreateCall,
		params.ID,
		params.AdvisorID,
		params.ClientID,
		params.AudioFilename,
		params.AudioPath,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create call", err)
		return Call{}, fmt.Errorf("failed to create call: %w", err)
	}
	return s.GetCallByID(ctx, id)
}

const sqlGetCallByID = `
SELECT ` + callColumns + `
FROM calls c
LEFT JOIN clients cl ON cl.id = c.client_id
WHERE c.id = $1`

// GetCallByID retrieves a call by id
func (s *Store) GetCallByID(ctx context.Context, callID uuid.UUID) (Call, error) {
	var call Call
	err := s.db.GetContext(ctx, &call, sqlGetCallByID, callID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Call{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get call by id", err)
		return Call{}, fmt.Errorf("failed to get call: %w", err)
	}
	return call, nil
}

// ListCallsParams filters a call listing. A nil AdvisorID lists every advisor's calls.
// After continues a listing from the last row of the previous page.
type ListCallsParams struct {
	AdvisorID *uuid.UUID
	Status    *CallStatus
	From      *time.Time
	To        *time.Time
	After     *CallCursor
	Limit     int
	Offset    int
}

// CallCursor is a position in the newest-first call order
type CallCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// CursorOf returns the cursor positioned at call
func CursorOf(call Call) *CallCursor {
	return &CallCursor{CreatedAt: call.CreatedAt, ID: call.ID}
}

// ListCalls returns calls newest first
func (s *Store) ListCalls(ctx context.Context, params ListCallsParams) ([]Call, error) {
	query := `SELECT ` + callColumns + `
	FROM calls c
	LEFT JOIN clients cl ON cl.id = c.client_id
	WHERE 1=1`

	args := []interface{}{}
	argCount := 0

	if params.AdvisorID != nil {
		argCount++
		query += fmt.Sprintf(" AND c.advisor_id = $%d", argCount)
		args = append(args, *params.AdvisorID)
	}

	if params.Status != nil {
		argCount++
		query += fmt.Sprintf(" AND c.status = $%d", argCount)
		args = append(args, string(*params.Status))
	}

	if params.From != nil {
		argCount++
		query += fmt.Sprintf(" AND c.created_at >= $%d", argCount)
		args = append(args, *params.From)
	}

	if params.To != nil {
		argCount++
		query += fmt.Sprintf(" AND c.created_at <= $%d", argCount)
		args = append(args, *params.To)
	}

	if params.After != nil {
		query += fmt.Sprintf(" AND (c.created_at, c.id) < ($%d, $%d)", argCount+1, argCount+2)
		argCount += 2
		args = append(args, params.After.CreatedAt, params.After.ID)
	}

	query += " ORDER BY c.created_at DESC, c.id DESC"

	if params.Limit > 0 {
		argCount++
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, params.Limit)
	}

	if params.Offset > 0 {
		argCount++
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, params.Offset)
	}

	calls := []Call{}
	if err := s.db.SelectContext(ctx, &calls, query, args...); err != nil {
		s.logger.Error(ctx, "failed to list calls", err)
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return calls, nil
}

const sqlMarkCallTranscribing = `
UPDATE calls
SET status = 'transcribing',
    error_detail = NULL,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1`

// MarkCallTranscribing moves the call into the transcribing state
func (s *Store) MarkCallTranscribing(ctx context.Context, callID uuid.UUID) error {
	return s.execCallUpdate(ctx, "mark call transcribing", sqlMarkCallTranscribing, callID)
}

const sqlSaveCallTranscript = `
UPDATE calls
SET transcript = $2,
    status = 'transcribed',
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1`

// SaveCallTranscript stores the transcript and marks the call transcribed
func (s *Store) SaveCallTranscript(ctx context.Context, callID uuid.UUID, transcript string) error {
	return s.execCallUpdate(ctx, "save call transcript", sqlSaveCallTranscript, callID, transcript)
}

// SaveCallAnalysisParams holds the analysis fields written in one update
type SaveCallAnalysisParams struct {
	Summary          string
	Goals            []string
	Language         string
	ComplianceFlags  []string
	ComplianceStatus string
	AnalysisSource   string
}

const sqlSaveCallAnalysis = `
UPDATE calls
SET summary = $2,
    goals = $3,
    language = $4,
    compliance_flags = $5,
    compliance_status = $6,
    analysis_source = $7,
    error_detail = NULL,
    status = 'completed',
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1`

// SaveCallAnalysis writes all analysis fields and completes the call
func (s *Store) SaveCallAnalysis(ctx context.Context, callID uuid.UUID, params SaveCallAnalysisParams) error {
	return s.execCallUpdate(ctx, "save call analysis", sqlSaveCallAnalysis,
		callID,
		params.Summary,
		StringArray(params.Goals),
		params.Language,
		StringArray(params.ComplianceFlags),
		params.ComplianceStatus,
		params.AnalysisSource,
	)
}

const sqlMarkCallFailed = `
UPDATE calls
SET status = $2,
    summary = $3,
    error_detail = $4,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1`

// MarkCallFailed records a terminal failure with a readable summary and the raw cause
func (s *Store) MarkCallFailed(ctx context.Context, callID uuid.UUID, status CallStatus, summary, errorDetail string) error {
	if !status.IsFailed() {
		return fmt.Errorf("failed to mark call failed: %q is not a failure status", status)
	}
	return s.execCallUpdate(ctx, "mark call failed", sqlMarkCallFailed, callID, string(status), summary, errorDetail)
}

const sqlResetFailedCall = `
UPDATE calls
SET status = 'uploaded',
    transcript = '',
    summary = '',
    goals = '{}',
    language = 'en',
    compliance_flags = '{}',
    compliance_status = NULL,
    analysis_source = NULL,
    error_detail = NULL,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status IN ('failed_transcription', 'failed_summary')`

// ResetFailedCall moves a failed call back to uploaded and clears the previous run's
// output. ErrNotFound is returned when the call does not exist or is not in a failed
// state.
func (s *Store) ResetFailedCall(ctx context.Context, callID uuid.UUID) error {
	return s.execCallUpdate(ctx, "reset failed call", sqlResetFailedCall, callID)
}

func (s *Store) execCallUpdate(ctx context.Context, action, query string, args ...interface{}) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error(ctx, "failed to "+action, err)
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CallCountParams scopes the dashboard counters
type CallCountParams struct {
	AdvisorID          *uuid.UUID
	From               *time.Time
	To                 *time.Time
	Statuses           []string
	ComplianceStatuses []string
}

func (p CallCountParams) where() (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	argCount := 0

	if p.AdvisorID != nil {
		argCount++
		clause += fmt.Sprintf(" AND advisor_id = $%d", argCount)
		args = append(args, *p.AdvisorID)
	}
	if p.From != nil {
		argCount++
		clause += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, *p.From)
	}
	if p.To != nil {
		argCount++
		clause += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, *p.To)
	}
	if len(p.Statuses) > 0 {
		argCount++
		clause += fmt.Sprintf(" AND status = ANY($%d)", argCount)
		args = append(args, StringArray(p.Statuses))
	}
	if len(p.ComplianceStatuses) > 0 {
		argCount++
		clause += fmt.Sprintf(" AND compliance_status = ANY($%d)", argCount)
		args = append(args, StringArray(p.ComplianceStatuses))
	}
	return clause, args
}

// CountCalls counts calls matching the filter
func (s *Store) CountCalls(ctx context.Context, params CallCountParams) (int, error) {
	clause, args := params.where()
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM calls"+clause, args...); err != nil {
		s.logger.Error(ctx, "failed to count calls", err)
		return 0, fmt.Errorf("failed to count calls: %w", err)
	}
	return count, nil
}

// CountComplianceFlags sums the compliance flags raised across matching calls
func (s *Store) CountComplianceFlags(ctx context.Context, params CallCountParams) (int, error) {
	clause, args := params.where()
	var count int
	query := "SELECT COALESCE(SUM(COALESCE(array_length(compliance_flags, 1), 0)), 0) FROM calls" + clause
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		s.logger.Error(ctx, "failed to count compliance flags", err)
		return 0, fmt.Errorf("failed to count compliance flags: %w", err)
	}
	return count, nil
}
