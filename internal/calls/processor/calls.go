package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finecho-server/internal/calls/lock"
	"finecho-server/internal/metrics"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
)

// Viewer is the authenticated user acting on calls. Admins see every advisor's calls.
type Viewer struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (v Viewer) canSee(call store.Call) bool {
	return v.IsAdmin || call.AdvisorID == v.UserID
}

// UploadCallRequest carries one uploaded recording
type UploadCallRequest struct {
	ClientID *uuid.UUID
	Filename string
	Audio    io.Reader
}

// UploadCall stores the audio, creates the call row and schedules the pipeline
func (p *CallProcessor) UploadCall(ctx context.Context, viewer Viewer, req UploadCallRequest) (store.Call, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "advisor_id", Value: viewer.UserID.String()})

	if req.Audio == nil {
		return store.Call{}, ErrMissingAudio
	}

	if req.ClientID != nil {
		client, err := p.store.GetClientByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Call{}, ErrClientNotFound
			}
			p.logger.Error(ctx, "failed to get client", err)
			return store.Call{}, err
		}
		if client.AdvisorID != viewer.UserID {
			return store.Call{}, ErrClientNotFound
		}
	}

	callID := uuid.New()
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID.String()})

	audioPath, err := p.saveAudio(callID, req.Filename, req.Audio)
	if err != nil {
		p.logger.Error(ctx, "failed to save uploaded audio", err)
		return store.Call{}, err
	}

	call, err := p.store.CreateCall(ctx, store.CreateCallParams{
		ID:            callID,
		AdvisorID:     viewer.UserID,
		ClientID:      req.ClientID,
		AudioFilename: filepath.Base(req.Filename),
		AudioPath:     audioPath,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create call", err)
		p.removeAudio(ctx, audioPath)
		return store.Call{}, err
	}

	if err := p.schedule(ctx, call.ID, audioPath); err != nil {
		p.markFailed(ctx, call.ID, store.CallStatusFailedSummary, processingFailedPrefix+err.Error(), err.Error())
		return store.Call{}, err
	}

	p.logger.Info(ctx, "call uploaded and scheduled")
	return call, nil
}

func (p *CallProcessor) saveAudio(callID uuid.UUID, filename string, audio io.Reader) (string, error) {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(p.uploadDir, callID.String()+strings.ToLower(filepath.Ext(filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}

	if _, err := io.Copy(f, audio); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}

// ListCallsRequest filters a call listing
type ListCallsRequest struct {
	Status *string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// ListCalls returns the viewer's calls, newest first
func (p *CallProcessor) ListCalls(ctx context.Context, viewer Viewer, req ListCallsRequest) ([]store.Call, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return nil, ErrInvalidDateRange
	}

	params := store.ListCallsParams{
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
		Offset: (req.Page - 1) * req.Limit,
	}
	if !viewer.IsAdmin {
		params.AdvisorID = &viewer.UserID
	}
	if req.Status != nil {
		status := store.CallStatus(*req.Status)
		if !isValidCallStatus(status) {
			return nil, ErrInvalidStatus
		}
		params.Status = &status
	}

	calls, err := p.store.ListCalls(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list calls", err)
		return nil, err
	}
	if calls == nil {
		calls = []store.Call{}
	}
	return calls, nil
}

// GetCall returns one call. Calls owned by another advisor look missing.
func (p *CallProcessor) GetCall(ctx context.Context, viewer Viewer, callID uuid.UUID) (store.Call, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID.String()})

	call, err := p.store.GetCallByID(ctx, callID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Call{}, ErrCallNotFound
		}
		p.logger.Error(ctx, "failed to get call", err)
		return store.Call{}, err
	}
	if !viewer.canSee(call) {
		return store.Call{}, ErrCallNotFound
	}
	return call, nil
}

// ReprocessCall runs the pipeline again for a failed call whose audio is still on disk.
// Completed calls are never re-run.
func (p *CallProcessor) ReprocessCall(ctx context.Context, viewer Viewer, callID uuid.UUID) (store.Call, error) {
	call, err := p.GetCall(ctx, viewer, callID)
	if err != nil {
		return store.Call{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID.String()})

	if !call.Status.IsFailed() || call.AudioPath == "" {
		return store.Call{}, ErrCallNotReprocessable
	}
	if _, err := os.Stat(call.AudioPath); err != nil {
		p.logger.Warn(ctx, "audio for failed call is gone, cannot reprocess")
		return store.Call{}, ErrCallNotReprocessable
	}

	token, err := p.acquire(ctx, callID)
	if err != nil {
		return store.Call{}, err
	}

	if err := p.store.ResetFailedCall(ctx, callID); err != nil {
		p.release(ctx, callID, token)
		if errors.Is(err, store.ErrNotFound) {
			return store.Call{}, ErrCallNotReprocessable
		}
		p.logger.Error(ctx, "failed to reset call", err)
		return store.Call{}, err
	}

	if err := p.dispatch(ctx, Job{CallID: callID, AudioPath: call.AudioPath, LockToken: token}); err != nil {
		p.markFailed(ctx, callID, call.Status, processingFailedPrefix+err.Error(), err.Error())
		return store.Call{}, err
	}

	call.Status = store.CallStatusUploaded
	p.logger.Info(ctx, "call scheduled for reprocessing")
	return call, nil
}

// RunJob is the entry point used by dispatchers. It makes sure the run holds the
// call lock, runs the pipeline and releases the lock.
func (p *CallProcessor) RunJob(ctx context.Context, job Job) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: job.CallID.String()})

	token := job.LockToken
	if token == "" {
		var err error
		token, err = p.acquire(ctx, job.CallID)
		if err != nil {
			p.logger.Warn(ctx, fmt.Sprintf("skipping call run: %v", err))
			return nil
		}
	}
	defer p.release(context.WithoutCancel(ctx), job.CallID, token)

	p.Process(ctx, job.CallID, job.AudioPath)
	return nil
}

func (p *CallProcessor) schedule(ctx context.Context, callID uuid.UUID, audioPath string) error {
	token, err := p.acquire(ctx, callID)
	if err != nil {
		return err
	}
	return p.dispatch(ctx, Job{CallID: callID, AudioPath: audioPath, LockToken: token})
}

func (p *CallProcessor) acquire(ctx context.Context, callID uuid.UUID) (string, error) {
	token, err := p.locker.Acquire(ctx, callID)
	if err != nil {
		if errors.Is(err, lock.ErrCallLocked) {
			metrics.DispatchRejected.WithLabelValues("locked").Inc()
			return "", lock.ErrCallLocked
		}
		p.logger.Error(ctx, "failed to acquire call lock", err)
		return "", err
	}
	return token, nil
}

func (p *CallProcessor) release(ctx context.Context, callID uuid.UUID, token string) {
	if err := p.locker.Release(ctx, callID, token); err != nil {
		p.logger.Error(ctx, "failed to release call lock", err)
	}
}

// dispatch releases the lock itself when the job never reaches a runner.
func (p *CallProcessor) dispatch(ctx context.Context, job Job) error {
	if p.dispatcher == nil {
		p.release(ctx, job.CallID, job.LockToken)
		return ErrDispatchFailed
	}
	if err := p.dispatcher.Dispatch(ctx, job); err != nil {
		p.logger.Error(ctx, "failed to dispatch call", err)
		metrics.DispatchRejected.WithLabelValues("dispatch_error").Inc()
		p.release(ctx, job.CallID, job.LockToken)
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	return nil
}

func isValidCallStatus(status store.CallStatus) bool {
	switch status {
	case store.CallStatusUploaded,
		store.CallStatusTranscribing,
		store.CallStatusTranscribed,
		store.CallStatusCompleted,
		store.CallStatusFailedTranscription,
		store.CallStatusFailedSummary:
		return true
	}
	return false
}
