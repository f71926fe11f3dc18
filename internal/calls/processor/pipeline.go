package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"finecho-server/internal/analysis"
	"finecho-server/internal/analysis/heuristic"
	"finecho-server/internal/clients/whisper"
	"finecho-server/internal/events"
	"finecho-server/internal/metrics"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
)

const (
	transcriptionFailedPrefix = "Transcription failed: "
	summaryFailedPrefix       = "Summary failed: "
	processingFailedPrefix    = "Processing failed: "

	panicMessage  = "unexpected internal error"
	stagePipeline = "pipeline"
)

// Process runs the pipeline for one call: transcription, then analysis with a
// heuristic fallback. It never returns an error and never panics; every failure
// ends as a terminal status on the call row. The audio file is removed afterwards.
//
// Cancelling ctx stops transcription and remote analysis, but store writes and the
// outcome event still go through so the call never stays in a non-terminal state.
func (p *CallProcessor) Process(ctx context.Context, callID uuid.UUID, audioPath string) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "call_id", Value: callID.String()})
	persistCtx := context.WithoutCancel(ctx)

	start := time.Now()
	metrics.CallsActive.Inc()

	defer func() {
		metrics.CallsActive.Dec()
		observeStage(metrics.StageTotal, start)
		p.removeAudio(ctx, audioPath)
	}()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			p.logger.Error(ctx, "call pipeline panicked", err)
			metrics.Errors.WithLabelValues(stagePipeline, "panic").Inc()
			p.markFailed(persistCtx, callID, store.CallStatusFailedSummary, processingFailedPrefix+panicMessage, err.Error())
			metrics.CallsTotal.WithLabelValues(string(store.CallStatusFailedSummary)).Inc()
		}
	}()

	p.logger.Info(ctx, "call pipeline started")

	status, err := p.run(ctx, persistCtx, callID, audioPath)
	if err != nil {
		p.logger.Error(ctx, "call pipeline failed", err)
		metrics.Errors.WithLabelValues(stagePipeline, "unhandled").Inc()
		p.markFailed(persistCtx, callID, store.CallStatusFailedSummary, processingFailedPrefix+err.Error(), err.Error())
		status = store.CallStatusFailedSummary
	}

	metrics.CallsTotal.WithLabelValues(string(status)).Inc()
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "status", Value: string(status)},
		observability.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
	), "call pipeline finished")

	p.publishOutcome(persistCtx, callID)
}

// run executes both stages. A returned error means a stage could not record its own
// terminal state. ctx bounds the external work, persistCtx is used for every store write.
func (p *CallProcessor) run(ctx, persistCtx context.Context, callID uuid.UUID, audioPath string) (store.CallStatus, error) {
	if err := p.store.MarkCallTranscribing(persistCtx, callID); err != nil {
		return "", fmt.Errorf("failed to mark call transcribing: %w", err)
	}

	stageStart := time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, audioPath, "")
	observeStage(metrics.StageTranscription, stageStart)
	if err != nil {
		detail := transcriptionDetail(err)
		p.logger.Error(ctx, "transcription failed", err)
		metrics.Errors.WithLabelValues(metrics.StageTranscription, transcriptionErrorType(err)).Inc()

		if err := p.store.MarkCallFailed(persistCtx, callID, store.CallStatusFailedTranscription, transcriptionFailedPrefix+detail, detail); err != nil {
			return "", fmt.Errorf("failed to record transcription failure: %w", err)
		}
		return store.CallStatusFailedTranscription, nil
	}

	if err := p.store.SaveCallTranscript(persistCtx, callID, transcript.Text); err != nil {
		return "", fmt.Errorf("failed to save transcript: %w", err)
	}

	stageStart = time.Now()
	result := p.analyze(ctx, transcript.Text)
	observeStage(metrics.StageAnalysis, stageStart)

	stageStart = time.Now()
	err = p.store.SaveCallAnalysis(persistCtx, callID, store.SaveCallAnalysisParams{
		Summary:          result.Summary,
		Goals:            result.Goals,
		Language:         result.Language,
		ComplianceFlags:  result.ComplianceFlags,
		ComplianceStatus: string(result.ComplianceStatus),
		AnalysisSource:   string(result.Source),
	})
	observeStage(metrics.StagePersist, stageStart)
	if err != nil {
		p.logger.Error(ctx, "failed to save call analysis", err)
		metrics.Errors.WithLabelValues(metrics.StagePersist, "store").Inc()

		if mErr := p.store.MarkCallFailed(persistCtx, callID, store.CallStatusFailedSummary, summaryFailedPrefix+err.Error(), err.Error()); mErr != nil {
			return "", fmt.Errorf("failed to record summary failure: %w", mErr)
		}
		return store.CallStatusFailedSummary, nil
	}

	metrics.AnalysisSource.WithLabelValues(string(result.Source)).Inc()
	return store.CallStatusCompleted, nil
}

// analyze prefers the remote model and falls back to the heuristics on any error.
// The result always comes from exactly one of the two.
func (p *CallProcessor) analyze(ctx context.Context, transcript string) analysis.Result {
	if p.analyzer == nil {
		return heuristic.Analyze(transcript)
	}

	result, err := p.analyzer.Analyze(ctx, transcript)
	if err != nil {
		p.logger.InfoWithError(ctx, "remote analysis unavailable, using heuristics", err)
		metrics.Errors.WithLabelValues(metrics.StageAnalysis, "remote").Inc()
		return heuristic.Analyze(transcript)
	}
	return result
}

// markFailed is the last-resort terminal write; its own failure is only logged.
func (p *CallProcessor) markFailed(ctx context.Context, callID uuid.UUID, status store.CallStatus, summary, detail string) {
	if err := p.store.MarkCallFailed(ctx, callID, status, summary, detail); err != nil {
		p.logger.Error(ctx, "failed to record call failure", err)
	}
}

func (p *CallProcessor) publishOutcome(ctx context.Context, callID uuid.UUID) {
	if p.publisher == nil {
		return
	}

	call, err := p.store.GetCallByID(ctx, callID)
	if err != nil {
		p.logger.Error(ctx, "failed to load call for event", err)
		return
	}

	evt := events.CallProcessed{
		CallID:    call.ID,
		AdvisorID: call.AdvisorID,
		Status:    string(call.Status),
	}
	if call.ComplianceStatus != nil {
		evt.ComplianceStatus = *call.ComplianceStatus
	}
	if call.AnalysisSource != nil {
		evt.AnalysisSource = *call.AnalysisSource
	}

	if err := p.publisher.PublishCallProcessed(ctx, evt); err != nil {
		p.logger.Error(ctx, "failed to publish call outcome", err)
	}
}

func (p *CallProcessor) removeAudio(ctx context.Context, audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.Remove(audioPath); err != nil {
		p.logger.Debug(ctx, fmt.Sprintf("could not remove audio file: %v", err))
	}
}

func transcriptionDetail(err error) string {
	var te *whisper.TranscriptionError
	if errors.As(err, &te) {
		return te.Detail
	}
	return err.Error()
}

func transcriptionErrorType(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "subprocess"
}

func observeStage(stage string, start time.Time) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
