package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"finecho-server/internal/analysis"
	"finecho-server/internal/clients/whisper"
	"finecho-server/internal/events"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrCallNotFound         = errors.New("call not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrCallNotReprocessable = errors.New("call cannot be reprocessed")
	ErrInvalidStatus        = errors.New("invalid call status")
	ErrInvalidDateRange     = errors.New("from must be before to")
	ErrMissingAudio         = errors.New("audio file is required")
	ErrDispatchFailed       = errors.New("failed to schedule call processing")
)

// CallStore defines the database operations required by CallProcessor
type CallStore interface {
	CreateCall(ctx context.Context, params store.CreateCallParams) (store.Call, error)
	GetCallByID(ctx context.Context, callID uuid.UUID) (store.Call, error)
	ListCalls(ctx context.Context, params store.ListCallsParams) ([]store.Call, error)
	MarkCallTranscribing(ctx context.Context, callID uuid.UUID) error
	SaveCallTranscript(ctx context.Context, callID uuid.UUID, transcript string) error
	SaveCallAnalysis(ctx context.Context, callID uuid.UUID, params store.SaveCallAnalysisParams) error
	MarkCallFailed(ctx context.Context, callID uuid.UUID, status store.CallStatus, summary, errorDetail string) error
	ResetFailedCall(ctx context.Context, callID uuid.UUID) error
	GetClientByID(ctx context.Context, clientID uuid.UUID) (store.Client, error)
}

// Transcriber turns an audio file into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputPath string) (whisper.Transcript, error)
}

// RemoteAnalyzer produces a full analysis from a remote model
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, transcript string) (analysis.Result, error)
}

// EventPublisher announces terminal pipeline outcomes
type EventPublisher interface {
	PublishCallProcessed(ctx context.Context, evt events.CallProcessed) error
}

// Locker grants exclusive processing rights for one call id
type Locker interface {
	Acquire(ctx context.Context, callID uuid.UUID) (string, error)
	Release(ctx context.Context, callID uuid.UUID, token string) error
}

// Dispatcher hands a job to whatever runs the pipeline in the background
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job) error
}

// Job is the unit of background work for one call. LockToken is empty when the
// job was not dispatched through CallProcessor.
type Job struct {
	CallID    uuid.UUID `json:"call_id"`
	AudioPath string    `json:"audio_path"`
	LockToken string    `json:"lock_token,omitempty"`
}

type CallProcessor struct {
	store       CallStore
	transcriber Transcriber
	analyzer    RemoteAnalyzer
	publisher   EventPublisher
	locker      Locker
	dispatcher  Dispatcher
	uploadDir   string
	logger      *observability.Logger
}

// New creates a CallProcessor. analyzer and publisher may be nil: without an analyzer
// every call is analyzed by the heuristics, without a publisher no events are sent.
func New(
	store CallStore,
	transcriber Transcriber,
	analyzer RemoteAnalyzer,
	publisher EventPublisher,
	locker Locker,
	uploadDir string,
	logger *observability.Logger,
) *CallProcessor {
	return &CallProcessor{
		store:       store,
		transcriber: transcriber,
		analyzer:    analyzer,
		publisher:   publisher,
		locker:      locker,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// SetDispatcher must be called before Upload or Reprocess. The dispatcher usually
// needs the processor itself, so it cannot be a constructor argument.
func (p *CallProcessor) SetDispatcher(d Dispatcher) {
	p.dispatcher = d
}
