// Package whisper runs the speech-to-text helper script as a subprocess.
package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"finecho-server/internal/config"
	"finecho-server/internal/observability"
)

// ErrTranscription matches every *TranscriptionError via errors.Is.
var ErrTranscription = errors.New("transcription failed")

// TranscriptionError carries the human-readable reason the helper failed.
type TranscriptionError struct {
	Detail string
	Err    error
}

func (e *TranscriptionError) Error() string {
	return e.Detail
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

func (e *TranscriptionError) Is(target error) bool {
	return target == ErrTranscription
}

// Transcript is the text produced for one audio file.
type Transcript struct {
	Text     string
	Language string
}

type Client struct {
	pythonPath string
	scriptPath string
	timeout    time.Duration
	logger     *observability.Logger
}

func New(cfg config.TranscribeConfig, logger *observability.Logger) *Client {
	script := cfg.ScriptPath
	if abs, err := filepath.Abs(script); err == nil {
		script = abs
	}
	return &Client{
		pythonPath: cfg.PythonPath,
		scriptPath: script,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// Transcribe runs `<python> <script> <audioPath> [outputPath]` from the script's
// directory. Without outputPath the transcript is read from stdout, otherwise from the
// file the helper writes.
func (c *Client) Transcribe(ctx context.Context, audioPath, outputPath string) (Transcript, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{c.scriptPath, audioPath}
	if outputPath != "" {
		args = append(args, outputPath)
	}

	cmd := exec.CommandContext(ctx, c.pythonPath, args...)
	cmd.Dir = filepath.Dir(c.scriptPath)
	cmd.Env = os.Environ()
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	if outputPath != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "audio_path", Value: audioPath},
		observability.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
	)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Transcript{}, &TranscriptionError{
				Detail: fmt.Sprintf("transcription timed out after %s", c.timeout),
				Err:    ctx.Err(),
			}
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = fmt.Sprintf("Transcription failed with code %d", exitErr.ExitCode())
			}
			return Transcript{}, &TranscriptionError{Detail: detail, Err: err}
		}

		return Transcript{}, &TranscriptionError{
			Detail: fmt.Sprintf("failed to start transcription: %v", err),
			Err:    err,
		}
	}

	text := stdout.String()
	if outputPath != "" {
		data, err := os.ReadFile(outputPath)
		if err != nil {
			return Transcript{}, &TranscriptionError{
				Detail: fmt.Sprintf("failed to read transcript: %v", err),
				Err:    err,
			}
		}
		text = string(data)
	}

	c.logger.Debug(ctx, "transcription finished")
	return Transcript{Text: strings.TrimSpace(text)}, nil
}
