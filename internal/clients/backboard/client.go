// Package backboard calls the Backboard chat API to analyse call transcripts.
package backboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"finecho-server/internal/analysis"
	"finecho-server/internal/config"
	"finecho-server/internal/observability"
)

var (
	// ErrRemoteAnalysis matches every *RemoteAnalysisError via errors.Is.
	ErrRemoteAnalysis = errors.New("remote analysis failed")
	ErrNotConfigured  = errors.New("Backboard is not configured")
)

// RemoteAnalysisError is returned for every failure of the remote analysis path.
type RemoteAnalysisError struct {
	Message string
	Err     error
}

func (e *RemoteAnalysisError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *RemoteAnalysisError) Unwrap() error {
	return e.Err
}

func (e *RemoteAnalysisError) Is(target error) bool {
	return target == ErrRemoteAnalysis
}

const (
	chatPath         = "/v1/chat"
	maxErrorBodySize = 300
	defaultSummary   = "No summary available."
)

const promptTemplate = `You are a financial advisory documentation engine.

Given the full transcript of an advisor-client call, analyse it and respond with STRICT JSON only, no prose.

JSON schema:
{
  "summary": string,                      // 3-8 sentence business-friendly summary of the conversation
  "goals": string[],                      // list of concise client financial goals
  "language": string,                     // ISO language code like "en"
  "compliance_flags": string[],           // any potential compliance concerns, empty if none
  "compliance_status": "clear" | "warning" | "risk"
}

Transcript:
"""%s"""`

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *observability.Logger
}

func New(cfg config.BackboardConfig, logger *observability.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Configured reports whether both the base URL and API key are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	ModelName string        `json:"model_name"`
	Messages  []chatMessage `json:"messages"`
	Memory    string        `json:"memory"`
	WebSearch string        `json:"web_search"`
}

// BuildPrompt embeds the transcript verbatim in the fixed analysis instruction.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}

// Analyze sends one chat request and returns a fully normalized Result, or a
// *RemoteAnalysisError. It never returns a partial Result.
func (c *Client) Analyze(ctx context.Context, transcript string) (analysis.Result, error) {
	if !c.Configured() {
		return analysis.Result{}, &RemoteAnalysisError{Message: ErrNotConfigured.Error(), Err: ErrNotConfigured}
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "transcript_length", Value: len(transcript)},
		observability.Field{Key: "model", Value: c.model},
	)

	body, err := json.Marshal(chatRequest{
		ModelName: c.model,
		Messages:  []chatMessage{{Role: "user", Content: BuildPrompt(transcript)}},
		Memory:    "off",
		WebSearch: "off",
	})
	if err != nil {
		return analysis.Result{}, &RemoteAnalysisError{Message: "failed to encode Backboard request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return analysis.Result{}, &RemoteAnalysisError{Message: "failed to build Backboard request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "Backboard request failed", err)
		return analysis.Result{}, &RemoteAnalysisError{Message: "Backboard request failed: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return analysis.Result{}, &RemoteAnalysisError{Message: "failed to read Backboard response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(respBody)
		if len(snippet) > maxErrorBodySize {
			snippet = snippet[:maxErrorBodySize]
		}
		msg := fmt.Sprintf("Backboard request failed: %d %s", resp.StatusCode, strings.TrimSpace(snippet))
		c.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "status_code", Value: resp.StatusCode}), msg)
		return analysis.Result{}, &RemoteAnalysisError{Message: msg}
	}

	raw, err := extractText(respBody)
	if err != nil {
		return analysis.Result{}, err
	}

	result, err := parseResult(raw)
	if err != nil {
		c.logger.Warn(ctx, "Backboard did not return valid JSON")
		return analysis.Result{}, err
	}
	return result, nil
}

// extractText finds the model output in the first present envelope field.
func extractText(body []byte) (string, error) {
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &RemoteAnalysisError{Message: "Backboard response is not JSON", Err: err}
	}

	choice := firstChoice(envelope)
	message, _ := choice["message"].(map[string]interface{})
	candidates := []interface{}{
		envelope["output_text"],
		envelope["output"],
		message["content"],
		choice["text"],
	}

	for _, value := range candidates {
		if value == nil {
			continue
		}
		text, ok := value.(string)
		if !ok || text == "" {
			break
		}
		return text, nil
	}
	return "", &RemoteAnalysisError{Message: "Backboard response missing text output"}
}

func firstChoice(envelope map[string]interface{}) map[string]interface{} {
	choices, _ := envelope["choices"].([]interface{})
	if len(choices) == 0 {
		return nil
	}
	choice, _ := choices[0].(map[string]interface{})
	return choice
}

func parseResult(raw string) (analysis.Result, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return analysis.Result{}, &RemoteAnalysisError{Message: "Backboard did not return valid JSON", Err: err}
	}
	if parsed == nil {
		return analysis.Result{}, &RemoteAnalysisError{Message: "Backboard did not return a JSON object"}
	}

	summary := strings.TrimSpace(coerceString(parsed["summary"]))
	if summary == "" {
		summary = defaultSummary
	}

	language := coerceString(parsed["language"])
	if language == "" {
		language = analysis.DefaultLanguage
	}

	flags := coerceStrings(parsed["compliance_flags"])

	status, _ := parsed["compliance_status"].(string)
	complianceStatus := analysis.ComplianceStatus(status)
	if !complianceStatus.Valid() {
		complianceStatus = analysis.ComplianceClear
		if len(flags) > 0 {
			complianceStatus = analysis.ComplianceWarning
		}
	}

	return analysis.Result{
		Summary:          summary,
		Goals:            coerceStrings(parsed["goals"]),
		Language:         language,
		ComplianceFlags:  flags,
		ComplianceStatus: complianceStatus,
		Source:           analysis.SourceRemote,
	}, nil
}

// coerceStrings keeps the distinct non-empty scalar members of a JSON array in
// order. Anything that is not an array yields an empty slice.
func coerceStrings(value interface{}) []string {
	items, ok := value.([]interface{})
	out := []string{}
	if !ok {
		return out
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s := coerceString(item)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
