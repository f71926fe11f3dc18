package backboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finecho-server/internal/analysis"
	"finecho-server/internal/config"
	"finecho-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.BackboardConfig{
		BaseURL: srv.URL + "/",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}, observability.NewNopLogger())
}

func respondJSON(t *testing.T, status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestClient_Analyze_NotConfigured(t *testing.T) {
	c := New(config.BackboardConfig{APIKey: "key"}, observability.NewNopLogger())

	_, err := c.Analyze(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteAnalysis))
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestClient_Analyze_SendsRequest(t *testing.T) {
	var got chatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		respondJSON(t, http.StatusOK, map[string]string{
			"output_text": `{"summary":"ok","goals":["Retirement"],"language":"en","compliance_flags":[],"compliance_status":"clear"}`,
		})(w, r)
	})

	_, err := c.Analyze(context.Background(), "my transcript")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", got.ModelName)
	assert.Equal(t, "off", got.Memory)
	assert.Equal(t, "off", got.WebSearch)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, `"""my transcript"""`)
}

func TestClient_Analyze_Envelopes(t *testing.T) {
	payload := `{"summary":" Client plans retirement. ","goals":["Retirement","",3],"language":"hi","compliance_flags":["Guarantee mentioned"],"compliance_status":"risk"}`

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "output_text", body: map[string]interface{}{"output_text": payload}},
		{name: "output", body: map[string]interface{}{"output_text": nil, "output": payload}},
		{name: "choices message", body: map[string]interface{}{
			"choices": []interface{}{map[string]interface{}{"message": map[string]interface{}{"content": payload}}},
		}},
		{name: "choices text", body: map[string]interface{}{
			"choices": []interface{}{map[string]interface{}{"text": payload}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, respondJSON(t, http.StatusOK, tt.body))

			got, err := c.Analyze(context.Background(), "transcript")
			require.NoError(t, err)
			assert.Equal(t, analysis.Result{
				Summary:          "Client plans retirement.",
				Goals:            []string{"Retirement", "3"},
				Language:         "hi",
				ComplianceFlags:  []string{"Guarantee mentioned"},
				ComplianceStatus: analysis.ComplianceRisk,
				Source:           analysis.SourceRemote,
			}, got)
		})
	}
}

func TestClient_Analyze_Normalization(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   analysis.Result
	}{
		{
			name:   "defaults when fields are missing",
			output: `{}`,
			want: analysis.Result{
				Summary:          "No summary available.",
				Goals:            []string{},
				Language:         "en",
				ComplianceFlags:  []string{},
				ComplianceStatus: analysis.ComplianceClear,
				Source:           analysis.SourceRemote,
			},
		},
		{
			name:   "flags without valid status become warning",
			output: `{"summary":"s","goals":"retirement","compliance_flags":["a"],"compliance_status":"unknown"}`,
			want: analysis.Result{
				Summary:          "s",
				Goals:            []string{},
				Language:         "en",
				ComplianceFlags:  []string{"a"},
				ComplianceStatus: analysis.ComplianceWarning,
				Source:           analysis.SourceRemote,
			},
		},
		{
			name:   "duplicate goals and flags are collapsed in order",
			output: `{"summary":"s","goals":["retirement","tax saving","retirement"],"compliance_flags":["a","b","a"],"compliance_status":"warning"}`,
			want: analysis.Result{
				Summary:          "s",
				Goals:            []string{"retirement", "tax saving"},
				Language:         "en",
				ComplianceFlags:  []string{"a", "b"},
				ComplianceStatus: analysis.ComplianceWarning,
				Source:           analysis.SourceRemote,
			},
		},
		{
			name:   "explicit clear is kept even with flags",
			output: `{"summary":"s","compliance_flags":["a"],"compliance_status":"clear"}`,
			want: analysis.Result{
				Summary:          "s",
				Goals:            []string{},
				Language:         "en",
				ComplianceFlags:  []string{"a"},
				ComplianceStatus: analysis.ComplianceClear,
				Source:           analysis.SourceRemote,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, respondJSON(t, http.StatusOK, map[string]string{"output_text": tt.output}))
			got, err := c.Analyze(context.Background(), "transcript")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Analyze_Errors(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantInMsg string
	}{
		{
			name:      "invalid model json",
			handler:   respondJSON(t, http.StatusOK, map[string]string{"output_text": "{not valid json"}),
			wantInMsg: "did not return valid JSON",
		},
		{
			name:      "model json is not an object",
			handler:   respondJSON(t, http.StatusOK, map[string]string{"output_text": `["a"]`}),
			wantInMsg: "did not return valid JSON",
		},
		{
			name:      "missing text output",
			handler:   respondJSON(t, http.StatusOK, map[string]string{"id": "x"}),
			wantInMsg: "missing text output",
		},
		{
			name:      "non string output",
			handler:   respondJSON(t, http.StatusOK, map[string]interface{}{"output_text": map[string]string{"a": "b"}}),
			wantInMsg: "missing text output",
		},
		{
			name: "non 2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
			},
			wantInMsg: "Backboard request failed: 502 " + strings.Repeat("x", 300),
		},
		{
			name: "envelope is not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantInMsg: "not JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			got, err := c.Analyze(context.Background(), "transcript")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRemoteAnalysis))
			assert.Contains(t, err.Error(), tt.wantInMsg)
			assert.Equal(t, analysis.Result{}, got)
		})
	}
}

func TestClient_Analyze_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := New(config.BackboardConfig{
		BaseURL: srv.URL,
		APIKey:  "k",
		Model:   "m",
		Timeout: 20 * time.Millisecond,
	}, observability.NewNopLogger())

	_, err := c.Analyze(context.Background(), "transcript")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemoteAnalysis))
}
