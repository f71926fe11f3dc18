package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authHandler "finecho-server/internal/auth/handler"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"
	"finecho-server/internal/summaries/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummaryService struct {
	advisorID uuid.UUID
	callID    uuid.UUID
	saved     processor.SaveSummaryRequest
	from, to  *time.Time
	summary   store.Summary
	summaries []store.Summary
	err       error
}

func (f *fakeSummaryService) SaveSummary(_ context.Context, advisorID uuid.UUID, req processor.SaveSummaryRequest) (store.Summary, error) {
	f.advisorID = advisorID
	f.saved = req
	return f.summary, f.err
}

func (f *fakeSummaryService) ListSummaries(_ context.Context, advisorID uuid.UUID, from, to *time.Time) ([]store.Summary, error) {
	f.advisorID = advisorID
	f.from, f.to = from, to
	return f.summaries, f.err
}

func (f *fakeSummaryService) GetCallSummary(_ context.Context, advisorID, callID uuid.UUID) (store.Summary, error) {
	f.advisorID = advisorID
	f.callID = callID
	return f.summary, f.err
}

func newTestRouter(svc SummaryService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, observability.NewNopLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(authHandler.ContextKeyUserID, userID.String())
		c.Set(authHandler.ContextKeyUserRole, store.ProfileRoleAdvisor)
		c.Next()
	})
	r.POST("/api/summary", h.HandleSaveSummary)
	r.GET("/api/summaries", h.HandleListSummaries)
	r.GET("/api/advisor/calls/:id/summary", h.HandleGetCallSummary)
	return r
}

func TestHandleSaveSummary(t *testing.T) {
	advisorID := uuid.New()
	callID := uuid.New()
	svc := &fakeSummaryService{summary: store.Summary{ID: uuid.New(), CallID: callID, AdvisorID: advisorID, Summary: "SIP agreed"}}
	r := newTestRouter(svc, advisorID)

	body := `{
		"callId": "` + callID.String() + `",
		"summary": "SIP agreed",
		"goals": ["retirement"],
		"riskLevel": "moderate",
		"sip": {"type": "equity", "amount": 5000, "category": "flexi cap", "riskExplained": true},
		"clientResponse": "deferred",
		"compliance": "clear"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got store.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, callID, got.CallID)

	assert.Equal(t, advisorID, svc.advisorID)
	assert.Equal(t, callID, svc.saved.CallID)
	assert.Equal(t, []string{"retirement"}, svc.saved.Goals)
	require.NotNil(t, svc.saved.SIP)
	require.NotNil(t, svc.saved.SIP.Amount)
	assert.Equal(t, 5000.0, *svc.saved.SIP.Amount)
	require.NotNil(t, svc.saved.SIP.RiskExplained)
	assert.True(t, *svc.saved.SIP.RiskExplained)
	require.NotNil(t, svc.saved.ClientResponse)
	assert.Equal(t, "deferred", *svc.saved.ClientResponse)
}

func TestHandleSaveSummary_Errors(t *testing.T) {
	callID := uuid.New().String()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "malformed json", body: `{"callId":`, wantStatus: http.StatusBadRequest},
		{name: "missing summary", body: `{"callId":"` + callID + `"}`, wantStatus: http.StatusBadRequest},
		{name: "call id not a uuid", body: `{"callId":"abc","summary":"s"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown client response", body: `{"callId":"` + callID + `","summary":"s","clientResponse":"maybe"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown compliance", body: `{"callId":"` + callID + `","summary":"s","compliance":"flagged"}`, wantStatus: http.StatusBadRequest},
		{name: "negative sip amount", body: `{"callId":"` + callID + `","summary":"s","sip":{"amount":-1}}`, wantStatus: http.StatusBadRequest},
		{
			name:       "call of another advisor",
			body:       `{"callId":"` + callID + `","summary":"s"}`,
			err:        processor.ErrCallNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "CALL_NOT_FOUND",
		},
		{
			name:       "store failure",
			body:       `{"callId":"` + callID + `","summary":"s"}`,
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeSummaryService{err: tt.err}, uuid.New())

			req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
			}
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestHandleListSummaries(t *testing.T) {
	advisorID := uuid.New()
	svc := &fakeSummaryService{summaries: []store.Summary{{ID: uuid.New(), AdvisorID: advisorID, Summary: "first"}}}
	r := newTestRouter(svc, advisorID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/summaries?from=2025-03-01&to=2025-03-31", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got []store.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Summary)

	require.NotNil(t, svc.from)
	require.NotNil(t, svc.to)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *svc.from)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *svc.to)
}

func TestHandleListSummaries_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "malformed date", query: "?to=yesterday", wantStatus: http.StatusBadRequest},
		{name: "inverted range", query: "?from=2025-03-31&to=2025-03-01", err: processor.ErrInvalidDateRange, wantStatus: http.StatusBadRequest},
		{name: "store failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeSummaryService{err: tt.err}, uuid.New())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/summaries"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestHandleGetCallSummary(t *testing.T) {
	advisorID := uuid.New()
	callID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := &fakeSummaryService{summary: store.Summary{ID: uuid.New(), CallID: callID, AdvisorID: advisorID}}
		r := newTestRouter(svc, advisorID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/advisor/calls/"+callID.String()+"/summary", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, callID, svc.callID)
		assert.Equal(t, advisorID, svc.advisorID)
	})

	t.Run("not found", func(t *testing.T) {
		r := newTestRouter(&fakeSummaryService{err: processor.ErrSummaryNotFound}, advisorID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/advisor/calls/"+callID.String()+"/summary", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "SUMMARY_NOT_FOUND")
	})

	t.Run("invalid call id", func(t *testing.T) {
		svc := &fakeSummaryService{}
		r := newTestRouter(svc, advisorID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/advisor/calls/not-a-uuid/summary", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
		assert.Equal(t, uuid.Nil, svc.callID)
	})
}
