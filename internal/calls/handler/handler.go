package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"finecho-server/internal/apierrors"
	authHandler "finecho-server/internal/auth/handler"
	"finecho-server/internal/calls/processor"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CallService is the part of the call processor the HTTP layer uses
type CallService interface {
	UploadCall(ctx context.Context, viewer processor.Viewer, req processor.UploadCallRequest) (store.Call, error)
	ListCalls(ctx context.Context, viewer processor.Viewer, req processor.ListCallsRequest) ([]store.Call, error)
	GetCall(ctx context.Context, viewer processor.Viewer, callID uuid.UUID) (store.Call, error)
	ReprocessCall(ctx context.Context, viewer processor.Viewer, callID uuid.UUID) (store.Call, error)
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".flac": true,
}

type Handler struct {
	processor      CallService
	maxUploadBytes int64
	logger         *observability.Logger
}

func New(processor CallService, maxUploadMB int64, logger *observability.Logger) Handler {
	return Handler{
		processor:      processor,
		maxUploadBytes: maxUploadMB << 20,
		logger:         logger,
	}
}

// CallAcceptedResponse is returned once a recording is stored and scheduled
type CallAcceptedResponse struct {
	ID     uuid.UUID        `json:"id"`
	Status store.CallStatus `json:"status"`
}

// ListCallsQuery represents the query string of GET /api/calls
type ListCallsQuery struct {
	Status *string    `form:"status" binding:"omitempty,oneof=uploaded transcribing transcribed completed failed_transcription failed_summary"`
	From   *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To     *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Page   int        `form:"page" binding:"omitempty,min=1"`
	Limit  int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ListCallsResponse wraps a page of calls
type ListCallsResponse struct {
	Calls []store.Call `json:"calls"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// HandleUploadCall accepts a multipart recording in the "audio" field
func (h *Handler) HandleUploadCall(c *gin.Context) {
	ctx := c.Request.Context()

	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apierrors.RespondWithError(c, h.tooLarge())
			return
		}
		apierrors.RespondWithError(c, processor.ErrMissingAudio)
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		apierrors.RespondWithError(c, h.tooLarge())
		return
	}
	if !audioExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidAudioFormat,
			"Unsupported audio format. Use mp3, wav, m4a, mp4, webm, ogg or flac."))
		return
	}

	req := processor.UploadCallRequest{Filename: fileHeader.Filename}
	if raw := strings.TrimSpace(c.PostForm("client_id")); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid client ID format"))
			return
		}
		req.ClientID = &clientID
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error(ctx, "failed to open uploaded file", err)
		apierrors.RespondWithError(c, apierrors.InternalError(err))
		return
	}
	defer file.Close()
	req.Audio = file

	call, err := h.processor.UploadCall(ctx, viewer, req)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, CallAcceptedResponse{ID: call.ID, Status: call.Status})
}

// HandleListCalls lists the caller's calls, newest first
func (h *Handler) HandleListCalls(c *gin.Context) {
	ctx := c.Request.Context()

	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var query ListCallsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	req := processor.ListCallsRequest{
		Status: query.Status,
		From:   query.From,
		To:     endOfDay(query.To),
		Page:   query.Page,
		Limit:  query.Limit,
	}
	calls, err := h.processor.ListCalls(ctx, viewer, req)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 50
	}
	c.JSON(http.StatusOK, ListCallsResponse{Calls: calls, Page: req.Page, Limit: req.Limit})
}

// HandleGetCall returns one call with its transcript and analysis
func (h *Handler) HandleGetCall(c *gin.Context) {
	ctx := c.Request.Context()

	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	callID, ok := parseCallID(c)
	if !ok {
		return
	}

	call, err := h.processor.GetCall(ctx, viewer, callID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, call)
}

// HandleReprocessCall schedules a failed call for another pipeline run
func (h *Handler) HandleReprocessCall(c *gin.Context) {
	ctx := c.Request.Context()

	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	callID, ok := parseCallID(c)
	if !ok {
		return
	}

	call, err := h.processor.ReprocessCall(ctx, viewer, callID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, CallAcceptedResponse{ID: call.ID, Status: call.Status})
}

func (h *Handler) viewer(c *gin.Context) (processor.Viewer, bool) {
	userID, role, ok := authHandler.UserFromContext(c)
	if !ok {
		h.logger.Error(c.Request.Context(), "failed to get user from context", nil)
		apierrors.RespondWithError(c, apierrors.Unauthorized("Not authenticated"))
		return processor.Viewer{}, false
	}
	return processor.Viewer{UserID: userID, IsAdmin: role == store.ProfileRoleAdmin}, true
}

func (h *Handler) tooLarge() *apierrors.APIError {
	return apierrors.RequestTooLarge(apierrors.CodeFileTooLarge,
		fmt.Sprintf("Audio file exceeds the %d MB limit", h.maxUploadBytes>>20))
}

func parseCallID(c *gin.Context) (uuid.UUID, bool) {
	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid call ID format"))
		return uuid.Nil, false
	}
	return callID, true
}

// endOfDay moves a date-only upper bound to the last millisecond of that day
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Millisecond)
	return &end
}
