package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"finecho-server/internal/advisor/processor"
	"finecho-server/internal/apierrors"
	authHandler "finecho-server/internal/auth/handler"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdvisorService is the part of the advisor processor the HTTP layer uses
type AdvisorService interface {
	ListClients(ctx context.Context, advisorID uuid.UUID) ([]store.Client, error)
	Dashboard(ctx context.Context, advisorID uuid.UUID, dateRange processor.DateRange) (processor.DashboardStats, error)
	ExportCalls(ctx context.Context, advisorID uuid.UUID, dateRange processor.DateRange) ([]byte, error)
}

type Handler struct {
	processor AdvisorService
	logger    *observability.Logger
}

func New(processor AdvisorService, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// DateRangeQuery is the from/to query string shared by dashboard and export.
// Both are calendar dates; to covers the whole day.
type DateRangeQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

func (q DateRangeQuery) toDateRange() processor.DateRange {
	dateRange := processor.DateRange{From: q.From}
	if q.To != nil {
		end := q.To.Add(24*time.Hour - time.Millisecond)
		dateRange.To = &end
	}
	return dateRange
}

// HandleListClients returns the advisor's clients ordered by name
func (h *Handler) HandleListClients(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	clients, err := h.processor.ListClients(ctx, advisorID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// HandleDashboard returns the advisor's dashboard counters
func (h *Handler) HandleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	stats, err := h.processor.Dashboard(ctx, advisorID, query.toDateRange())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HandleExportCalls streams the advisor's calls as an xlsx attachment
func (h *Handler) HandleExportCalls(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	var query DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	data, err := h.processor.ExportCalls(ctx, advisorID, query.toDateRange())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("calls-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) advisorID(c *gin.Context) (uuid.UUID, bool) {
	userID, _, ok := authHandler.UserFromContext(c)
	if !ok {
		h.logger.Error(c.Request.Context(), "failed to get user from context", nil)
		apierrors.RespondWithError(c, apierrors.Unauthorized("Not authenticated"))
		return uuid.Nil, false
	}
	return userID, true
}
