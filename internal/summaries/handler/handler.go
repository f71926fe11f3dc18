package handler

import (
	"context"
	"net/http"
	"time"

	"finecho-server/internal/apierrors"
	authHandler "finecho-server/internal/auth/handler"
	"finecho-server/internal/observability"
	"finecho-server/internal/store"
	"finecho-server/internal/summaries/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SummaryService is the part of the summaries processor the HTTP layer uses
type SummaryService interface {
	SaveSummary(ctx context.Context, advisorID uuid.UUID, req processor.SaveSummaryRequest) (store.Summary, error)
	ListSummaries(ctx context.Context, advisorID uuid.UUID, from, to *time.Time) ([]store.Summary, error)
	GetCallSummary(ctx context.Context, advisorID, callID uuid.UUID) (store.Summary, error)
}

type Handler struct {
	processor SummaryService
	logger    *observability.Logger
}

func New(processor SummaryService, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type SIPRequest struct {
	Type          *string  `json:"type"`
	Amount        *float64 `json:"amount" binding:"omitempty,gte=0"`
	Category      *string  `json:"category"`
	RiskExplained *bool    `json:"riskExplained"`
}

// SaveSummaryRequest represents the body of POST /api/summary
type SaveSummaryRequest struct {
	CallID         string      `json:"callId" binding:"required,uuid"`
	Summary        string      `json:"summary" binding:"required"`
	Goals          []string    `json:"goals"`
	RiskLevel      *string     `json:"riskLevel"`
	SIP            *SIPRequest `json:"sip"`
	ClientResponse *string     `json:"clientResponse" binding:"omitempty,oneof=proceeded deferred declined"`
	Compliance     *string     `json:"compliance" binding:"omitempty,oneof=clear needs_review"`
}

type ListSummariesQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// HandleSaveSummary stores the advisor's summary of a call
func (h *Handler) HandleSaveSummary(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	var req SaveSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	saveReq := processor.SaveSummaryRequest{
		CallID:         uuid.MustParse(req.CallID),
		Summary:        req.Summary,
		Goals:          req.Goals,
		RiskLevel:      req.RiskLevel,
		ClientResponse: req.ClientResponse,
		Compliance:     req.Compliance,
	}
	if req.SIP != nil {
		saveReq.SIP = &processor.SIPDetails{
			Type:          req.SIP.Type,
			Amount:        req.SIP.Amount,
			Category:      req.SIP.Category,
			RiskExplained: req.SIP.RiskExplained,
		}
	}

	summary, err := h.processor.SaveSummary(ctx, advisorID, saveReq)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// HandleListSummaries returns the advisor's summaries, newest first
func (h *Handler) HandleListSummaries(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	var query ListSummariesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	to := query.To
	if to != nil {
		end := to.Add(24*time.Hour - time.Millisecond)
		to = &end
	}

	summaries, err := h.processor.ListSummaries(ctx, advisorID, query.From, to)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// HandleGetCallSummary returns the summary saved for one call
func (h *Handler) HandleGetCallSummary(c *gin.Context) {
	ctx := c.Request.Context()

	advisorID, ok := h.advisorID(c)
	if !ok {
		return
	}

	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid call ID format"))
		return
	}

	summary, err := h.processor.GetCallSummary(ctx, advisorID, callID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
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
