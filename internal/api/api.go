package api

import (
	"net/http"

	advisorHandler "finecho-server/internal/advisor/handler"
	authHandler "finecho-server/internal/auth/handler"
	callsHandler "finecho-server/internal/calls/handler"
	"finecho-server/internal/ratelimit"
	summariesHandler "finecho-server/internal/summaries/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type API struct {
	router           *gin.RouterGroup
	authHandler      authHandler.Handler
	callsHandler     callsHandler.Handler
	advisorHandler   advisorHandler.Handler
	summariesHandler summariesHandler.Handler
	uploadLimiter    *ratelimit.Service
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	callsHandler callsHandler.Handler,
	advisorHandler advisorHandler.Handler,
	summariesHandler summariesHandler.Handler,
	uploadLimiter *ratelimit.Service,
) API {
	return API{
		router:           router,
		authHandler:      authHandler,
		callsHandler:     callsHandler,
		advisorHandler:   advisorHandler,
		summariesHandler: summariesHandler,
		uploadLimiter:    uploadLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := a.router.Group("/api", a.authHandler.HandleJWTMiddleware)
	{
		apiGroup.GET("/me", a.authHandler.GetUserInfo)
	}

	advisorGroup := apiGroup.Group("", a.authHandler.RequireAdvisor())
	{
		callsGroup := advisorGroup.Group("/calls")
		callsGroup.POST("/upload", a.uploadLimiter.Middleware(), a.callsHandler.HandleUploadCall)
		callsGroup.GET("", a.callsHandler.HandleListCalls)
		callsGroup.GET("/:id", a.callsHandler.HandleGetCall)
		callsGroup.POST("/:id/reprocess", a.callsHandler.HandleReprocessCall)

		advisorGroup.GET("/clients", a.advisorHandler.HandleListClients)
		advisorGroup.GET("/advisor/dashboard", a.advisorHandler.HandleDashboard)
		advisorGroup.GET("/advisor/calls/export", a.advisorHandler.HandleExportCalls)

		advisorGroup.POST("/summary", a.summariesHandler.HandleSaveSummary)
		advisorGroup.GET("/summaries", a.summariesHandler.HandleListSummaries)
		advisorGroup.GET("/advisor/calls/:id/summary", a.summariesHandler.HandleGetCallSummary)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
