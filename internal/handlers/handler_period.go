package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// periodHandler handles HTTP requests for accounting period management.
type periodHandler struct {
	periodService portssvc.PeriodGuardSvc
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(periodService portssvc.PeriodGuardSvc) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// registerPeriodRoutes registers the period close/reopen routes.
func registerPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodGuardSvc) {
	h := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Marks an OPEN period CLOSED once its close checklist is done
// @Tags periods
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 204 "Period closed"
// @Failure 403 {object} map[string]string "Missing period management permission"
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.periodService.ClosePeriod(c.Request.Context(), authCtx, c.Param("periodID")); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// reopenPeriod godoc
// @Summary Reopen a closed accounting period
// @Description Marks a CLOSED period OPEN again; the Opening Balances period never reopens
// @Tags periods
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 204 "Period reopened"
// @Failure 403 {object} map[string]string "Missing period management permission"
// @Router /periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.periodService.ReopenPeriod(c.Request.Context(), authCtx, c.Param("periodID")); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
