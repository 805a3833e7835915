package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests for the read-side reports.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerLedgerRoutes registers the report routes.
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
	}
	group.GET("/accounts/:accountID/ledger", h.accountLedger)
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Aggregates POSTED lines per account over a date range
// @Tags reports
// @Produce json
// @Param fromDate query string true "Range start (YYYY-MM-DD)"
// @Param toDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /reports/trial-balance [get]
func (h *ledgerHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.ledgerService.TrialBalance(c.Request.Context(), authCtx, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// accountLedger godoc
// @Summary Account ledger report
// @Description Returns the opening balance and paginated running-balance rows for one account
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param accountingPeriodID query string false "Accounting period (mutually exclusive with dates)"
// @Param fromDate query string false "Range start (YYYY-MM-DD)"
// @Param toDate query string false "Range end (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /accounts/{accountID}/ledger [get]
func (h *ledgerHandler) accountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	ledger, err := h.ledgerService.AccountLedger(c.Request.Context(), authCtx, c.Param("accountID"), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(ledger))
}
