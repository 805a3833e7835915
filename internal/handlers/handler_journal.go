package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes registers the journal entry lifecycle routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createEntry)
		journals.GET("", h.listEntries)
		journals.GET("/:entryID", h.getEntry)
		journals.PUT("/:entryID", h.updateEntry)
		journals.POST("/:entryID/park", h.parkEntry)
		journals.POST("/:entryID/submit", h.submitEntry)
		journals.POST("/:entryID/review", h.reviewEntry)
		journals.POST("/:entryID/reject", h.rejectEntry)
		journals.POST("/:entryID/return", h.returnEntry)
		journals.POST("/:entryID/post", h.postEntry)
		journals.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a new DRAFT journal entry with its lines
// @Tags journals
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Journal entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 422 {object} map[string]string "Period or cutover violation"
// @Router /journals [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), authCtx, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a paginated worklist of journal entries, optionally filtered by status
// @Tags journals
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), authCtx, params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journals/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), authCtx, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Edit a journal entry
// @Description Replaces an editable entry's lines and header, clearing rejection metadata
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Updated entry"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry is not editable"
// @Router /journals/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// parkEntry godoc
// @Summary Park a draft journal entry
// @Description Moves a DRAFT entry aside as PARKED without submitting it
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry is not DRAFT"
// @Router /journals/{entryID}/park [post]
func (h *journalHandler) parkEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.ParkEntry(c.Request.Context(), authCtx, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// submitEntry godoc
// @Summary Submit a journal entry for review
// @Description Runs dimension, period and budget controls and moves the entry to SUBMITTED
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body dto.SubmitEntryRequest false "Budget override justification"
// @Success 200 {object} dto.EntryResponse
// @Failure 422 {object} map[string]string "Budget blocked or justification required"
// @Router /journals/{entryID}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.SubmitEntry(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reviewEntry godoc
// @Summary Approve a submitted journal entry
// @Description Moves a SUBMITTED entry to REVIEWED; the reviewer must differ from maker and submitter
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body dto.ReviewEntryRequest false "Budget override justification"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Segregation of duties violation"
// @Router /journals/{entryID}/review [post]
func (h *journalHandler) reviewEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReviewEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.ReviewEntry(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a submitted journal entry
// @Description Sends a SUBMITTED entry back to its maker as REJECTED with a reason
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body dto.RejectEntryRequest true "Rejection reason"
// @Success 200 {object} dto.EntryResponse
// @Router /journals/{entryID}/reject [post]
func (h *journalHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.RejectEntry(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// returnEntry godoc
// @Summary Return a reviewed entry for re-review
// @Description Sends a REVIEWED entry back to SUBMITTED with a reason
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body dto.ReturnEntryRequest true "Return reason"
// @Success 200 {object} dto.EntryResponse
// @Router /journals/{entryID}/return [post]
func (h *journalHandler) returnEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReturnEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.ReturnEntryToReview(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a reviewed journal entry
// @Description Posts a REVIEWED entry: assigns the journal number and stamps the period
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Segregation of duties violation"
// @Failure 409 {object} map[string]string "Entry is not REVIEWED"
// @Router /journals/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), authCtx, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates a DRAFT reversing entry with debit/credit swapped lines
// @Tags journals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param body body dto.ReverseEntryRequest true "Reversal date and description"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Router /journals/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.ReverseEntry(c.Request.Context(), authCtx, c.Param("entryID"), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
