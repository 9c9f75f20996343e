package api

import (
	"net/http"
	"strconv"

	resdto "farewatch/internal/handler/dto/response"
	"farewatch/internal/handler/httperr"
	"farewatch/internal/usecase/commands"
	"farewatch/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	batchCommands commands.BatchCommands
	runQueries    queries.RunQueries
}

func NewBatchHandler(batchCommands commands.BatchCommands, runQueries queries.RunQueries) *BatchHandler {
	return &BatchHandler{
		batchCommands: batchCommands,
		runQueries:    runQueries,
	}
}

// @Summary Run the price-check batch
// @Description Evaluate all active price alerts against current prices
// @Tags batch
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RunResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /batch/price-check [post]
func (h *BatchHandler) PriceCheck(c *gin.Context) {
	summary, err := h.batchCommands.RunPriceCheck(c.Request.Context())
	if err != nil {
		// The summary is nil only when the run could not start at all.
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	// Partial failure is still a 200: the errors count and details are the
	// caller's introspection mechanism.
	c.JSON(http.StatusOK, resdto.FromRunSummary(summary))
}

// @Summary Run the deal-ingestion batch
// @Description Fetch offers for the route catalog and ingest scored deals
// @Tags batch
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RunResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /batch/ingest-deals [post]
func (h *BatchHandler) IngestDeals(c *gin.Context) {
	summary, err := h.batchCommands.RunDealIngestion(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRunSummary(summary))
}

// @Summary List recent batch runs
// @Description Read the persisted audit trail of batch run results
// @Tags batch
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum runs to return"
// @Success 200 {object} resdto.RunHistoryResponse
// @Failure 401 {object} map[string]string
// @Router /batch/runs [get]
func (h *BatchHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	views, err := h.runQueries.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRunViews(views))
}
