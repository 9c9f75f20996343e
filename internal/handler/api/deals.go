package api

import (
	"net/http"
	"strconv"

	resdto "farewatch/internal/handler/dto/response"
	"farewatch/internal/handler/httperr"
	"farewatch/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DealHandler struct {
	dealQueries queries.DealQueries
}

func NewDealHandler(dealQueries queries.DealQueries) *DealHandler {
	return &DealHandler{
		dealQueries: dealQueries,
	}
}

// @Summary List active deals
// @Description Non-expired deals ranked by score
// @Tags deals
// @Produce json
// @Param min_score query int false "Minimum deal score"
// @Param limit query int false "Maximum deals to return"
// @Success 200 {object} resdto.DealsResponse
// @Router /deals [get]
func (h *DealHandler) ListDeals(c *gin.Context) {
	minScore, err := strconv.Atoi(c.DefaultQuery("min_score", "0"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid min_score parameter", nil)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit parameter", nil)
		return
	}

	views, err := h.dealQueries.ActiveDeals(c.Request.Context(), minScore, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDealViews(views))
}
