package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/stock/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

type StockHandler struct {
	summaryUC usecases.StockSummaryExecutor
}

func NewStockHandler(summaryUC usecases.StockSummaryExecutor) *StockHandler {
	return &StockHandler{summaryUC: summaryUC}
}

// Summary godoc
// @Summary Stock summary
// @Description Count of equipment per status
// @Security ActorHeader
// @Tags stock
// @Produce json
// @Success 200 {object} utils.APIResponse{data=usecases.StockSummaryResult} "Counts per status"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /stock/summary [get]
func (h *StockHandler) Summary(c *gin.Context) {
	result, err := h.summaryUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
