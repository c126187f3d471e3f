package handler

import (
	"net/http"

	"anoa.com/bloodconnect/internal/middleware"
	"anoa.com/bloodconnect/internal/modules/stock/dto"
	stockService "anoa.com/bloodconnect/internal/modules/stock/service"
	"anoa.com/bloodconnect/pkg/response"
	"anoa.com/bloodconnect/pkg/validator"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService stockService.StockService
}

func NewStockHandler(stockService stockService.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) ListStock(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entries, err := h.stockService.ListStock(c.Request.Context(), hospitalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *StockHandler) SetStock(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SetStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	entry, err := h.stockService.SetStock(c.Request.Context(), hospitalID, input.BloodGroup, *input.UnitsAvailable)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
