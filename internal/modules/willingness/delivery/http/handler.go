package handler

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/bloodconnect/internal/middleware"
	"anoa.com/bloodconnect/internal/modules/willingness/dto"
	willingnessService "anoa.com/bloodconnect/internal/modules/willingness/service"
	"anoa.com/bloodconnect/pkg/ratelimit"
	"anoa.com/bloodconnect/pkg/response"
	"anoa.com/bloodconnect/pkg/validator"
	"github.com/gin-gonic/gin"
)

type WillingnessHandler struct {
	service willingnessService.WillingnessService
}

func NewWillingnessHandler(service willingnessService.WillingnessService) *WillingnessHandler {
	return &WillingnessHandler{service: service}
}

// Create broadcasts the calling donor's willingness to donate.
func (h *WillingnessHandler) Create(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	req, err := h.service.Create(c.Request.Context(), donorID)
	if err != nil {
		var rateLimitErr *ratelimit.Error
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (h *WillingnessHandler) ListMine(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reqs, err := h.service.ListByDonor(c.Request.Context(), donorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

func (h *WillingnessHandler) ListForHospital(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reqs, err := h.service.ListForHospital(c.Request.Context(), hospitalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

func (h *WillingnessHandler) Respond(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	requestID, err := response.ParseUUIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	req, err := h.service.Respond(c.Request.Context(), requestID, hospitalID, input.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *WillingnessHandler) ClearHistory(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	n, err := h.service.ClearHistory(c.Request.Context(), hospitalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClearHistoryResponse{Cleared: n})
}
