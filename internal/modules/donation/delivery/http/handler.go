package handler

import (
	"net/http"

	"anoa.com/bloodconnect/internal/middleware"
	donationService "anoa.com/bloodconnect/internal/modules/donation/service"
	"anoa.com/bloodconnect/pkg/response"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	service donationService.DonationService
}

func NewDonationHandler(service donationService.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

func (h *DonationHandler) History(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.History(c.Request.Context(), donorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *DonationHandler) Certificate(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	recordID, err := response.ParseUUIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Certificate(c.Request.Context(), donorID, recordID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
