package handler

import (
	"net/http"

	"anoa.com/bloodconnect/internal/middleware"
	hospitalService "anoa.com/bloodconnect/internal/modules/hospital/service"
	"anoa.com/bloodconnect/pkg/response"
	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	service hospitalService.HospitalService
}

func NewHospitalHandler(service hospitalService.HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

// Me returns the calling hospital with its stock.
func (h *HospitalHandler) Me(c *gin.Context) {
	hospitalID, err := middleware.HospitalID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	hospital, err := h.service.GetHospital(c.Request.Context(), hospitalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, hospital)
}

func (h *HospitalHandler) Directory(c *gin.Context) {
	hospitals, err := h.service.Directory(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hospitals})
}
