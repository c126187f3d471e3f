package handler

import (
	"net/http"

	adminService "anoa.com/bloodconnect/internal/modules/admin/service"
	"anoa.com/bloodconnect/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service adminService.AdminService
}

func NewAdminHandler(service adminService.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListHospitals(c *gin.Context) {
	hospitals, err := h.service.ListHospitals(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hospitals})
}

func (h *AdminHandler) ListDonors(c *gin.Context) {
	donors, err := h.service.ListDonors(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": donors})
}

func (h *AdminHandler) ListRequests(c *gin.Context) {
	reqs, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) DeleteHospital(c *gin.Context) {
	id, err := response.ParseUUIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteHospital(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hospital deleted"})
}

func (h *AdminHandler) DeleteDonor(c *gin.Context) {
	id, err := response.ParseUUIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteDonor(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "donor deleted"})
}
