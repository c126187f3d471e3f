package handler

import (
	"net/http"

	"anoa.com/bloodconnect/internal/middleware"
	"anoa.com/bloodconnect/internal/modules/donor/dto"
	donorService "anoa.com/bloodconnect/internal/modules/donor/service"
	commonDto "anoa.com/bloodconnect/pkg/dto"
	"anoa.com/bloodconnect/pkg/response"
	"anoa.com/bloodconnect/pkg/validator"
	"github.com/gin-gonic/gin"
)

type DonorHandler struct {
	service donorService.DonorService
}

func NewDonorHandler(service donorService.DonorService) *DonorHandler {
	return &DonorHandler{service: service}
}

func (h *DonorHandler) GetProfile(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), donorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *DonorHandler) UpdateProfile(c *gin.Context) {
	donorID, err := middleware.DonorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	var avatar *commonDto.AvatarFile
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, closer, err := commonDto.OpenAvatar(fileHeader)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		defer closer.Close()
		avatar = file
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), donorID, input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
