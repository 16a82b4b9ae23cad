package handler

import (
	"net/http"

	"anoa.com/campusplacement/internal/dto"
	"anoa.com/campusplacement/internal/service"
	"anoa.com/campusplacement/pkg/apperror"
	"anoa.com/campusplacement/pkg/response"
	"anoa.com/campusplacement/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SavedJobHandler struct {
	service service.SavedJobService
}

func NewSavedJobHandler(service service.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{service: service}
}

func (h *SavedJobHandler) SaveJob(c *gin.Context) {
	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Save(c.Request.Context(), userID, req.JobID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "job saved"})
}

func (h *SavedJobHandler) UnsaveJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "invalid job id"))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	removed, err := h.service.Unsave(c.Request.Context(), userID, jobID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *SavedJobHandler) GetSavedJobs(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	savedJobs, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": savedJobs})
}
