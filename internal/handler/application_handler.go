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

type ApplicationHandler struct {
	service service.ApplicationService
}

func NewApplicationHandler(service service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	application, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	applications, err := h.service.GetByStudent(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applications})
}

func (h *ApplicationHandler) GetApplications(c *gin.Context) {
	// Optional job_id narrows the listing to one posting (ownership-checked).
	if jobIDStr := c.Query("job_id"); jobIDStr != "" {
		jobID, err := uuid.Parse(jobIDStr)
		if err != nil {
			response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "invalid job id"))
			return
		}

		userID, err := response.GetUserID(c)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		applications, err := h.service.GetByJob(c.Request.Context(), userID, jobID)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": applications})
		return
	}

	applications, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applications})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "invalid application id"))
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), userID, applicationID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
