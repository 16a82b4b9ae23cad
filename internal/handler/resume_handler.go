package handler

import (
	"net/http"

	"anoa.com/campusplacement/internal/service"
	"anoa.com/campusplacement/pkg/apperror"
	"anoa.com/campusplacement/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResumeHandler struct {
	service service.ResumeService
}

func NewResumeHandler(service service.ResumeService) *ResumeHandler {
	return &ResumeHandler{service: service}
}

func (h *ResumeHandler) UploadResume(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "resume file is required"))
		return
	}

	if fileHeader.Size > service.MaxResumeSize {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "resume must be 5MB or smaller"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	resume, err := h.service.Upload(c.Request.Context(), userID, service.ResumeFile{
		Reader:   file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) GetMyResumes(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resumes, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resumes})
}

func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "invalid resume id"))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, resumeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "resume deleted successfully"})
}

func (h *ResumeHandler) SetDefaultResume(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.New(apperror.ErrInvalidInput, "invalid resume id"))
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.SetDefault(c.Request.Context(), userID, resumeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "default resume updated"})
}
