package handler

import (
	"Keystone/internal/pkg/response"
	"Keystone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 单文件上限 20MB
const maxMediaSize = 20 << 20

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

func (s *MediaHandler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, service.CodeInvalidInput, "Missing file field", nil)
		return
	}
	if fileHeader.Size > maxMediaSize {
		response.Fail(c, http.StatusBadRequest, service.CodeInvalidInput, "File too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, err := s.mediaSvc.Upload(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result, "Media uploaded", nil, nil)
}
