package response

import (
	"Keystone/internal/api/dto"
	"Keystone/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/mongo"
)

// Success 成功返回封装
func Success(c *gin.Context, status int, data interface{}, message string, links dto.Links, meta *dto.Metadata) {
	c.JSON(status, dto.SuccessResponse{
		Status:   "success",
		Message:  message,
		Data:     data,
		Links:    links,
		Metadata: meta,
	})
}

// NoContent 删除成功，无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, code, message string, details []dto.ErrorDetail) {
	c.JSON(status, dto.ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Details: details,
	})
}

// Error 错误统一出口：存储层与绑定层错误在这里翻译一次，不向外泄露内部形态
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]dto.ErrorDetail, 0, len(ve))
		for _, fe := range ve {
			details = append(details, dto.ErrorDetail{
				Field:   fe.Field(),
				Message: fe.Tag(),
			})
		}
		Fail(c, http.StatusBadRequest, service.CodeValidationError, "Validation failed", details)
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, service.CodeInvalidInput, "Malformed request body", nil)
		return
	}

	if mongo.IsDuplicateKeyError(err) {
		Fail(c, http.StatusConflict, service.CodeDuplicateEntry, service.ErrDuplicateEntry.Error(), nil)
		return
	}

	mapped, ok := service.ErrorMap[err]
	if !ok {
		log.ErrorContext(c.Request.Context(), "Unhandled error", "err", err)
		Fail(c, http.StatusInternalServerError, service.CodeInternalError, service.UnExpectedError.Error(), nil)
		return
	}
	Fail(c, mapped.Status, mapped.Code, err.Error(), nil)
}
