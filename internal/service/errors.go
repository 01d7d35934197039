package service

import (
	"errors"
	"net/http"
)

// 错误码闭集，对外契约的一部分
const (
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidID        = "INVALID_ID"
	CodeDuplicateEntry   = "DUPLICATE_ENTRY"
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternalError    = "INTERNAL_ERROR"
)

var (
	ErrPostNotFound     = errors.New("Post not found")
	ErrCommentNotFound  = errors.New("Comment not found")
	ErrReactionNotFound = errors.New("Reaction not found")
	// ErrAccessDenied 故意不区分"不存在"与"不属于你"，避免探测资源存在性
	ErrAccessDenied       = errors.New("Resource not found or access denied")
	ErrInvalidID          = errors.New("Invalid resource id")
	ErrDuplicateEntry     = errors.New("Duplicate entry")
	ErrUserExists         = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrRefreshInvalid     = errors.New("Invalid or expired refresh token")
	UnExpectedError       = errors.New("An unexpected error occurred")
)

// ErrorSpec 错误出口的 HTTP 状态与业务错误码
type ErrorSpec struct {
	Status int
	Code   string
}

var ErrorMap = map[error]ErrorSpec{
	ErrPostNotFound:       {http.StatusNotFound, CodeResourceNotFound},
	ErrCommentNotFound:    {http.StatusNotFound, CodeResourceNotFound},
	ErrReactionNotFound:   {http.StatusNotFound, CodeResourceNotFound},
	ErrAccessDenied:       {http.StatusForbidden, CodePermissionDenied},
	ErrInvalidID:          {http.StatusBadRequest, CodeInvalidID},
	ErrDuplicateEntry:     {http.StatusConflict, CodeDuplicateEntry},
	ErrUserExists:         {http.StatusConflict, CodeDuplicateEntry},
	ErrInvalidCredentials: {http.StatusUnauthorized, CodeAuthRequired},
	ErrRefreshInvalid:     {http.StatusUnauthorized, CodeInvalidToken},
	UnExpectedError:       {http.StatusInternalServerError, CodeInternalError},
}
