package model

import (
	"net/http"
	"time"
)

type ResponseError struct {
	// HTTP 状态码。
	Status    int        `json:"-"`
	// Message 给调用方看的提示。
	Message   string     `json:"message"`
	// Detail 内部错误原文，只在 5xx 时填写。
	Detail    string     `json:"error,omitempty"`
	// ResetDate 上传配额下一次重置时间。
	ResetDate *time.Time `json:"resetDate,omitempty"`
}

// NewResponseErrorBadRequest 参数错误。
func NewResponseErrorBadRequest(message string) *ResponseError {
	return &ResponseError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewResponseErrorValidation 表单校验失败。
func NewResponseErrorValidation(err error) *ResponseError {
	return &ResponseError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

// NewResponseErrorNotLoggedIn 用户未登录。
func NewResponseErrorNotLoggedIn() *ResponseError {
	return &ResponseError{
		Status:  http.StatusUnauthorized,
		Message: "Not authorized to access this route",
	}
}

// NewResponseErrorBadToken 登录token错误或账号不存在。
func NewResponseErrorBadToken(message string) *ResponseError {
	return &ResponseError{
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// NewResponseErrorForbidden 角色无权访问。
func NewResponseErrorForbidden(message string) *ResponseError {
	return &ResponseError{
		Status:  http.StatusForbidden,
		Message: message,
	}
}

func NewResponseErrorNotFound(message string) *ResponseError {
	if message == "" {
		message = "not found"
	}
	return &ResponseError{
		Status:  http.StatusNotFound,
		Message: message,
	}
}

func NewResponseErrorConflict(message string) *ResponseError {
	return &ResponseError{
		Status:  http.StatusConflict,
		Message: message,
	}
}

// NewResponseErrorQuotaExceeded 本周上传次数已用完。
func NewResponseErrorQuotaExceeded(message string, resetDate time.Time) *ResponseError {
	return &ResponseError{
		Status:    http.StatusTooManyRequests,
		Message:   message,
		ResetDate: &resetDate,
	}
}

// NewResponseErrorInternal 其他内部服务错误，原始错误信息放在 error 字段。
func NewResponseErrorInternal(message string, err error) *ResponseError {
	r := &ResponseError{
		Status:  http.StatusInternalServerError,
		Message: message,
	}
	if err != nil {
		r.Detail = err.Error()
	}
	return r
}

func NewResponseError(status int, message string) *ResponseError {
	return &ResponseError{
		Status:  status,
		Message: message,
	}
}
