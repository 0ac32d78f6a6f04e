// Copyright 2020 Qiniu Cloud (qiniu.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"
)

// ServerError 服务端内部错误与非正常返回结果定义
type ServerError struct {
	Code    int    `json:"code"`
	Summary string `json:"summary"`
	// cause 外部服务返回的原始错误。
	cause error
}

func (e *ServerError) Unwrap() error {
	return e.cause
}

func (e *ServerError) Error() string {
	buf, _ := json.Marshal(e)
	return string(buf)
}

// 各种服务端内部错误的错误码定义。错误码为5位数字。
const (
	// 1开头表示请求或业务状态相关的错误，第二、三位区分HTTP状态。
	ServerErrorInvalidArgument  = 10001
	ServerErrorChannelNotFound  = 10002
	ServerErrorAlreadyApproved  = 10003
	ServerErrorEmailOrPhoneUsed = 10004
	ServerErrorSamePassword     = 10005
	ServerErrorWrongPassword    = 10006
	ServerErrorOTPInvalid       = 10101
	ServerErrorOTPNotVerified   = 10102
	ServerErrorBadCredentials   = 10103
	ServerErrorNoPermission     = 10301
	ServerErrorAccountDisabled  = 10302
	ServerErrorNotFound         = 10401
	ServerErrorConflict         = 10901
	ServerErrorQuotaExceeded    = 12901
	ServerErrorMongoOpFail      = 11000
	// 2开头表示外部服务错误。
	ServerErrorMediaUploadFail = 20001
	ServerErrorMailSendFail    = 20002
)

func New(code int, summary string) *ServerError {
	return &ServerError{Code: code, Summary: summary}
}

// Wrap 带上原始错误，原始错误的内容会放在返回结果的 error 字段。
func Wrap(code int, summary string, cause error) *ServerError {
	return &ServerError{Code: code, Summary: summary, cause: cause}
}

func NotFound(summary string) *ServerError {
	return New(ServerErrorNotFound, summary)
}

func InvalidArgument(summary string) *ServerError {
	return New(ServerErrorInvalidArgument, summary)
}

func Forbidden(summary string) *ServerError {
	return New(ServerErrorNoPermission, summary)
}

func Conflict(summary string) *ServerError {
	return New(ServerErrorConflict, summary)
}

// QuotaExceededError 本周投稿次数已用完，ResetDate 为下个配额周的开始。
type QuotaExceededError struct {
	ServerError
	ResetDate time.Time `json:"resetDate"`
}

func NewQuotaExceeded(resetDate time.Time) *QuotaExceededError {
	return &QuotaExceededError{
		ServerError: ServerError{
			Code:    ServerErrorQuotaExceeded,
			Summary: "You have reached your weekly upload limit. You can upload 1 track per week. Limit resets on Friday.",
		},
		ResetDate: resetDate,
	}
}

func (e *QuotaExceededError) Error() string {
	buf, _ := json.Marshal(e)
	return string(buf)
}

// HTTPStatus 将错误映射为 HTTP 状态码，未知错误视为 500。
func HTTPStatus(err error) int {
	var quota *QuotaExceededError
	if stderrors.As(err, &quota) {
		return http.StatusTooManyRequests
	}
	var se *ServerError
	if !stderrors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case ServerErrorInvalidArgument, ServerErrorChannelNotFound, ServerErrorAlreadyApproved,
		ServerErrorEmailOrPhoneUsed, ServerErrorSamePassword, ServerErrorWrongPassword:
		return http.StatusBadRequest
	case ServerErrorOTPInvalid, ServerErrorOTPNotVerified, ServerErrorBadCredentials:
		return http.StatusUnauthorized
	case ServerErrorNoPermission, ServerErrorAccountDisabled:
		return http.StatusForbidden
	case ServerErrorNotFound:
		return http.StatusNotFound
	case ServerErrorConflict:
		return http.StatusConflict
	case ServerErrorQuotaExceeded:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Summary 返回可以直接展示给调用方的错误描述。
func Summary(err error) (string, bool) {
	var quota *QuotaExceededError
	if stderrors.As(err, &quota) {
		return quota.Summary, true
	}
	var se *ServerError
	if stderrors.As(err, &se) {
		return se.Summary, true
	}
	return "", false
}

// Detail 返回原始错误的描述，没有时为空。
func Detail(err error) string {
	var se *ServerError
	if stderrors.As(err, &se) && se.cause != nil {
		return se.cause.Error()
	}
	return ""
}
