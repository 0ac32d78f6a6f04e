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

package model

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// RequestIDHeader 请求 ID 头部。
	RequestIDHeader = "X-Reqid"
	// XLogKey gin context中，用于获取记录请求相关日志的 xlog logger的key。
	XLogKey = "xlog-logger"

	// PrincipalContextKey 存放在请求context 中的已登录账号。
	PrincipalContextKey = "principal"

	// RequestStartKey 存放在gin context中的请求开始的时间戳。
	RequestStartKey = "request-start-timestamp-nano"
)

// Response 统一的返回体 { success, message?, data?, error? }。
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Token     string      `json:"token,omitempty"`
	Count     *int        `json:"count,omitempty"`
	ResetDate *time.Time  `json:"resetDate,omitempty"`
	RequestID string      `json:"requestId,omitempty"`

	status int
}

// NewSuccessResponse 200 成功返回。
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
		status:  http.StatusOK,
	}
}

// NewCreatedResponse 201 创建成功。
func NewCreatedResponse(data interface{}) *Response {
	r := NewSuccessResponse(data)
	r.status = http.StatusCreated
	return r
}

// NewListResponse 列表返回，附带 count。
func NewListResponse(data interface{}, count int) *Response {
	r := NewSuccessResponse(data)
	r.Count = &count
	return r
}

// NewFailResponse 根据 ResponseError 生成失败返回。
func NewFailResponse(err ResponseError) *Response {
	return &Response{
		Success:   false,
		Message:   err.Message,
		Error:     err.Detail,
		ResetDate: err.ResetDate,
		status:    err.Status,
	}
}

func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

func (r *Response) WithMessage(message string) *Response {
	r.Message = message
	return r
}

func (r *Response) WithToken(token string) *Response {
	r.Token = token
	return r
}

// Status 返回将要写出的 HTTP 状态码。
func (r *Response) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *Response) Send(c *gin.Context) {
	c.JSON(r.Status(), r)
}
