package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// AddRequestID 为每个请求生成 xlog logger，请求 ID 取自 X-Reqid 头部或新生成。
func AddRequestID(c *gin.Context) {
	requestID := c.Request.Header.Get(model.RequestIDHeader)
	if requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	c.Header(model.RequestIDHeader, requestID)
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
	c.Set(model.RequestStartKey, time.Now())
}

// AccessLog 请求结束后记录状态码与耗时。
func AccessLog(c *gin.Context) {
	c.Next()
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	start := c.GetTime(model.RequestStartKey)
	xl.Infof("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}
