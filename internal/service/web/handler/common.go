package handler

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// validator 表单的统一校验接口。
type validator interface {
	Validate() error
}

func logger(c *gin.Context) *xlog.Logger {
	return c.MustGet(model.XLogKey).(*xlog.Logger)
}

// principal Authenticate 之后才能调用。
func principal(c *gin.Context) *model.AccountDo {
	return c.MustGet(model.PrincipalContextKey).(*model.AccountDo)
}

// bind 绑定 query/form/json 参数，失败时直接写出 400。
func bind(c *gin.Context, xl *xlog.Logger, f interface{}) bool {
	if err := c.ShouldBind(f); err != nil {
		xl.Infof("form binding error: %v", err)
		respErr := model.NewResponseErrorBadRequest("Invalid request body")
		model.NewFailResponse(*respErr).WithRequestID(xl.ReqId).Send(c)
		return false
	}
	return true
}

// bindValid 绑定后调用 Validate，校验失败时写出 400。
func bindValid(c *gin.Context, xl *xlog.Logger, f validator) bool {
	if !bind(c, xl, f) {
		return false
	}
	if err := f.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		respErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*respErr).WithRequestID(xl.ReqId).Send(c)
		return false
	}
	return true
}

// responseError 将服务返回的错误转换为返回体。
func responseError(err error) *model.ResponseError {
	var quota *errors.QuotaExceededError
	if stderrors.As(err, &quota) {
		return model.NewResponseErrorQuotaExceeded(quota.Summary, quota.ResetDate)
	}
	status := errors.HTTPStatus(err)
	summary, ok := errors.Summary(err)
	if status >= 500 {
		if !ok {
			summary = "Server error"
		}
		detail := errors.Detail(err)
		if !ok {
			detail = err.Error()
		}
		r := model.NewResponseError(status, summary)
		r.Detail = detail
		return r
	}
	return model.NewResponseError(status, summary)
}

func fail(c *gin.Context, xl *xlog.Logger, err error) {
	respErr := responseError(err)
	if respErr.Status >= 500 {
		xl.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		xl.Infof("%s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	model.NewFailResponse(*respErr).WithRequestID(xl.ReqId).Send(c)
}

func ok(c *gin.Context, xl *xlog.Logger, data interface{}) {
	model.NewSuccessResponse(data).WithRequestID(xl.ReqId).Send(c)
}

func created(c *gin.Context, xl *xlog.Logger, data interface{}) {
	model.NewCreatedResponse(data).WithRequestID(xl.ReqId).Send(c)
}

func list(c *gin.Context, xl *xlog.Logger, data interface{}, count int) {
	model.NewListResponse(data, count).WithRequestID(xl.ReqId).Send(c)
}

func deleted(c *gin.Context, xl *xlog.Logger, message string) {
	model.NewSuccessResponse(nil).WithMessage(message).WithRequestID(xl.ReqId).Send(c)
}
