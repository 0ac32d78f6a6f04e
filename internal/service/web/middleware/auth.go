package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// Authenticator 根据 token 找到已登录的账号。
type Authenticator interface {
	Authenticate(xl *xlog.Logger, token string) (*model.AccountDo, error)
}

var (
	accountService Authenticator
	cookieName     = "token"
)

// InitMiddleware 设置登录校验使用的账号服务与 cookie 名称。
func InitMiddleware(accounts Authenticator, conf utils.JwtConfig) {
	accountService = accounts
	if conf.CookieName != "" {
		cookieName = conf.CookieName
	}
}

// FetchToken 优先取 cookie，其次 Authorization: Bearer <token>。
func FetchToken(c *gin.Context) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// Authenticate 校验请求者的身份。
func Authenticate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	token := FetchToken(c)
	if token == "" {
		xl.Debugf("%s %s: request unauthorized, no token", c.Request.Method, c.Request.URL.Path)
		responseErr := model.NewResponseErrorNotLoggedIn()
		model.NewFailResponse(*responseErr).WithRequestID(xl.ReqId).Send(c)
		c.Abort()
		return
	}
	account, err := accountService.Authenticate(xl, token)
	if err != nil {
		xl.Debugf("%s %s: request unauthorized, error %v", c.Request.Method, c.Request.URL.Path, err)
		var responseErr *model.ResponseError
		if errors.HTTPStatus(err) == http.StatusUnauthorized {
			responseErr = model.NewResponseErrorNotLoggedIn()
		} else {
			responseErr = model.NewResponseErrorInternal("Server error", err)
		}
		model.NewFailResponse(*responseErr).WithRequestID(xl.ReqId).Send(c)
		c.Abort()
		return
	}
	c.Set(model.PrincipalContextKey, account)
}

// Authorize 只允许 roles 中的角色访问，需要放在 Authenticate 之后。
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := c.MustGet(model.XLogKey).(*xlog.Logger)
		account := c.MustGet(model.PrincipalContextKey).(*model.AccountDo)
		if !account.HasRole(roles...) {
			responseErr := model.NewResponseErrorForbidden(fmt.Sprintf("Role %s is not authorized to access this route", account.Role))
			model.NewFailResponse(*responseErr).WithRequestID(xl.ReqId).Send(c)
			c.Abort()
			return
		}
	}
}
