package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db"
)

// AccountApiHandler 普通用户、管理员与超级管理员的账号接口。
type AccountApiHandler struct {
	Accounts *db.AccountService
	Uploads  *Uploader
	Jwt      utils.JwtConfig
}

func (h *AccountApiHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Jwt.CookieName, token, h.Jwt.ExpireHours*3600, "/", "", h.Jwt.SecureCookie, true)
}

func (h *AccountApiHandler) sendToken(c *gin.Context, xl *xlog.Logger, status int, account *model.AccountDo, token string) {
	h.setCookie(c, token)
	resp := model.NewSuccessResponse(account).WithToken(token).WithRequestID(xl.ReqId)
	if status == http.StatusCreated {
		resp = model.NewCreatedResponse(account).WithToken(token).WithRequestID(xl.ReqId)
	}
	resp.Send(c)
}

// register 注册 role 角色的账号，phoneOptional 时可以不填手机号。
func (h *AccountApiHandler) register(c *gin.Context, role model.Role, phoneOptional bool) (*model.AccountDo, string, bool) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.RegisterForm
	if !bind(c, xl, &f) {
		return nil, "", false
	}
	f.Normalize()
	f.PhoneOptional = phoneOptional
	if err := f.Validate(); err != nil {
		model.NewFailResponse(*model.NewResponseErrorValidation(err)).WithRequestID(xl.ReqId).Send(c)
		return nil, "", false
	}
	imagePath, err := files.path("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return nil, "", false
	}
	account, token, err := h.Accounts.Register(xl, role, &f, imagePath)
	if err != nil {
		fail(c, xl, err)
		return nil, "", false
	}
	return account, token, true
}

// RegisterUser POST /api/user/register
func (h *AccountApiHandler) RegisterUser(c *gin.Context) {
	account, token, ok := h.register(c, model.RoleUser, false)
	if ok {
		h.sendToken(c, logger(c), http.StatusCreated, account, token)
	}
}

// Login 返回只允许 roles 登录的处理函数。
func (h *AccountApiHandler) Login(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := logger(c)
		var f form.LoginForm
		if !bindValid(c, xl, &f) {
			return
		}
		account, token, err := h.Accounts.Login(xl, &f, roles...)
		if err != nil {
			fail(c, xl, err)
			return
		}
		h.sendToken(c, xl, http.StatusOK, account, token)
	}
}

func (h *AccountApiHandler) Logout(c *gin.Context) {
	xl := logger(c)
	c.SetCookie(h.Jwt.CookieName, "", -1, "/", "", h.Jwt.SecureCookie, true)
	deleted(c, xl, "Logged out successfully")
}

func (h *AccountApiHandler) Me(c *gin.Context) {
	ok(c, logger(c), principal(c))
}

func (h *AccountApiHandler) UpdateProfile(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.ProfileForm
	if !bindValid(c, xl, &f) {
		return
	}
	imagePath, err := files.path("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	account, err := h.Accounts.UpdateProfile(xl, principal(c).ID, &f, imagePath)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, account)
}

func (h *AccountApiHandler) ChangePassword(c *gin.Context) {
	xl := logger(c)
	var f form.ChangePasswordForm
	if !bindValid(c, xl, &f) {
		return
	}
	if err := h.Accounts.ChangePassword(xl, principal(c).ID, &f); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Password changed successfully")
}

func (h *AccountApiHandler) DeleteImage(c *gin.Context) {
	xl := logger(c)
	account, err := h.Accounts.DeleteImage(xl, principal(c).ID)
	if err != nil {
		fail(c, xl, err)
		return
	}
	model.NewSuccessResponse(account).WithMessage("Image deleted successfully").WithRequestID(xl.ReqId).Send(c)
}

func (h *AccountApiHandler) SendOTP(c *gin.Context) {
	xl := logger(c)
	var f form.EmailForm
	if !bindValid(c, xl, &f) {
		return
	}
	if err := h.Accounts.SendOTP(xl, f.Email); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "OTP sent to your email")
}

func (h *AccountApiHandler) VerifyOTP(c *gin.Context) {
	xl := logger(c)
	var f form.VerifyOTPForm
	if !bindValid(c, xl, &f) {
		return
	}
	if err := h.Accounts.VerifyOTP(xl, &f); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "OTP verified successfully")
}

func (h *AccountApiHandler) ResetPassword(c *gin.Context) {
	xl := logger(c)
	var f form.ResetPasswordForm
	if !bindValid(c, xl, &f) {
		return
	}
	if err := h.Accounts.ResetPassword(xl, &f); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Password reset successfully")
}

// ListAccounts 返回列出 role 角色账号的处理函数。
func (h *AccountApiHandler) ListAccounts(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := logger(c)
		accounts, err := h.Accounts.List(xl, role)
		if err != nil {
			fail(c, xl, err)
			return
		}
		list(c, xl, accounts, len(accounts))
	}
}

func (h *AccountApiHandler) ToggleActive(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := logger(c)
		account, err := h.Accounts.ToggleActive(xl, c.Param("id"), role)
		if err != nil {
			fail(c, xl, err)
			return
		}
		ok(c, xl, account)
	}
}

func (h *AccountApiHandler) DeleteAccount(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		xl := logger(c)
		if err := h.Accounts.Delete(xl, c.Param("id"), role); err != nil {
			fail(c, xl, err)
			return
		}
		deleted(c, xl, "Account deleted successfully")
	}
}

// RegisterSuperAdmin 系统中还没有超级管理员时才允许。
func (h *AccountApiHandler) RegisterSuperAdmin(c *gin.Context) {
	xl := logger(c)
	var f form.RegisterForm
	if !bind(c, xl, &f) {
		return
	}
	f.Normalize()
	f.PhoneOptional = true
	if err := f.Validate(); err != nil {
		model.NewFailResponse(*model.NewResponseErrorValidation(err)).WithRequestID(xl.ReqId).Send(c)
		return
	}
	account, token, err := h.Accounts.BootstrapSuperAdmin(xl, &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	h.sendToken(c, xl, http.StatusCreated, account, token)
}

// CreateAdmin 超级管理员创建管理员，不切换当前登录态。
func (h *AccountApiHandler) CreateAdmin(c *gin.Context) {
	account, _, ok := h.register(c, model.RoleAdmin, true)
	if ok {
		created(c, logger(c), account)
	}
}
