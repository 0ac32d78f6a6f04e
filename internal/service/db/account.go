package db

import (
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/qiniu/x/xlog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao"
)

const (
	msgUserNotFound     = "User not found"
	msgInvalidCreds     = "Invalid credentials"
	msgNotAuthorized    = "Not authorized to access this route"
	msgSamePassword     = "New password must be different from current password"
	msgEmailOrPhoneUsed = "Email or phone number is already in use by another account"

	// FolderUsers 用户头像的存放目录。
	FolderUsers = "users"
)

// Claims 登录 token 中携带的信息。
type Claims struct {
	ID   string     `json:"id"`
	Role model.Role `json:"role"`
	jwt.StandardClaims
}

// AccountService 注册、登录、个人资料、找回密码以及后台账号管理。
type AccountService struct {
	accounts dao.AccountDaoInterface
	media    cloud.MediaStore
	mailer   cloud.Mailer
	conf     *utils.Config
	now      func() time.Time
	xl       *xlog.Logger
}

func NewAccountService(xl *xlog.Logger, conf *utils.Config, accounts dao.AccountDaoInterface,
	media cloud.MediaStore, mailer cloud.Mailer) *AccountService {
	if xl == nil {
		xl = xlog.New("seagulls-account")
	}
	return &AccountService{
		accounts: accounts,
		media:    media,
		mailer:   mailer,
		conf:     conf,
		now:      time.Now,
		xl:       xl,
	}
}

// WithClock 替换时间来源，测试用。
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	s.now = now
	return s
}

func (s *AccountService) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return s.xl
	}
	return xl
}

// IssueToken 签发 HS256 的登录 token。
func (s *AccountService) IssueToken(account *model.AccountDo) (string, error) {
	claims := &Claims{
		ID:   account.ID,
		Role: account.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  s.now().Unix(),
			ExpiresAt: s.now().Add(time.Duration(s.conf.Jwt.ExpireHours) * time.Hour).Unix(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.conf.Jwt.Secret))
}

// ParseToken 校验签名与过期时间。
func (s *AccountService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	// 过期时间按 s.now 校验
	parser := &jwt.Parser{SkipClaimsValidation: true}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.conf.Jwt.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, fmt.Errorf("token expired")
	}
	return claims, nil
}

// Authenticate 根据 token 找到对应的账号，账号不存在、角色不符或被停用都视为未登录。
func (s *AccountService) Authenticate(xl *xlog.Logger, token string) (*model.AccountDo, error) {
	xl = s.logger(xl)
	claims, err := s.ParseToken(token)
	if err != nil {
		xl.Debugf("invalid token, error %v", err)
		return nil, errors.New(errors.ServerErrorBadCredentials, msgNotAuthorized)
	}
	account, err := s.accounts.Select(xl, claims.ID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.New(errors.ServerErrorBadCredentials, msgNotAuthorized)
		}
		return nil, err
	}
	if account.Role != claims.Role || !account.IsActive {
		xl.Infof("account %s rejected, role %s active %v", account.ID, account.Role, account.IsActive)
		return nil, errors.New(errors.ServerErrorBadCredentials, msgNotAuthorized)
	}
	return account, nil
}

// checkUnique 邮箱与手机号在所有账号中唯一，excludeID 为当前账号自身。
func (s *AccountService) checkUnique(xl *xlog.Logger, email, phone, excludeID, msg string) error {
	if email != "" {
		existing, err := s.accounts.SelectByEmail(xl, email)
		if err != nil && err != mgo.ErrNotFound {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return errors.New(errors.ServerErrorEmailOrPhoneUsed, msg)
		}
	}
	if phone != "" {
		existing, err := s.accounts.SelectByPhone(xl, phone)
		if err != nil && err != mgo.ErrNotFound {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			return errors.New(errors.ServerErrorEmailOrPhoneUsed, msg)
		}
	}
	return nil
}

func (s *AccountService) normalizePhone(phone string) (string, error) {
	if phone == "" {
		return "", nil
	}
	normalized, err := cloud.NormalizePhone(phone, s.conf.PhoneRegion)
	if err != nil {
		return "", errors.InvalidArgument(err.Error())
	}
	return normalized, nil
}

// uploadImage 头像上传失败不影响主流程。
func (s *AccountService) uploadImage(xl *xlog.Logger, imagePath string) *model.MediaDo {
	if imagePath == "" || s.media == nil {
		return nil
	}
	image, err := s.media.Upload(xl, imagePath, FolderUsers, model.ResourceTypeImage)
	if err != nil {
		xl.Errorf("image upload error %v", err)
		return nil
	}
	return image
}

// Register 创建账号并返回登录 token。imagePath 为空表示没有上传头像。
func (s *AccountService) Register(xl *xlog.Logger, role model.Role, f *form.RegisterForm, imagePath string) (*model.AccountDo, string, error) {
	xl = s.logger(xl)
	phone, err := s.normalizePhone(f.PhoneNumber)
	if err != nil {
		return nil, "", err
	}
	if err := s.checkUnique(xl, f.Email, phone, "", msgEmailOrPhoneUsed); err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	account := &model.AccountDo{
		Role:         role,
		Name:         f.Name,
		Email:        f.Email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	account.Image = s.uploadImage(xl, imagePath)
	if _, err := s.accounts.Insert(xl, account); err != nil {
		cloud.BestEffortDestroy(xl, s.media, account.Image)
		if err == dao.ErrDuplicate {
			return nil, "", errors.New(errors.ServerErrorEmailOrPhoneUsed, msgEmailOrPhoneUsed)
		}
		return nil, "", err
	}
	token, err := s.IssueToken(account)
	if err != nil {
		return nil, "", err
	}
	xl.Infof("%s %s registered", role, account.ID)
	return account, token, nil
}

// BootstrapSuperAdmin 仅在系统中还没有超级管理员时允许注册。
func (s *AccountService) BootstrapSuperAdmin(xl *xlog.Logger, f *form.RegisterForm) (*model.AccountDo, string, error) {
	xl = s.logger(xl)
	n, err := s.accounts.CountByRole(xl, model.RoleSuperAdmin)
	if err != nil {
		return nil, "", err
	}
	if n > 0 {
		return nil, "", errors.Forbidden("Super admin already exists")
	}
	return s.Register(xl, model.RoleSuperAdmin, f, "")
}

// Login 只允许 roles 中的角色登录。
func (s *AccountService) Login(xl *xlog.Logger, f *form.LoginForm, roles ...model.Role) (*model.AccountDo, string, error) {
	xl = s.logger(xl)
	account, err := s.accounts.SelectByEmail(xl, f.Email)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, "", errors.New(errors.ServerErrorBadCredentials, msgInvalidCreds)
		}
		return nil, "", err
	}
	if !account.HasRole(roles...) {
		return nil, "", errors.New(errors.ServerErrorBadCredentials, msgInvalidCreds)
	}
	if !account.IsActive {
		return nil, "", errors.New(errors.ServerErrorAccountDisabled, "Your account is deactivated. Please contact support.")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(f.Password)) != nil {
		return nil, "", errors.New(errors.ServerErrorBadCredentials, msgInvalidCreds)
	}
	account.LastLogin = s.now()
	if err := s.accounts.Update(xl, account); err != nil {
		xl.Errorf("failed to update account %s login time, error %v", account.ID, err)
	}
	token, err := s.IssueToken(account)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *AccountService) Get(xl *xlog.Logger, accountID string) (*model.AccountDo, error) {
	account, err := s.accounts.Select(s.logger(xl), accountID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return account, nil
}

// getWithRole role 不符时当作不存在。
func (s *AccountService) getWithRole(xl *xlog.Logger, accountID string, role model.Role) (*model.AccountDo, error) {
	account, err := s.Get(xl, accountID)
	if err != nil {
		return nil, err
	}
	if account.Role != role {
		return nil, errors.NotFound(msgUserNotFound)
	}
	return account, nil
}

// UpdateProfile 只修改提交了的字段；上传新头像时先删除旧头像。
func (s *AccountService) UpdateProfile(xl *xlog.Logger, accountID string, f *form.ProfileForm, imagePath string) (*model.AccountDo, error) {
	xl = s.logger(xl)
	account, err := s.Get(xl, accountID)
	if err != nil {
		return nil, err
	}
	if f.Name != "" {
		account.Name = f.Name
	}
	if f.Email != "" && f.Email != account.Email {
		if err := s.checkUnique(xl, f.Email, "", account.ID, "Email is already in use by another account"); err != nil {
			return nil, err
		}
		account.Email = f.Email
	}
	if f.PhoneNumber != "" {
		phone, err := s.normalizePhone(f.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if err := s.checkUnique(xl, "", phone, account.ID, "Phone number is already in use by another account"); err != nil {
			return nil, err
		}
		account.PhoneNumber = phone
	}
	if imagePath != "" {
		cloud.BestEffortDestroy(xl, s.media, account.Image)
		account.Image = s.uploadImage(xl, imagePath)
	}
	if err := s.accounts.Update(xl, account); err != nil {
		if err == dao.ErrDuplicate {
			return nil, errors.New(errors.ServerErrorEmailOrPhoneUsed, msgEmailOrPhoneUsed)
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) DeleteImage(xl *xlog.Logger, accountID string) (*model.AccountDo, error) {
	xl = s.logger(xl)
	account, err := s.Get(xl, accountID)
	if err != nil {
		return nil, err
	}
	cloud.BestEffortDestroy(xl, s.media, account.Image)
	account.Image = nil
	if err := s.accounts.Update(xl, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ChangePassword(xl *xlog.Logger, accountID string, f *form.ChangePasswordForm) error {
	xl = s.logger(xl)
	account, err := s.Get(xl, accountID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(f.CurrentPassword)) != nil {
		return errors.New(errors.ServerErrorWrongPassword, "Current password is incorrect")
	}
	return s.setPassword(xl, account, f.NewPassword)
}

func (s *AccountService) setPassword(xl *xlog.Logger, account *model.AccountDo, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil {
		return errors.New(errors.ServerErrorSamePassword, msgSamePassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	return s.accounts.Update(xl, account)
}

// selectUser 找回密码只对普通用户开放，管理员账号按不存在处理。
func (s *AccountService) selectUser(xl *xlog.Logger, email string) (*model.AccountDo, error) {
	account, err := s.accounts.SelectByEmail(xl, email)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	if account.Role != model.RoleUser {
		return nil, errors.NotFound(msgUserNotFound)
	}
	return account, nil
}

// SendOTP 生成新的验证码并通过邮件发送，之前的验证状态作废。
func (s *AccountService) SendOTP(xl *xlog.Logger, email string) error {
	xl = s.logger(xl)
	account, err := s.selectUser(xl, email)
	if err != nil {
		return err
	}
	expire := time.Duration(s.conf.OTP.ExpireMinutes) * time.Minute
	code, err := utils.GenerateDigits(s.conf.OTP.Length)
	if err != nil {
		return err
	}
	account.OTP = code
	account.OTPExpiry = s.now().Add(expire)
	account.OTPVerified = false
	if err := s.accounts.Update(xl, account); err != nil {
		return err
	}
	if err := s.mailer.SendOTP(xl, account.Email, account.OTP, expire); err != nil {
		return errors.Wrap(errors.ServerErrorMailSendFail, "Error sending OTP email", err)
	}
	return nil
}

func (s *AccountService) VerifyOTP(xl *xlog.Logger, f *form.VerifyOTPForm) error {
	xl = s.logger(xl)
	account, err := s.selectUser(xl, f.Email)
	if err != nil {
		return err
	}
	if account.OTP == "" || account.OTP != f.OTP || account.OTPExpiry.Before(s.now()) {
		return errors.New(errors.ServerErrorOTPInvalid, "Invalid or expired OTP")
	}
	account.OTPVerified = true
	return s.accounts.Update(xl, account)
}

// ResetPassword 需要先通过验证码校验，重置后验证码失效。
func (s *AccountService) ResetPassword(xl *xlog.Logger, f *form.ResetPasswordForm) error {
	xl = s.logger(xl)
	account, err := s.selectUser(xl, f.Email)
	if err != nil {
		return err
	}
	if !account.OTPVerified {
		return errors.New(errors.ServerErrorOTPNotVerified, "OTP must be verified first. Please verify your OTP before resetting password.")
	}
	if f.NewPassword != f.ConfirmPassword {
		return errors.InvalidArgument("New Password and the confirm do not match")
	}
	account.OTP = ""
	account.OTPExpiry = time.Time{}
	account.OTPVerified = false
	return s.setPassword(xl, account, f.NewPassword)
}

func (s *AccountService) List(xl *xlog.Logger, role model.Role) ([]model.AccountDo, error) {
	return s.accounts.ListByRole(s.logger(xl), role)
}

// ToggleActive 切换启用状态，返回修改后的账号。
func (s *AccountService) ToggleActive(xl *xlog.Logger, accountID string, role model.Role) (*model.AccountDo, error) {
	xl = s.logger(xl)
	account, err := s.getWithRole(xl, accountID, role)
	if err != nil {
		return nil, err
	}
	account.IsActive = !account.IsActive
	if err := s.accounts.Update(xl, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Delete(xl *xlog.Logger, accountID string, role model.Role) error {
	xl = s.logger(xl)
	account, err := s.getWithRole(xl, accountID, role)
	if err != nil {
		return err
	}
	cloud.BestEffortDestroy(xl, s.media, account.Image)
	return s.accounts.Delete(xl, account.ID)
}

// ClearExpiredOTP 定时任务调用。
func (s *AccountService) ClearExpiredOTP(xl *xlog.Logger) (int, error) {
	return s.accounts.ClearExpiredOTP(s.logger(xl), s.now())
}
