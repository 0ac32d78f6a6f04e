package form

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ErrNameLengthMsg     = "Name must be between 2 and 50 characters"
	ErrPasswordLengthMsg = "Password must be at least 6 characters"
	ErrNewPasswordMsg    = "New password must be at least 6 characters"
)

// RegisterForm 用户注册；超级管理员创建管理员时也使用它，此时手机号可选。
type RegisterForm struct {
	Name          string `form:"name" json:"name"`
	Email         string `form:"email" json:"email"`
	Password      string `form:"password" json:"password"`
	PhoneNumber   string `form:"phoneNumber" json:"phoneNumber"`
	PhoneOptional bool   `form:"-" json:"-"`
}

func (f *RegisterForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
}

func (f *RegisterForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" || (f.PhoneNumber == "" && !f.PhoneOptional) {
		return errors.New("Please provide all required fields: name, email, password, and phoneNumber")
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Length(2, 50).Error(ErrNameLengthMsg)),
		validation.Field(&f.Email, validation.Match(EmailRegex).Error(ErrEmailMsg)),
		validation.Field(&f.Password, validation.Length(6, 0).Error(ErrPasswordLengthMsg)),
	)
}

type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (f *LoginForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if f.Email == "" || f.Password == "" {
		return errors.New("Please provide email and password")
	}
	return nil
}

// ProfileForm 修改个人资料，字段均可选。
type ProfileForm struct {
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
}

func (f *ProfileForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Length(2, 50).Error(ErrNameLengthMsg)),
		validation.Field(&f.Email, validation.Match(EmailRegex).Error(ErrEmailMsg)),
	)
}

type ChangePasswordForm struct {
	CurrentPassword string `form:"currentPassword" json:"currentPassword"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
}

func (f *ChangePasswordForm) Validate() error {
	if f.CurrentPassword == "" || f.NewPassword == "" {
		return errors.New("Please provide both current password and new password")
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.NewPassword, validation.Length(6, 0).Error(ErrNewPasswordMsg)),
	)
}

type EmailForm struct {
	Email string `form:"email" json:"email"`
}

func (f *EmailForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if f.Email == "" {
		return errors.New("Please provide an email address")
	}
	return nil
}

type VerifyOTPForm struct {
	Email string `form:"email" json:"email"`
	OTP   string `form:"otp" json:"otp"`
}

func (f *VerifyOTPForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.OTP = strings.TrimSpace(f.OTP)
	return validation.ValidateStruct(f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.OTP, validation.Required),
	)
}

type ResetPasswordForm struct {
	Email           string `form:"email" json:"email"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

func (f *ResetPasswordForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if f.NewPassword == "" || f.ConfirmPassword == "" {
		return errors.New("Please provide new password and confirm new password")
	}
	if f.Email == "" {
		return errors.New("Please provide an email address")
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.NewPassword, validation.Length(6, 0).Error(ErrNewPasswordMsg)),
	)
}
