package model

import "time"

// MediaDo 存放在媒体服务上的文件。
type MediaDo struct {
	PublicID     string `bson:"public_id" json:"publicId"`
	URL          string `bson:"url" json:"url"`
	ResourceType string `bson:"resource_type,omitempty" json:"resourceType,omitempty"`
}

// Empty 是否没有关联任何远端文件。
func (m *MediaDo) Empty() bool {
	return m == nil || m.PublicID == ""
}

const (
	ResourceTypeImage = "image"
	ResourceTypeAudio = "audio"
	ResourceTypeVideo = "video"
)

// ChannelDo 电台频道，其他内容都归属某个频道。
type ChannelDo struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	CreatedTime time.Time `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time `bson:"updated_time" json:"updatedAt"`
}

// ChannelRef 展开到其他文档中的频道信息。
type ChannelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *ChannelDo) Ref() *ChannelRef {
	if c == nil {
		return nil
	}
	return &ChannelRef{ID: c.ID, Name: c.Name}
}

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid 是否是已知的角色。
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// AccountDo 所有登录主体（普通用户、管理员、超级管理员）共用一张表，通过 role 区分。
type AccountDo struct {
	ID           string    `bson:"_id" json:"id"`
	Role         Role      `bson:"role" json:"role"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Image        *MediaDo  `bson:"image,omitempty" json:"image,omitempty"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	OTP          string    `bson:"otp,omitempty" json:"-"`
	OTPExpiry    time.Time `bson:"otp_expiry,omitempty" json:"-"`
	OTPVerified  bool      `bson:"otp_verified" json:"-"`
	LastLogin    time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedTime  time.Time `bson:"created_time" json:"createdAt"`
	UpdatedTime  time.Time `bson:"updated_time" json:"updatedAt"`
}

// IsStaff 管理员或超级管理员。
func (a *AccountDo) IsStaff() bool {
	return a != nil && (a.Role == RoleAdmin || a.Role == RoleSuperAdmin)
}

// Owns 判断某条记录是否属于当前账号。
func (a *AccountDo) Owns(userID string) bool {
	return a != nil && a.ID == userID
}

// HasRole 是否属于给定角色之一。
func (a *AccountDo) HasRole(roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// AccountRef 展开到其他文档中的账号信息。
type AccountRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (a *AccountDo) Ref() *AccountRef {
	if a == nil {
		return nil
	}
	return &AccountRef{ID: a.ID, Name: a.Name, Email: a.Email}
}
