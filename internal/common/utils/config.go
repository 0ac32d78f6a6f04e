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

package utils

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	qconfig "github.com/qiniu/x/config"
)

var (
	DefaultConf Config
)

// InitConf 加载配置文件，随后读取 .env 与环境变量覆盖其中的密钥。
func InitConf(configFilePath string) {
	err := qconfig.LoadFile(&DefaultConf, configFilePath)
	if err != nil {
		log.Fatalf("failed to load config file, error %v", err)
	}
	// .env 不存在时忽略。
	_ = godotenv.Load()
	DefaultConf.applyEnv()
	DefaultConf.fillDefaults()
}

// applyEnv 使用环境变量覆盖配置文件中的敏感字段。
func (c *Config) applyEnv() {
	if v := os.Getenv("MONGO_URI"); v != "" {
		if c.Mongo == nil {
			c.Mongo = &MongoConfig{}
		}
		c.Mongo.URI = v
	}
	if v := os.Getenv("SEAGULLS_JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("QINIU_ACCESS_KEY"); v != "" {
		c.QiniuKeyPair.AccessKey = v
	}
	if v := os.Getenv("QINIU_SECRET_KEY"); v != "" {
		c.QiniuKeyPair.SecretKey = v
	}
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		c.Mail.APIKey = v
	}
}

func (c *Config) fillDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":5000"
	}
	if c.Jwt.ExpireHours <= 0 {
		c.Jwt.ExpireHours = 24 * 7
	}
	if c.Jwt.CookieName == "" {
		c.Jwt.CookieName = "token"
	}
	if c.Upload.TempDir == "" {
		c.Upload.TempDir = filepath.Join(os.TempDir(), "seagulls-uploads")
	}
	if c.Upload.MaxAVSizeMB <= 0 {
		c.Upload.MaxAVSizeMB = 100
	}
	if c.Upload.MaxImageSizeMB <= 0 {
		c.Upload.MaxImageSizeMB = 10
	}
	if c.Upload.ReapAfterMinutes <= 0 {
		c.Upload.ReapAfterMinutes = 30
	}
	if c.OTP.Length <= 0 {
		c.OTP.Length = 6
	}
	if c.OTP.ExpireMinutes <= 0 {
		c.OTP.ExpireMinutes = 10
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = "test"
	}
	if c.Mail.SenderLabel == "" {
		c.Mail.SenderLabel = "SeagullsFM Team"
	}
	if c.PhoneRegion == "" {
		c.PhoneRegion = "EG"
	}
}

// MongoConfig mongo 数据库配置。
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// QiniuKeyPair 七牛APIaccess key/secret key配置。
type QiniuKeyPair struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// QiniuStorageConfig 七牛对象存储服务配置，媒体文件都存放在这里。
type QiniuStorageConfig struct {
	// Bucket 上传的文件所在的七牛对象存储bucket。
	Bucket    string `json:"bucket"`
	// URLPrefix 上传的文件的下载URL前缀，一般为该bucket对应的默认域名。
	URLPrefix string `json:"url_prefix"`
	// Zone 空间对应的机房 z0/z1/z2/na0/as0，为空时由 SDK 查询。
	Zone      string `json:"zone"`
	UseHTTPS  bool   `json:"use_https"`
}

// MailConfig 发送邮件的配置。Provider 为 test 时只打日志，为 resend 时调用 resend API。
type MailConfig struct {
	Provider    string `json:"provider"`
	From        string `json:"from"`
	APIKey      string `json:"api_key"`
	SenderLabel string `json:"sender_label"`
}

// JwtConfig 登录 token 相关配置。
type JwtConfig struct {
	Secret       string `json:"secret"`
	ExpireHours  int    `json:"expire_hours"`
	CookieName   string `json:"cookie_name"`
	SecureCookie bool   `json:"secure_cookie"`
}

// UploadConfig 本地临时上传目录与大小限制。
type UploadConfig struct {
	TempDir          string `json:"temp_dir"`
	MaxAVSizeMB      int64  `json:"max_av_size_mb"`
	MaxImageSizeMB   int64  `json:"max_image_size_mb"`
	ReapAfterMinutes int    `json:"reap_after_minutes"`
}

// OTPConfig 找回密码验证码配置。
type OTPConfig struct {
	Length        int `json:"length"`
	ExpireMinutes int `json:"expire_minutes"`
}

type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins"`
}

// Config 后端配置。
type Config struct {
	// debug等级，为1时输出info/warn/error日志，为0除以上外还输出debug日志
	DebugLevel   int                `json:"debug_level"`
	ListenAddr   string             `json:"listen_addr"`
	// PhoneRegion 手机号未带国家码时使用的默认地区。
	PhoneRegion  string             `json:"phone_region"`
	Mongo        *MongoConfig       `json:"mongo"`
	QiniuKeyPair QiniuKeyPair       `json:"qiniu_key_pair"`
	Storage      QiniuStorageConfig `json:"storage"`
	Mail         MailConfig         `json:"mail"`
	Jwt          JwtConfig          `json:"jwt"`
	Upload       UploadConfig       `json:"upload"`
	OTP          OTPConfig          `json:"otp"`
	CORS         CORSConfig         `json:"cors"`
}

// NewSample 返回样例配置。
func NewSample() *Config {
	c := &Config{
		DebugLevel: 0,
		ListenAddr: ":5000",
		Mongo: &MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "seagulls_test",
		},
		QiniuKeyPair: QiniuKeyPair{
			AccessKey: os.Getenv("QINIU_ACCESS_KEY"),
			SecretKey: os.Getenv("QINIU_SECRET_KEY"),
		},
		Mail: MailConfig{
			Provider: "test",
			From:     "SeagullsFM <no-reply@seagullsfm.com>",
		},
		Jwt: JwtConfig{
			Secret: "seagulls-dev-secret",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173"},
		},
	}
	c.fillDefaults()
	return c
}
