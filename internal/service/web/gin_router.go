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

package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db"
	"github.com/solutions/seagulls/internal/service/web/handler"
	"github.com/solutions/seagulls/internal/service/web/middleware"
)

// Services 路由依赖的业务服务。
type Services struct {
	Accounts   *db.AccountService
	Channels   *db.ChannelService
	Content    *db.ContentService
	StaticInfo *db.StaticInfoService
	Tracks     *db.TrackService
}

// NewRouter 返回gin router，分流API。
func NewRouter(config *utils.Config, svc Services) *gin.Engine {
	// 1. 初始化GIN
	router := gin.New()
	router.Use(gin.Recovery())
	// 1.1. 全局CORS配置
	router.Use(corsMiddleware(config.CORS))
	router.Use(middleware.AddRequestID, middleware.AccessLog)

	// 2. 声明Handler
	uploads := handler.NewUploader(config.Upload)
	accountApiHandler := &handler.AccountApiHandler{
		Accounts: svc.Accounts,
		Uploads:  uploads,
		Jwt:      config.Jwt,
	}
	channelApiHandler := &handler.ChannelApiHandler{Channels: svc.Channels}
	contentApiHandler := &handler.ContentApiHandler{Content: svc.Content, Uploads: uploads}
	staticInfoApiHandler := &handler.StaticInfoApiHandler{StaticInfo: svc.StaticInfo, Uploads: uploads}
	trackApiHandler := &handler.TrackApiHandler{Tracks: svc.Tracks, Uploads: uploads}

	middleware.InitMiddleware(svc.Accounts, config.Jwt)
	auth := middleware.Authenticate
	user := middleware.Authorize(model.RoleUser)
	staff := middleware.Authorize(model.RoleAdmin, model.RoleSuperAdmin)
	superAdmin := middleware.Authorize(model.RoleSuperAdmin)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to SeagullsFM API"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	api := router.Group("/api")

	// 3. 账号
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", accountApiHandler.RegisterUser)
		userGroup.POST("/login", accountApiHandler.Login(model.RoleUser))
		userGroup.POST("/logout", accountApiHandler.Logout)
		userGroup.PUT("/send-otp", accountApiHandler.SendOTP)
		userGroup.POST("/verify-otp", accountApiHandler.VerifyOTP)
		userGroup.POST("/reset-password", accountApiHandler.ResetPassword)

		userGroup.GET("/me", auth, user, accountApiHandler.Me)
		userGroup.PUT("/profile", auth, user, accountApiHandler.UpdateProfile)
		userGroup.PUT("/change-password", auth, user, accountApiHandler.ChangePassword)
		userGroup.DELETE("/delete-image", auth, user, accountApiHandler.DeleteImage)

		userGroup.GET("", auth, staff, accountApiHandler.ListAccounts(model.RoleUser))
		userGroup.PUT("/:id/toggle-active", auth, staff, accountApiHandler.ToggleActive(model.RoleUser))
		userGroup.DELETE("/:id", auth, staff, accountApiHandler.DeleteAccount(model.RoleUser))
	}
	adminGroup := api.Group("/admin")
	{
		adminGroup.POST("/login", accountApiHandler.Login(model.RoleAdmin))
		adminGroup.POST("/logout", accountApiHandler.Logout)
		adminGroup.GET("/me", auth, staff, accountApiHandler.Me)
	}
	superAdminGroup := api.Group("/superadmin")
	{
		superAdminGroup.POST("/register", accountApiHandler.RegisterSuperAdmin)
		superAdminGroup.POST("/login", accountApiHandler.Login(model.RoleSuperAdmin))
		superAdminGroup.POST("/logout", accountApiHandler.Logout)
		superAdminGroup.GET("/me", auth, superAdmin, accountApiHandler.Me)
		superAdminGroup.POST("/admins", auth, superAdmin, accountApiHandler.CreateAdmin)
		superAdminGroup.GET("/admins", auth, superAdmin, accountApiHandler.ListAccounts(model.RoleAdmin))
		superAdminGroup.PUT("/admins/:id/toggle-active", auth, superAdmin, accountApiHandler.ToggleActive(model.RoleAdmin))
		superAdminGroup.DELETE("/admins/:id", auth, superAdmin, accountApiHandler.DeleteAccount(model.RoleAdmin))
	}

	// 4. 频道与内容
	channelGroup := api.Group("/channel")
	{
		channelGroup.GET("", channelApiHandler.List)
		channelGroup.GET("/:id", channelApiHandler.Get)
		channelGroup.POST("", auth, superAdmin, channelApiHandler.Create)
		channelGroup.PUT("/:id", auth, superAdmin, channelApiHandler.Rename)
		channelGroup.DELETE("/:id", auth, superAdmin, channelApiHandler.Delete)
	}
	broadcasterGroup := api.Group("/broadcaster")
	{
		broadcasterGroup.GET("", contentApiHandler.ListBroadcasters)
		broadcasterGroup.GET("/:id", contentApiHandler.GetBroadcaster)
		broadcasterGroup.POST("", auth, staff, contentApiHandler.CreateBroadcaster)
		broadcasterGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateBroadcaster)
		broadcasterGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteBroadcaster)
	}
	programGroup := api.Group("/program")
	{
		programGroup.GET("", contentApiHandler.ListPrograms)
		programGroup.GET("/:id", contentApiHandler.GetProgram)
		programGroup.POST("", auth, staff, contentApiHandler.CreateProgram)
		programGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateProgram)
		programGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteProgram)
	}
	interviewGroup := api.Group("/interview")
	{
		interviewGroup.GET("", contentApiHandler.ListInterviews)
		interviewGroup.GET("/:id", contentApiHandler.GetInterview)
		interviewGroup.POST("", auth, staff, contentApiHandler.CreateInterview)
		interviewGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateInterview)
		interviewGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteInterview)
	}
	newsGroup := api.Group("/news")
	{
		newsGroup.GET("", contentApiHandler.ListNews)
		newsGroup.GET("/:id", contentApiHandler.GetNews)
		newsGroup.POST("", auth, staff, contentApiHandler.CreateNews)
		newsGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateNews)
		newsGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteNews)
	}
	eventGroup := api.Group("/event")
	{
		eventGroup.GET("", contentApiHandler.ListEvents)
		eventGroup.GET("/:id", contentApiHandler.GetEvent)
		eventGroup.POST("", auth, staff, contentApiHandler.CreateEvent)
		eventGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateEvent)
		eventGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteEvent)
	}
	adGroup := api.Group("/advertisement")
	{
		adGroup.POST("", contentApiHandler.CreateAdvertisement)
		adGroup.GET("", auth, staff, contentApiHandler.ListAdvertisements)
		adGroup.GET("/:id", auth, staff, contentApiHandler.GetAdvertisement)
		adGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteAdvertisement)
	}
	applicantGroup := api.Group("/interviewapplicant")
	{
		applicantGroup.POST("", contentApiHandler.CreateApplicant)
		applicantGroup.GET("", auth, staff, contentApiHandler.ListApplicants)
		applicantGroup.GET("/:id", auth, staff, contentApiHandler.GetApplicant)
		applicantGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateApplicantStatus)
		applicantGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteApplicant)
	}
	competitionGroup := api.Group("/competition")
	{
		competitionGroup.GET("/:id", contentApiHandler.GetCompetition)
		competitionGroup.POST("/:id/submission", auth, user, contentApiHandler.SubmitAnswer)
		competitionGroup.GET("", auth, staff, contentApiHandler.ListCompetitions)
		competitionGroup.GET("/:id/submissions", auth, staff, contentApiHandler.GetCompetitionSubmissions)
		competitionGroup.POST("", auth, staff, contentApiHandler.CreateCompetition)
		competitionGroup.PUT("/:id", auth, staff, contentApiHandler.UpdateCompetition)
		competitionGroup.DELETE("/:id", auth, staff, contentApiHandler.DeleteCompetition)
	}
	staticInfoGroup := api.Group("/staticinfo")
	{
		staticInfoGroup.GET("", staticInfoApiHandler.List)
		staticInfoGroup.GET("/:channelId", staticInfoApiHandler.Get)
		staticInfoGroup.POST("", auth, staff, staticInfoApiHandler.Create)
		staticInfoGroup.PUT("/:channelId", auth, staff, staticInfoApiHandler.Update)
		staticInfoGroup.DELETE("/:channelId", auth, staff, staticInfoApiHandler.Delete)
	}

	// 5. 投稿
	trackGroup := api.Group("/uploadtrack")
	{
		trackGroup.GET("/approved/list", trackApiHandler.ListApproved)
		trackGroup.POST("", auth, user, trackApiHandler.Submit)
		trackGroup.GET("/my-tracks", auth, user, trackApiHandler.ListMine)
		trackGroup.GET("", auth, staff, trackApiHandler.List)
		trackGroup.GET("/:id", auth, trackApiHandler.Get)
		trackGroup.PUT("/:id/status", auth, staff, trackApiHandler.UpdateStatus)
		trackGroup.POST("/:id/approve", auth, staff, trackApiHandler.Approve)
		trackGroup.DELETE("/:id", auth, trackApiHandler.Delete)
	}

	router.NoRoute(returnNotFound)
	return router
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorNotFound("Route not found")
	model.NewFailResponse(*responseErr).WithRequestID(xl.ReqId).Send(c)
}

// corsMiddleware 未配置 allow_origins 时允许任意来源，并允许携带 cookie。
func corsMiddleware(conf utils.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control", "X-Requested-With", model.RequestIDHeader},
		ExposeHeaders:    []string{model.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(conf.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = conf.AllowOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return cors.New(corsConfig)
}
