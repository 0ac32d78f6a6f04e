package model

import "time"

// SocialLinks 主播、嘉宾的社交账号。
type SocialLinks struct {
	Instagram string `bson:"ig,omitempty" json:"ig,omitempty"`
	Facebook  string `bson:"fb,omitempty" json:"fb,omitempty"`
	YouTube   string `bson:"yt,omitempty" json:"yt,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

type BroadcasterDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Name        string      `bson:"name" json:"name"`
	Image       *MediaDo    `bson:"image,omitempty" json:"image,omitempty"`
	SocialLinks SocialLinks `bson:"social_links" json:"socialLinks"`
	Description string      `bson:"description" json:"description"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

const (
	ProgramStatusActive   = "active"
	ProgramStatusInactive = "inactive"
)

var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ProgramDo 节目单，某天某时段播出的节目。
type ProgramDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Title       string      `bson:"title" json:"title"`
	Image       *MediaDo    `bson:"image,omitempty" json:"image,omitempty"`
	Description string      `bson:"description" json:"description"`
	Day         string      `bson:"day" json:"day"`
	StartTime   string      `bson:"start_time" json:"startTime"`
	EndTime     string      `bson:"end_time" json:"endTime"`
	Status      string      `bson:"status" json:"status"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

// InterviewDo 节目中的访谈，内容为一个音视频文件。
type InterviewDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	ProgramID   string      `bson:"program_id" json:"programId"`
	Title       string      `bson:"title" json:"title"`
	Date        time.Time   `bson:"date" json:"date"`
	Content     *MediaDo    `bson:"content,omitempty" json:"content,omitempty"`
	Description string      `bson:"description" json:"description"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

type NewsDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Title       string      `bson:"title" json:"title"`
	Image       *MediaDo    `bson:"image,omitempty" json:"image,omitempty"`
	Description string      `bson:"description" json:"description"`
	Content     string      `bson:"content" json:"content"`
	PublishedAt time.Time   `bson:"published_at" json:"publishedAt"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

const (
	EventTypeEvent       = "event"
	EventTypePartnership = "partnership"
)

type EventDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Type        string      `bson:"type" json:"type"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	StartDate   time.Time   `bson:"start_date" json:"startDate"`
	EndDate     time.Time   `bson:"end_date" json:"endDate"`
	Address     string      `bson:"address" json:"address"`
	Image       *MediaDo    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

// AdvertisementDo 广告投放咨询，前台匿名提交。
type AdvertisementDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Name        string      `bson:"name" json:"name"`
	Email       string      `bson:"email" json:"email"`
	PhoneNumber string      `bson:"phone_number" json:"phoneNumber"`
	Message     string      `bson:"message" json:"message"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

const (
	ApplicantStatusPending  = "pending"
	ApplicantStatusApproved = "approved"
	ApplicantStatusRejected = "rejected"
)

// InterviewApplicantDo 报名上节目接受访谈的申请。
type InterviewApplicantDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Name        string      `bson:"name" json:"name"`
	Email       string      `bson:"email" json:"email"`
	PhoneNumber string      `bson:"phone_number" json:"phoneNumber"`
	Topic       string      `bson:"topic" json:"topic"`
	SocialLinks SocialLinks `bson:"social_links" json:"socialLinks"`
	Job         string      `bson:"job" json:"job"`
	Status      string      `bson:"status" json:"status"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

type CompetitionDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	Channel     *ChannelRef `bson:"-" json:"channel,omitempty"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	StartDate   time.Time   `bson:"start_date" json:"startDate"`
	EndDate     time.Time   `bson:"end_date" json:"endDate"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

// CompetitionUserDo 用户对某个比赛提交的答案。
type CompetitionUserDo struct {
	ID            string      `bson:"_id" json:"id"`
	CompetitionID string      `bson:"competition_id" json:"competitionId"`
	UserID        string      `bson:"user_id" json:"userId"`
	User          *AccountRef `bson:"-" json:"user,omitempty"`
	Answer        string      `bson:"answer" json:"answer"`
	CreatedTime   time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime   time.Time   `bson:"updated_time" json:"updatedAt"`
}

type CompetitionView struct {
	CompetitionDo
	Submissions []CompetitionUserDo `json:"submissions"`
}

// FavIconDo 站点图标，必须是正方形。
type FavIconDo struct {
	MediaDo `bson:",inline"`
	Width   int `bson:"width" json:"width"`
	Height  int `bson:"height" json:"height"`
}

// DownloadAppDo 客户端下载地址。
type DownloadAppDo struct {
	AppStore   string `bson:"app_store" json:"AppStore"`
	GooglePlay string `bson:"google_play" json:"GooglePlay"`
}

// StaticInfoDo 频道站点的静态信息，一个频道只有一条。
type StaticInfoDo struct {
	ID               string            `bson:"_id" json:"id"`
	ChannelID        string            `bson:"channel_id" json:"channelId"`
	Channel          *ChannelRef       `bson:"-" json:"channel,omitempty"`
	AboutUS          string            `bson:"about_us" json:"aboutUS"`
	Frequency        string            `bson:"frequency" json:"frequency"`
	FrequencyImg     *MediaDo          `bson:"frequency_img,omitempty" json:"frequencyimg,omitempty"`
	SocialMediaLinks map[string]string `bson:"social_media_links" json:"socialMediaLinks"`
	DownloadApp      DownloadAppDo     `bson:"download_app" json:"downloadApp"`
	MetaTags         string            `bson:"meta_tags" json:"metaTags"`
	MetaDescription  string            `bson:"meta_description" json:"metaDescription"`
	FavIcon          *FavIconDo        `bson:"fav_icon,omitempty" json:"favIcon,omitempty"`
	PhoneNumber      string            `bson:"phone_number" json:"phoneNumber"`
	Email            string            `bson:"email" json:"email"`
	Address          string            `bson:"address" json:"address"`
	CreatedTime      time.Time         `bson:"created_time" json:"createdAt"`
	UpdatedTime      time.Time         `bson:"updated_time" json:"updatedAt"`
}
