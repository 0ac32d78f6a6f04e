package model

import "time"

type TrackStatus string

const (
	TrackStatusPending  TrackStatus = "Pending"
	TrackStatusChecked  TrackStatus = "Checked"
	TrackStatusApproved TrackStatus = "Approved"
	TrackStatusDeclined TrackStatus = "Declined"
)

var TrackStatuses = []TrackStatus{TrackStatusPending, TrackStatusChecked, TrackStatusApproved, TrackStatusDeclined}

// Genres 允许的曲风。
var Genres = []string{
	"Pop", "Rock", "Hip Hop", "Rap", "R&B", "Country", "Jazz", "Classical",
	"Electronic", "Dance", "Reggae", "Blues", "Folk", "Metal", "Punk",
	"Alternative", "Indie", "Latin", "World", "Gospel", "Soul", "Funk",
	"Disco", "House", "Techno", "Trance", "Dubstep", "Ambient", "Other",
}

// UploadTrackDo 用户投稿的歌曲。每个用户每个配额周只能有一条。
type UploadTrackDo struct {
	ID          string      `bson:"_id" json:"id"`
	ChannelID   string      `bson:"channel_id" json:"channelId"`
	UserID      string      `bson:"user_id" json:"userId"`
	SongName    string      `bson:"song_name" json:"songName"`
	SongFile    MediaDo     `bson:"song_file" json:"songFile"`
	Genre       []string    `bson:"genre" json:"genre"`
	Status      TrackStatus `bson:"status" json:"status"`
	AdminID     string      `bson:"admin_id,omitempty" json:"adminId,omitempty"`
	// QuotaWeek 所属配额周的起始日期 yyyy-mm-dd，与 user_id 组成唯一索引。
	QuotaWeek   string      `bson:"quota_week" json:"-"`
	CreatedTime time.Time   `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time   `bson:"updated_time" json:"updatedAt"`
}

// UploadTrackView 列表展示用，展开频道、投稿人与审核人。
type UploadTrackView struct {
	UploadTrackDo
	Channel *ChannelRef `json:"channel,omitempty"`
	User    *AccountRef `json:"user,omitempty"`
	Admin   *AccountRef `json:"admin,omitempty"`
	// Schedule 仅在查看单条已通过的投稿时返回。
	Schedule *ApprovedTrackDo `json:"schedule,omitempty"`
}

// ApprovedTrackDo 审核通过后排入播出计划的歌曲。
type ApprovedTrackDo struct {
	ID          string    `bson:"_id" json:"id"`
	ChannelID   string    `bson:"channel_id" json:"channelId"`
	TrackID     string    `bson:"track_id" json:"trackId"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"`
	CreatedTime time.Time `bson:"created_time" json:"createdAt"`
	UpdatedTime time.Time `bson:"updated_time" json:"updatedAt"`
}

type ApprovedTrackView struct {
	ApprovedTrackDo
	Channel *ChannelRef    `json:"channel,omitempty"`
	Track   *UploadTrackDo `json:"track,omitempty"`
	User    *AccountRef    `json:"user,omitempty"`
}
