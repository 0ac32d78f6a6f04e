package form

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/solutions/seagulls/internal/protodef/model"
)

const (
	ErrTrackRequiredMsg = "Please provide channelId, songName, and genre"
	ErrGenreMsg         = "Invalid genre. Allowed genres: Pop, Rock, Hip Hop, Rap, R&B, Country, Jazz, Classical, Electronic, Dance, Reggae, Blues, Folk, Metal, Punk, Alternative, Indie, Latin, World, Gospel, Soul, Funk, Disco, House, Techno, Trance, Dubstep, Ambient, Other"
	ErrTrackStatusMsg   = "Invalid status. Must be one of: Pending, Checked, Approved, Declined"
)

// TrackSubmitForm 投稿表单。Genre 已经过 ParseStringList 展开。
type TrackSubmitForm struct {
	ChannelID string   `form:"channelId" json:"channelId"`
	SongName  string   `form:"songName" json:"songName"`
	Genre     []string `form:"-" json:"genre"`
}

// ValidateRequired 只检查必填项，配额检查在它之后进行。
func (f *TrackSubmitForm) ValidateRequired() error {
	if f.ChannelID == "" || f.SongName == "" || len(f.Genre) == 0 {
		return errors.New(ErrTrackRequiredMsg)
	}
	return nil
}

// ValidateGenres 任何一个未知曲风都会拒绝整个投稿。
func (f *TrackSubmitForm) ValidateGenres() error {
	err := validation.Validate(f.Genre,
		validation.Required,
		validation.Each(stringsIn(model.Genres)),
	)
	if err != nil {
		return errors.New(ErrGenreMsg)
	}
	return nil
}

func (f *TrackSubmitForm) Validate() error {
	if err := f.ValidateRequired(); err != nil {
		return err
	}
	return f.ValidateGenres()
}

type TrackStatusForm struct {
	Status string `form:"status" json:"status"`
}

func (f *TrackStatusForm) Validate() error {
	statuses := make([]string, len(model.TrackStatuses))
	for i, s := range model.TrackStatuses {
		statuses[i] = string(s)
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.Status, validation.Required, stringsIn(statuses).Error(ErrTrackStatusMsg)),
	)
}

// TrackApproveForm 审核通过时指定播出日期和时间。
type TrackApproveForm struct {
	Date string `form:"date" json:"date"`
	Time string `form:"time" json:"time"`
}

func (f *TrackApproveForm) Validate() error {
	if f.Date == "" || f.Time == "" {
		return errors.New("Please provide both date and time")
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.Date, dateRule),
		validation.Field(&f.Time, validation.Match(TimeRegex).Error(ErrTimeFormatMsg)),
	)
}

// ScheduledAt 将日期与时间合并为 loc 时区下的时刻。
func (f *TrackApproveForm) ScheduledAt(loc *time.Location) (day time.Time, at time.Time, err error) {
	d, err := ParseDate(f.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, dd := d.Date()
	day = time.Date(y, m, dd, 0, 0, 0, 0, loc)
	minutes := MinutesOfDay(f.Time)
	at = day.Add(time.Duration(minutes) * time.Minute)
	return day, at, nil
}

// TrackListQuery 管理端列表过滤条件。
type TrackListQuery struct {
	Status    string `form:"status"`
	ChannelID string `form:"channelId"`
	UserID    string `form:"userId"`
}

// ApprovedListQuery 公开的播出计划查询，Date 为某一天。
type ApprovedListQuery struct {
	ChannelID string `form:"channelId"`
	Date      string `form:"date"`
}
