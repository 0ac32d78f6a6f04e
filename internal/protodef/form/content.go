package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// 内容类表单都带 Partial 标记：为 true 时只校验出现的字段，用于 PUT。

type ChannelForm struct {
	Name string `form:"name" json:"name"`
}

func (f *ChannelForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	return validation.ValidateStruct(f,
		validation.Field(&f.Name,
			validation.Required.Error("Channel name is required"),
			validation.Length(0, 100).Error("Channel name cannot exceed 100 characters")),
	)
}

type BroadcasterForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Name        string `form:"name" json:"name"`
	SocialLinks string `form:"socialLinks" json:"socialLinks"`
	Description string `form:"description" json:"description"`
	Partial     bool   `form:"-" json:"-"`
}

func (f *BroadcasterForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	f.Name = utils.TrimQuotes(f.Name)
	return validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(!f.Partial, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.Name,
			validation.When(!f.Partial, validation.Required.Error("Name is required")),
			validation.Length(0, 50).Error("Name cannot exceed 50 characters")),
		validation.Field(&f.Description, validation.Length(0, 1000).Error("Description cannot exceed 1000 characters")),
	)
}

type ProgramForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Day         string `form:"day" json:"day"`
	StartTime   string `form:"startTime" json:"startTime"`
	EndTime     string `form:"endTime" json:"endTime"`
	Status      string `form:"status" json:"status"`
	Partial     bool   `form:"-" json:"-"`
}

func (f *ProgramForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	f.Day = utils.TrimQuotes(f.Day)
	f.Status = utils.TrimQuotes(f.Status)
	f.StartTime = utils.TrimQuotes(f.StartTime)
	f.EndTime = utils.TrimQuotes(f.EndTime)
	required := !f.Partial
	err := validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.Title, validation.When(required, validation.Required.Error("Title is required"))),
		validation.Field(&f.Description,
			validation.When(required, validation.Required.Error("Description is required")),
			validation.Length(0, 100).Error("Description cannot exceed 100 characters")),
		validation.Field(&f.Day,
			validation.When(required, validation.Required.Error("Day is required")),
			stringsIn(model.WeekDays).Error("Day must be a valid day of the week")),
		validation.Field(&f.StartTime,
			validation.When(required, validation.Required.Error("Start time is required")),
			validation.Match(TimeRegex).Error(ErrTimeFormatMsg)),
		validation.Field(&f.EndTime,
			validation.When(required, validation.Required.Error("End time is required")),
			validation.Match(TimeRegex).Error(ErrTimeFormatMsg)),
		validation.Field(&f.Status, stringsIn([]string{model.ProgramStatusActive, model.ProgramStatusInactive}).Error("Status must be either active or inactive")),
	)
	if err != nil {
		return err
	}
	if f.StartTime != "" && f.EndTime != "" {
		return CheckTimeRange(f.StartTime, f.EndTime)
	}
	return nil
}

// CheckTimeRange 结束时间必须晚于开始时间。
func CheckTimeRange(start, end string) error {
	if MinutesOfDay(end) <= MinutesOfDay(start) {
		return errors.New("End time must be after start time")
	}
	return nil
}

type InterviewForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	ProgramID   string `form:"programId" json:"programId"`
	Title       string `form:"title" json:"title"`
	Date        string `form:"date" json:"date"`
	Description string `form:"description" json:"description"`
	Partial     bool   `form:"-" json:"-"`
}

func (f *InterviewForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	f.ProgramID = utils.TrimQuotes(f.ProgramID)
	required := !f.Partial
	return validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.ProgramID, validation.When(required, validation.Required.Error("Program ID is required"))),
		validation.Field(&f.Title, validation.When(required, validation.Required.Error("Title is required"))),
		validation.Field(&f.Date, validation.When(required, validation.Required.Error("Date is required")), dateRule),
		validation.Field(&f.Description, validation.When(required, validation.Required.Error("Description is required"))),
	)
}

type NewsForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Content     string `form:"content" json:"content"`
	PublishedAt string `form:"publishedAt" json:"publishedAt"`
	Partial     bool   `form:"-" json:"-"`
}

func (f *NewsForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	required := !f.Partial
	return validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.Title,
			validation.When(required, validation.Required.Error("Title is required")),
			validation.Length(0, 150).Error("Title cannot exceed 150 characters")),
		validation.Field(&f.Description,
			validation.When(required, validation.Required.Error("Description is required")),
			validation.Length(0, 300).Error("Description cannot exceed 300 characters")),
		validation.Field(&f.Content, validation.When(required, validation.Required.Error("Content is required"))),
		validation.Field(&f.PublishedAt, dateRule),
	)
}

type EventForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Type        string `form:"type" json:"type"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	StartDate   string `form:"startDate" json:"startDate"`
	EndDate     string `form:"endDate" json:"endDate"`
	Address     string `form:"address" json:"address"`
	Partial     bool   `form:"-" json:"-"`
}

func (f *EventForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	f.Type = utils.TrimQuotes(f.Type)
	required := !f.Partial
	err := validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.Type,
			validation.When(required, validation.Required.Error("Type is required")),
			stringsIn([]string{model.EventTypeEvent, model.EventTypePartnership}).Error("Type must be either event or partnership")),
		validation.Field(&f.Title,
			validation.When(required, validation.Required.Error("Title is required")),
			validation.Length(0, 200).Error("Title cannot exceed 200 characters")),
		validation.Field(&f.Description,
			validation.When(required, validation.Required.Error("Description is required")),
			validation.Length(0, 1000).Error("Description cannot exceed 1000 characters")),
		validation.Field(&f.StartDate, validation.When(required, validation.Required.Error("Start date is required")), dateRule),
		validation.Field(&f.EndDate, validation.When(required, validation.Required.Error("End date is required")), dateRule),
		validation.Field(&f.Address,
			validation.When(required, validation.Required.Error("Address is required")),
			validation.Length(0, 300).Error("Address cannot exceed 300 characters")),
	)
	if err != nil {
		return err
	}
	if f.StartDate != "" && f.EndDate != "" {
		start, _ := ParseDate(f.StartDate, time.Local)
		end, _ := ParseDate(f.EndDate, time.Local)
		if end.Before(start) {
			return errors.New("End date must be after start date")
		}
	}
	return nil
}

type AdvertisementForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Message     string `form:"message" json:"message"`
}

func (f *AdvertisementForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.Required.Error(ErrChannelIDRequired.Error())),
		validation.Field(&f.Name,
			validation.Required.Error("Name is required"),
			validation.Length(0, 100).Error("Name cannot exceed 100 characters")),
		validation.Field(&f.Email,
			validation.Required.Error("Email is required"),
			validation.Length(0, 100).Error("Email cannot exceed 100 characters"),
			validation.Match(EmailRegex).Error(ErrEmailMsg)),
		validation.Field(&f.PhoneNumber, validation.Required.Error("Phone number is required")),
		validation.Field(&f.Message,
			validation.Required.Error("Message is required"),
			validation.Length(0, 500).Error("Message cannot exceed 500 characters")),
	)
}

type ApplicantForm struct {
	ChannelID   string `form:"channelId" json:"channelId"`
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Topic       string `form:"topic" json:"topic"`
	SocialLinks string `form:"socialLinks" json:"socialLinks"`
	Job         string `form:"job" json:"job"`
}

func (f *ApplicantForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.Required.Error(ErrChannelIDRequired.Error())),
		validation.Field(&f.Name,
			validation.Required.Error("Name is required"),
			validation.Length(0, 50).Error("Name cannot exceed 50 characters")),
		validation.Field(&f.Email,
			validation.Required.Error("Email is required"),
			validation.Match(EmailRegex).Error(ErrEmailMsg)),
		validation.Field(&f.PhoneNumber, validation.Required.Error("Phone number is required")),
		validation.Field(&f.Topic,
			validation.Required.Error("Topic is required"),
			validation.Length(0, 100).Error("Topic cannot exceed 100 characters")),
		validation.Field(&f.Job,
			validation.Required.Error("Job is required"),
			validation.Length(0, 100).Error("Job cannot exceed 100 characters")),
	)
}

type ApplicantStatusForm struct {
	Status string `form:"status" json:"status"`
}

func (f *ApplicantStatusForm) Validate() error {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	return validation.ValidateStruct(f,
		validation.Field(&f.Status,
			validation.Required.Error("Status is required"),
			stringsIn([]string{model.ApplicantStatusPending, model.ApplicantStatusApproved, model.ApplicantStatusRejected}).
				Error("Status must be pending, approved or rejected")),
	)
}

type CompetitionForm struct {
	ChannelID   string    `form:"channelId" json:"channelId"`
	Title       string    `form:"title" json:"title"`
	Description string    `form:"description" json:"description"`
	StartDate   string    `form:"startDate" json:"startDate"`
	EndDate     string    `form:"endDate" json:"endDate"`
	Partial     bool      `form:"-" json:"-"`
	Now         time.Time `form:"-" json:"-"`
}

func (f *CompetitionForm) Validate() error {
	required := !f.Partial
	err := validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.Title,
			validation.When(required, validation.Required.Error("Title is required")),
			validation.Length(0, 100).Error("Title cannot exceed 100 characters")),
		validation.Field(&f.Description, validation.When(required, validation.Required.Error("Description is required"))),
		validation.Field(&f.StartDate, validation.When(required, validation.Required.Error("Start date is required")), dateRule),
		validation.Field(&f.EndDate, validation.When(required, validation.Required.Error("End date is required")), dateRule),
	)
	if err != nil {
		return err
	}
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	start, end, err := f.Dates(now.Location())
	if err != nil {
		return err
	}
	if f.StartDate != "" && start.Before(utils.StartOfDay(now)) {
		return errors.New("Start date cannot be in the past")
	}
	if f.StartDate != "" && f.EndDate != "" && !end.After(start) {
		return errors.New("End date must be after start date")
	}
	return nil
}

// Dates 解析提交的起止日期，未提交的返回零值。
func (f *CompetitionForm) Dates(loc *time.Location) (start, end time.Time, err error) {
	if f.StartDate != "" {
		if start, err = ParseDate(f.StartDate, loc); err != nil {
			return start, end, fmt.Errorf("invalid start date %q", f.StartDate)
		}
	}
	if f.EndDate != "" {
		if end, err = ParseDate(f.EndDate, loc); err != nil {
			return start, end, fmt.Errorf("invalid end date %q", f.EndDate)
		}
	}
	return start, end, nil
}

type SubmissionForm struct {
	Answer string `form:"answer" json:"answer"`
}

func (f *SubmissionForm) Validate() error {
	f.Answer = strings.TrimSpace(f.Answer)
	return validation.ValidateStruct(f,
		validation.Field(&f.Answer, validation.Required.Error("Answer is required")),
	)
}
