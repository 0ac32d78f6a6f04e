package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao"
)

const (
	msgTrackNotFound = "Track not found"
	// FolderTracks 投稿文件按类型放在 tracks/audio、tracks/video 下。
	FolderTracks = "tracks"
)

// QuotaWeek 返回 now 所在配额周的起止时间。配额周从周五 00:00 开始，为期 7 天。
// 周五偏移 0 天，周六偏移 1 天，周日到周四偏移 weekday+2 天。
func QuotaWeek(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 2) % 7
	y, m, d := now.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 7)
}

// ApproveResult 审核通过后的投稿与对应的播出计划。
type ApproveResult struct {
	Track         *model.UploadTrackView `json:"track"`
	ApprovedTrack *model.ApprovedTrackDo `json:"approvedTrack"`
}

// TrackService 用户投稿、每周配额与审核流程。
type TrackService struct {
	channels dao.ChannelDaoInterface
	tracks   dao.UploadTrackDaoInterface
	approved dao.ApprovedTrackDaoInterface
	accounts dao.AccountDaoInterface
	media    cloud.MediaStore
	mailer   cloud.Mailer
	now      func() time.Time
	xl       *xlog.Logger
}

func NewTrackService(xl *xlog.Logger, channels dao.ChannelDaoInterface, tracks dao.UploadTrackDaoInterface,
	approved dao.ApprovedTrackDaoInterface, accounts dao.AccountDaoInterface,
	media cloud.MediaStore, mailer cloud.Mailer) *TrackService {
	if xl == nil {
		xl = xlog.New("seagulls-track")
	}
	return &TrackService{
		channels: channels,
		tracks:   tracks,
		approved: approved,
		accounts: accounts,
		media:    media,
		mailer:   mailer,
		now:      time.Now,
		xl:       xl,
	}
}

// WithClock 替换时间来源，测试用。
func (s *TrackService) WithClock(now func() time.Time) *TrackService {
	s.now = now
	return s
}

func (s *TrackService) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return s.xl
	}
	return xl
}

// CheckQuota 本周已有投稿时返回带重置时间的配额错误。
func (s *TrackService) CheckQuota(xl *xlog.Logger, userID string) error {
	start, end := QuotaWeek(s.now())
	n, err := s.tracks.CountByUserBetween(s.logger(xl), userID, start, end)
	if err != nil {
		return err
	}
	if n >= 1 {
		return errors.NewQuotaExceeded(end)
	}
	return nil
}

// Submit 依次检查必填项、配额、文件、曲风与频道，全部通过后上传文件并保存投稿。
// file 为 nil 表示没有上传文件；临时文件由调用方删除。
func (s *TrackService) Submit(xl *xlog.Logger, user *model.AccountDo, f *form.TrackSubmitForm, file *cloud.LocalFile) (*model.UploadTrackDo, error) {
	xl = s.logger(xl)
	if err := f.ValidateRequired(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if err := s.CheckQuota(xl, user.ID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errors.InvalidArgument("Song file is required")
	}
	if err := f.ValidateGenres(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if _, err := s.channels.Select(xl, f.ChannelID); err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.New(errors.ServerErrorChannelNotFound, "Invalid channelId. Channel does not exist.")
		}
		return nil, err
	}

	resourceType := file.ResourceType()
	songFile, err := s.media.Upload(xl, file.Path, FolderTracks+"/"+resourceType, resourceType)
	if err != nil {
		return nil, errors.Wrap(errors.ServerErrorMediaUploadFail, "Error uploading song file", err)
	}

	now := s.now()
	start, end := QuotaWeek(now)
	track := &model.UploadTrackDo{
		ChannelID:   f.ChannelID,
		UserID:      user.ID,
		SongName:    f.SongName,
		SongFile:    *songFile,
		Genre:       f.Genre,
		Status:      model.TrackStatusPending,
		QuotaWeek:   start.Format(form.DateLayout),
		CreatedTime: now,
	}
	if _, err := s.tracks.Insert(xl, track); err != nil {
		cloud.BestEffortDestroy(xl, s.media, songFile)
		if err == dao.ErrDuplicate {
			// 并发提交时由唯一索引兜底
			return nil, errors.NewQuotaExceeded(end)
		}
		return nil, err
	}
	xl.Infof("user %s submitted track %s", user.ID, track.ID)
	return track, nil
}

func (s *TrackService) selectTrack(xl *xlog.Logger, trackID string) (*model.UploadTrackDo, error) {
	track, err := s.tracks.Select(xl, trackID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.NotFound(msgTrackNotFound)
		}
		return nil, err
	}
	return track, nil
}

// Get 管理员或投稿人本人可以查看。
func (s *TrackService) Get(xl *xlog.Logger, principal *model.AccountDo, trackID string) (*model.UploadTrackView, error) {
	xl = s.logger(xl)
	track, err := s.selectTrack(xl, trackID)
	if err != nil {
		return nil, err
	}
	if !principal.IsStaff() && !principal.Owns(track.UserID) {
		return nil, errors.Forbidden("Not authorized to view this track")
	}
	view := s.populate(xl, track, true)
	if track.Status == model.TrackStatusApproved {
		approved, err := s.approved.SelectByTrack(xl, track.ID)
		switch {
		case err == nil:
			view.Schedule = approved
		case err != mgo.ErrNotFound:
			xl.Errorf("select schedule of track %s failed, error %v", track.ID, err)
		}
	}
	return view, nil
}

// UpdateStatus 任意状态之间都可以切换，记录操作的管理员。
func (s *TrackService) UpdateStatus(xl *xlog.Logger, admin *model.AccountDo, trackID string, status model.TrackStatus) (*model.UploadTrackView, error) {
	xl = s.logger(xl)
	track, err := s.selectTrack(xl, trackID)
	if err != nil {
		return nil, err
	}
	track.Status = status
	track.AdminID = admin.ID
	if err := s.tracks.Update(xl, track); err != nil {
		return nil, err
	}
	return s.populate(xl, track, true), nil
}

// Approve 播出时间必须晚于当前时间；已经通过的投稿不能重复审核。
// 通知邮件发送失败只记录日志。
func (s *TrackService) Approve(xl *xlog.Logger, admin *model.AccountDo, trackID string, f *form.TrackApproveForm) (*ApproveResult, error) {
	xl = s.logger(xl)
	if f.Date == "" || f.Time == "" {
		return nil, errors.InvalidArgument("Please provide both date and time")
	}
	if !form.TimeRegex.MatchString(f.Time) {
		return nil, errors.InvalidArgument("Time must be in HH:MM format (24-hour)")
	}
	now := s.now()
	day, at, err := f.ScheduledAt(now.Location())
	if err != nil {
		return nil, errors.InvalidArgument("Invalid date format")
	}
	if !at.After(now) {
		return nil, errors.InvalidArgument("Date must be in the future")
	}
	track, err := s.selectTrack(xl, trackID)
	if err != nil {
		return nil, err
	}
	if track.Status == model.TrackStatusApproved {
		return nil, errors.New(errors.ServerErrorAlreadyApproved, "Track is already approved")
	}

	approved := &model.ApprovedTrackDo{
		ChannelID: track.ChannelID,
		TrackID:   track.ID,
		Date:      day,
		Time:      form.Clock(f.Time),
	}
	if _, err := s.approved.Insert(xl, approved); err != nil {
		if err == dao.ErrDuplicate {
			return nil, errors.New(errors.ServerErrorAlreadyApproved, "Track is already approved")
		}
		return nil, err
	}
	track.Status = model.TrackStatusApproved
	track.AdminID = admin.ID
	if err := s.tracks.Update(xl, track); err != nil {
		if rmErr := s.approved.DeleteByTrack(xl, track.ID); rmErr != nil {
			xl.Errorf("failed to roll back approved track %s, error %v", track.ID, rmErr)
		}
		return nil, err
	}

	view := s.populate(xl, track, true)
	s.notifyApproval(xl, view, approved)
	return &ApproveResult{Track: view, ApprovedTrack: approved}, nil
}

func (s *TrackService) notifyApproval(xl *xlog.Logger, view *model.UploadTrackView, approved *model.ApprovedTrackDo) {
	if s.mailer == nil || view.User == nil || view.User.Email == "" {
		xl.Infof("skip approval email for track %s", view.ID)
		return
	}
	mail := &cloud.TrackApprovalMail{
		To:       view.User.Email,
		SongName: view.SongName,
		Date:     approved.Date,
		Time:     approved.Time,
	}
	if view.Channel != nil {
		mail.ChannelName = view.Channel.Name
	}
	if err := s.mailer.SendTrackApproval(xl, mail); err != nil {
		xl.Errorf("error sending approval email for track %s, error %v", view.ID, err)
	}
}

// Delete 投稿人本人或管理员可以删除，同时删除远端文件与播出计划。
func (s *TrackService) Delete(xl *xlog.Logger, principal *model.AccountDo, trackID string) error {
	xl = s.logger(xl)
	track, err := s.selectTrack(xl, trackID)
	if err != nil {
		return err
	}
	if !principal.IsStaff() && !principal.Owns(track.UserID) {
		return errors.Forbidden("Not authorized to delete this track")
	}
	cloud.BestEffortDestroy(xl, s.media, &track.SongFile)
	if err := s.approved.DeleteByTrack(xl, track.ID); err != nil {
		return err
	}
	return s.tracks.Delete(xl, track.ID)
}

// List 管理端列表，按创建时间倒序。
func (s *TrackService) List(xl *xlog.Logger, filter dao.TrackFilter) ([]model.UploadTrackView, error) {
	xl = s.logger(xl)
	tracks, err := s.tracks.List(xl, filter)
	if err != nil {
		return nil, err
	}
	views := make([]model.UploadTrackView, 0, len(tracks))
	for i := range tracks {
		views = append(views, *s.populate(xl, &tracks[i], true))
	}
	return views, nil
}

// ListMine 当前用户自己的投稿。
func (s *TrackService) ListMine(xl *xlog.Logger, user *model.AccountDo) ([]model.UploadTrackView, error) {
	xl = s.logger(xl)
	tracks, err := s.tracks.List(xl, dao.TrackFilter{UserID: user.ID})
	if err != nil {
		return nil, err
	}
	views := make([]model.UploadTrackView, 0, len(tracks))
	for i := range tracks {
		views = append(views, *s.populate(xl, &tracks[i], false))
	}
	return views, nil
}

// ListApproved 公开的播出计划，day 非空时只看当天。
func (s *TrackService) ListApproved(xl *xlog.Logger, channelID string, day *time.Time) ([]model.ApprovedTrackView, error) {
	xl = s.logger(xl)
	approved, err := s.approved.List(xl, channelID, day)
	if err != nil {
		return nil, err
	}
	channels := make(map[string]*model.ChannelRef)
	views := make([]model.ApprovedTrackView, 0, len(approved))
	for _, a := range approved {
		view := model.ApprovedTrackView{ApprovedTrackDo: a}
		view.Channel = s.channelRef(xl, channels, a.ChannelID)
		if track, err := s.tracks.Select(xl, a.TrackID); err == nil {
			view.Track = track
			view.User = s.accountRef(xl, track.UserID)
		}
		views = append(views, view)
	}
	return views, nil
}

// populate 展开频道、审核人，withUser 时也展开投稿人。
func (s *TrackService) populate(xl *xlog.Logger, track *model.UploadTrackDo, withUser bool) *model.UploadTrackView {
	view := &model.UploadTrackView{UploadTrackDo: *track}
	view.Channel = s.channelRef(xl, nil, track.ChannelID)
	if withUser {
		view.User = s.accountRef(xl, track.UserID)
	}
	if track.AdminID != "" {
		if admin := s.accountRef(xl, track.AdminID); admin != nil {
			view.Admin = &model.AccountRef{ID: admin.ID, Name: admin.Name}
		}
	}
	return view
}

func (s *TrackService) channelRef(xl *xlog.Logger, cache map[string]*model.ChannelRef, channelID string) *model.ChannelRef {
	if ref, ok := cache[channelID]; ok {
		return ref
	}
	channel, err := s.channels.Select(xl, channelID)
	if err != nil {
		return nil
	}
	ref := channel.Ref()
	if cache != nil {
		cache[channelID] = ref
	}
	return ref
}

func (s *TrackService) accountRef(xl *xlog.Logger, accountID string) *model.AccountRef {
	account, err := s.accounts.Select(xl, accountID)
	if err != nil {
		return nil
	}
	return account.Ref()
}
