package memdao

import (
	"sort"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/dao"
)

func NewChannelDao() *ChannelDao {
	return &ChannelDao{newStore(func(d *model.ChannelDo) fields {
		return fields{id: &d.ID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})}
}

type ChannelDao struct {
	*store[model.ChannelDo]
}

func (c *ChannelDao) Insert(_ *xlog.Logger, channel *model.ChannelDo) (*model.ChannelDo, error) {
	if err := c.insert(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (c *ChannelDao) Update(_ *xlog.Logger, channel *model.ChannelDo) error {
	return c.update(channel)
}

func (c *ChannelDao) Select(_ *xlog.Logger, channelID string) (*model.ChannelDo, error) {
	return c.get(channelID)
}

func (c *ChannelDao) Delete(_ *xlog.Logger, channelID string) error {
	return c.remove(channelID)
}

func (c *ChannelDao) ListAll(_ *xlog.Logger) ([]model.ChannelDo, error) {
	return c.filter(nil), nil
}

func NewAccountDao() *AccountDao {
	s := newStore(func(d *model.AccountDo) fields {
		return fields{id: &d.ID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
	s.conflict = func(a, b *model.AccountDo) bool {
		return a.ID != b.ID && (a.Email == b.Email || (a.PhoneNumber != "" && a.PhoneNumber == b.PhoneNumber))
	}
	return &AccountDao{s}
}

type AccountDao struct {
	*store[model.AccountDo]
}

func (a *AccountDao) Insert(_ *xlog.Logger, account *model.AccountDo) (*model.AccountDo, error) {
	if err := a.insert(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (a *AccountDao) Update(_ *xlog.Logger, account *model.AccountDo) error {
	return a.update(account)
}

func (a *AccountDao) Select(_ *xlog.Logger, accountID string) (*model.AccountDo, error) {
	return a.get(accountID)
}

func (a *AccountDao) SelectByEmail(_ *xlog.Logger, email string) (*model.AccountDo, error) {
	return a.find(func(d *model.AccountDo) bool { return d.Email == email })
}

func (a *AccountDao) SelectByPhone(_ *xlog.Logger, phoneNumber string) (*model.AccountDo, error) {
	return a.find(func(d *model.AccountDo) bool { return d.PhoneNumber == phoneNumber })
}

func (a *AccountDao) Delete(_ *xlog.Logger, accountID string) error {
	return a.remove(accountID)
}

func (a *AccountDao) ListByRole(_ *xlog.Logger, role model.Role) ([]model.AccountDo, error) {
	return a.filter(func(d *model.AccountDo) bool { return d.Role == role }), nil
}

func (a *AccountDao) CountByRole(xl *xlog.Logger, role model.Role) (int, error) {
	accounts, _ := a.ListByRole(xl, role)
	return len(accounts), nil
}

func (a *AccountDao) ClearExpiredOTP(_ *xlog.Logger, now time.Time) (int, error) {
	expired := a.filter(func(d *model.AccountDo) bool {
		return d.OTP != "" && d.OTPExpiry.Before(now)
	})
	for i := range expired {
		expired[i].OTP = ""
		expired[i].OTPExpiry = time.Time{}
		expired[i].OTPVerified = false
		_ = a.update(&expired[i])
	}
	return len(expired), nil
}

func NewUploadTrackDao() *UploadTrackDao {
	s := newStore(func(d *model.UploadTrackDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
	s.conflict = func(a, b *model.UploadTrackDo) bool {
		return a.UserID == b.UserID && a.QuotaWeek == b.QuotaWeek
	}
	return &UploadTrackDao{store: s}
}

type UploadTrackDao struct {
	*store[model.UploadTrackDo]
	// InsertErr 非空时 Insert 直接返回该错误。
	InsertErr error
}

func (u *UploadTrackDao) Insert(_ *xlog.Logger, track *model.UploadTrackDo) (*model.UploadTrackDo, error) {
	if u.InsertErr != nil {
		return nil, u.InsertErr
	}
	if err := u.insert(track); err != nil {
		return nil, err
	}
	return track, nil
}

func (u *UploadTrackDao) Update(_ *xlog.Logger, track *model.UploadTrackDo) error {
	return u.update(track)
}

func (u *UploadTrackDao) Select(_ *xlog.Logger, trackID string) (*model.UploadTrackDo, error) {
	return u.get(trackID)
}

func (u *UploadTrackDao) Delete(_ *xlog.Logger, trackID string) error {
	return u.remove(trackID)
}

func (u *UploadTrackDao) CountByUserBetween(_ *xlog.Logger, userID string, start, end time.Time) (int, error) {
	return len(u.filter(func(d *model.UploadTrackDo) bool {
		return d.UserID == userID && !d.CreatedTime.Before(start) && d.CreatedTime.Before(end)
	})), nil
}

func (u *UploadTrackDao) List(_ *xlog.Logger, filter dao.TrackFilter) ([]model.UploadTrackDo, error) {
	return u.filter(func(d *model.UploadTrackDo) bool {
		return (filter.Status == "" || d.Status == filter.Status) &&
			(filter.ChannelID == "" || d.ChannelID == filter.ChannelID) &&
			(filter.UserID == "" || d.UserID == filter.UserID)
	}), nil
}

func (u *UploadTrackDao) CountByChannel(_ *xlog.Logger, channelID string) (int, error) {
	return len(u.filter(u.byChannel(channelID))), nil
}

func NewApprovedTrackDao() *ApprovedTrackDao {
	s := newStore(func(d *model.ApprovedTrackDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
	s.conflict = func(a, b *model.ApprovedTrackDo) bool {
		return a.TrackID == b.TrackID
	}
	return &ApprovedTrackDao{s}
}

type ApprovedTrackDao struct {
	*store[model.ApprovedTrackDo]
}

func (a *ApprovedTrackDao) Insert(_ *xlog.Logger, approved *model.ApprovedTrackDo) (*model.ApprovedTrackDo, error) {
	if err := a.insert(approved); err != nil {
		return nil, err
	}
	return approved, nil
}

func (a *ApprovedTrackDao) SelectByTrack(_ *xlog.Logger, trackID string) (*model.ApprovedTrackDo, error) {
	return a.find(func(d *model.ApprovedTrackDo) bool { return d.TrackID == trackID })
}

func (a *ApprovedTrackDao) DeleteByTrack(_ *xlog.Logger, trackID string) error {
	a.removeWhere(func(d *model.ApprovedTrackDo) bool { return d.TrackID == trackID })
	return nil
}

func (a *ApprovedTrackDao) List(_ *xlog.Logger, channelID string, day *time.Time) ([]model.ApprovedTrackDo, error) {
	res := a.filter(func(d *model.ApprovedTrackDo) bool {
		if channelID != "" && d.ChannelID != channelID {
			return false
		}
		return day == nil || (!d.Date.Before(*day) && d.Date.Before(day.AddDate(0, 0, 1)))
	})
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].Time < res[j].Time
	})
	return res, nil
}

func (a *ApprovedTrackDao) CountByChannel(_ *xlog.Logger, channelID string) (int, error) {
	return len(a.filter(a.byChannel(channelID))), nil
}

// Len 当前保存的记录数。
func (a *ApprovedTrackDao) Len() int {
	return len(a.filter(nil))
}

func NewBroadcasterDao() *Content[model.BroadcasterDo] {
	return newContent(func(d *model.BroadcasterDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewProgramDao() *Content[model.ProgramDo] {
	return newContent(func(d *model.ProgramDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewInterviewDao() *Content[model.InterviewDo] {
	return newContent(func(d *model.InterviewDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewNewsDao() *Content[model.NewsDo] {
	return newContent(func(d *model.NewsDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewEventDao() *Content[model.EventDo] {
	return newContent(func(d *model.EventDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewAdvertisementDao() *Content[model.AdvertisementDo] {
	return newContent(func(d *model.AdvertisementDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewApplicantDao() *Content[model.InterviewApplicantDo] {
	return newContent(func(d *model.InterviewApplicantDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
}

func NewCompetitionDao() *CompetitionDao {
	return &CompetitionDao{
		Content: newContent(func(d *model.CompetitionDo) fields {
			return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
		}),
		submissions: newStore(func(d *model.CompetitionUserDo) fields {
			return fields{id: &d.ID, created: &d.CreatedTime, updated: &d.UpdatedTime}
		}),
	}
}

type CompetitionDao struct {
	*Content[model.CompetitionDo]
	submissions *store[model.CompetitionUserDo]
}

func (c *CompetitionDao) InsertSubmission(_ *xlog.Logger, submission *model.CompetitionUserDo) (*model.CompetitionUserDo, error) {
	if err := c.submissions.insert(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (c *CompetitionDao) ListSubmissions(_ *xlog.Logger, competitionID string) ([]model.CompetitionUserDo, error) {
	return c.submissions.filter(func(d *model.CompetitionUserDo) bool { return d.CompetitionID == competitionID }), nil
}

func (c *CompetitionDao) DeleteSubmissions(_ *xlog.Logger, competitionID string) (int, error) {
	return c.submissions.removeWhere(func(d *model.CompetitionUserDo) bool { return d.CompetitionID == competitionID }), nil
}

func NewStaticInfoDao() *StaticInfoDao {
	s := newStore(func(d *model.StaticInfoDo) fields {
		return fields{id: &d.ID, channelID: d.ChannelID, created: &d.CreatedTime, updated: &d.UpdatedTime}
	})
	s.conflict = func(a, b *model.StaticInfoDo) bool {
		return a.ChannelID == b.ChannelID
	}
	return &StaticInfoDao{s}
}

type StaticInfoDao struct {
	*store[model.StaticInfoDo]
}

func (s *StaticInfoDao) Insert(_ *xlog.Logger, info *model.StaticInfoDo) (*model.StaticInfoDo, error) {
	if err := s.insert(info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *StaticInfoDao) Update(_ *xlog.Logger, info *model.StaticInfoDo) error {
	return s.update(info)
}

func (s *StaticInfoDao) SelectByChannel(_ *xlog.Logger, channelID string) (*model.StaticInfoDo, error) {
	return s.find(func(d *model.StaticInfoDo) bool { return d.ChannelID == channelID })
}

func (s *StaticInfoDao) Delete(_ *xlog.Logger, id string) error {
	return s.remove(id)
}

func (s *StaticInfoDao) ListAll(_ *xlog.Logger) ([]model.StaticInfoDo, error) {
	return s.filter(nil), nil
}

func (s *StaticInfoDao) CountByChannel(_ *xlog.Logger, channelID string) (int, error) {
	return len(s.filter(s.byChannel(channelID))), nil
}

var (
	_ dao.ChannelDaoInterface       = (*ChannelDao)(nil)
	_ dao.AccountDaoInterface       = (*AccountDao)(nil)
	_ dao.UploadTrackDaoInterface   = (*UploadTrackDao)(nil)
	_ dao.ApprovedTrackDaoInterface = (*ApprovedTrackDao)(nil)
	_ dao.BroadcasterDaoInterface   = (*Content[model.BroadcasterDo])(nil)
	_ dao.ProgramDaoInterface       = (*Content[model.ProgramDo])(nil)
	_ dao.InterviewDaoInterface     = (*Content[model.InterviewDo])(nil)
	_ dao.NewsDaoInterface          = (*Content[model.NewsDo])(nil)
	_ dao.EventDaoInterface         = (*Content[model.EventDo])(nil)
	_ dao.AdvertisementDaoInterface = (*Content[model.AdvertisementDo])(nil)
	_ dao.ApplicantDaoInterface     = (*Content[model.InterviewApplicantDo])(nil)
	_ dao.CompetitionDaoInterface   = (*CompetitionDao)(nil)
	_ dao.StaticInfoDaoInterface    = (*StaticInfoDao)(nil)
)
