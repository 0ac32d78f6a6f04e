package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao"
)

const (
	FolderBroadcasters = "broadcasters"
	FolderPrograms     = "programs"
	FolderInterviews   = "interviews"
	FolderNews         = "news"
	FolderEvents       = "events"

	msgUploadImage = "Error uploading image"
)

// ContentDaos 频道内容类的各个 DAO。
type ContentDaos struct {
	Broadcasters   dao.BroadcasterDaoInterface
	Programs       dao.ProgramDaoInterface
	Interviews     dao.InterviewDaoInterface
	News           dao.NewsDaoInterface
	Events         dao.EventDaoInterface
	Advertisements dao.AdvertisementDaoInterface
	Applicants     dao.ApplicantDaoInterface
	Competitions   dao.CompetitionDaoInterface
}

// ContentService 频道内容的增删改查：校验、确认频道存在、上传媒体、保存，返回时展开频道信息。
type ContentService struct {
	ContentDaos
	channels    *ChannelService
	accounts    dao.AccountDaoInterface
	media       cloud.MediaStore
	phoneRegion string
	now         func() time.Time
	xl          *xlog.Logger
}

func NewContentService(xl *xlog.Logger, daos ContentDaos, channels *ChannelService, accounts dao.AccountDaoInterface,
	media cloud.MediaStore, phoneRegion string) *ContentService {
	if xl == nil {
		xl = xlog.New("seagulls-content")
	}
	return &ContentService{
		ContentDaos: daos,
		channels:    channels,
		accounts:    accounts,
		media:       media,
		phoneRegion: phoneRegion,
		now:         time.Now,
		xl:          xl,
	}
}

// WithClock 替换时间来源，测试用。
func (s *ContentService) WithClock(now func() time.Time) *ContentService {
	s.now = now
	return s
}

// Referrers 所有引用频道的内容集合，删除频道前检查。
func (d ContentDaos) Referrers() map[string]dao.ChannelReferrer {
	return map[string]dao.ChannelReferrer{
		"broadcasters":         d.Broadcasters,
		"programs":             d.Programs,
		"interviews":           d.Interviews,
		"news":                 d.News,
		"events":               d.Events,
		"advertisements":       d.Advertisements,
		"interview applicants": d.Applicants,
		"competitions":         d.Competitions,
	}
}

func (s *ContentService) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return s.xl
	}
	return xl
}

// requireChannel 频道不存在时返回 404。
func (s *ContentService) requireChannel(xl *xlog.Logger, channelID string) error {
	_, err := s.channels.Get(xl, channelID)
	return err
}

// notFound 将 mgo.ErrNotFound 转为带提示的 404。
func notFound(err error, msg string) error {
	if err == mgo.ErrNotFound {
		return errors.NotFound(msg)
	}
	return err
}

func (s *ContentService) normalizePhone(phone string) (string, error) {
	normalized, err := cloud.NormalizePhone(phone, s.phoneRegion)
	if err != nil {
		return "", errors.InvalidArgument(err.Error())
	}
	return normalized, nil
}

// channelRefs 列表中同一频道只查询一次。
type channelRefs struct {
	s     *ContentService
	xl    *xlog.Logger
	cache map[string]*model.ChannelRef
}

func (s *ContentService) newChannelRefs(xl *xlog.Logger) *channelRefs {
	return &channelRefs{s: s, xl: xl, cache: make(map[string]*model.ChannelRef)}
}

func (c *channelRefs) get(channelID string) *model.ChannelRef {
	if ref, ok := c.cache[channelID]; ok {
		return ref
	}
	ref := c.s.channels.Ref(c.xl, channelID)
	c.cache[channelID] = ref
	return ref
}
