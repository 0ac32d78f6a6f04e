package db

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/dao"
)

const msgChannelNotFound = "Channel not found"

// ChannelService 频道的增删改查。频道下还有内容时不允许删除。
type ChannelService struct {
	channels dao.ChannelDaoInterface
	// referrers 引用频道的各个集合，key 为集合名，用于提示。
	referrers map[string]dao.ChannelReferrer
	xl        *xlog.Logger
}

func NewChannelService(xl *xlog.Logger, channels dao.ChannelDaoInterface, referrers map[string]dao.ChannelReferrer) *ChannelService {
	if xl == nil {
		xl = xlog.New("seagulls-channel")
	}
	return &ChannelService{
		channels:  channels,
		referrers: referrers,
		xl:        xl,
	}
}

func (s *ChannelService) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return s.xl
	}
	return xl
}

func (s *ChannelService) Create(xl *xlog.Logger, name string) (*model.ChannelDo, error) {
	return s.channels.Insert(s.logger(xl), &model.ChannelDo{Name: name})
}

func (s *ChannelService) List(xl *xlog.Logger) ([]model.ChannelDo, error) {
	return s.channels.ListAll(s.logger(xl))
}

// Get 频道不存在时返回 404。
func (s *ChannelService) Get(xl *xlog.Logger, channelID string) (*model.ChannelDo, error) {
	channel, err := s.channels.Select(s.logger(xl), channelID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.NotFound(msgChannelNotFound)
		}
		return nil, err
	}
	return channel, nil
}

// CheckExists 用于提交表单时校验 channelId，频道不存在时返回 400。
func (s *ChannelService) CheckExists(xl *xlog.Logger, channelID string) error {
	_, err := s.channels.Select(s.logger(xl), channelID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return errors.New(errors.ServerErrorChannelNotFound, "Invalid channelId. Channel does not exist.")
		}
		return err
	}
	return nil
}

// Ref 展开频道名称，频道已不存在时返回 nil。
func (s *ChannelService) Ref(xl *xlog.Logger, channelID string) *model.ChannelRef {
	channel, err := s.channels.Select(s.logger(xl), channelID)
	if err != nil {
		return nil
	}
	return channel.Ref()
}

func (s *ChannelService) Rename(xl *xlog.Logger, channelID string, name string) (*model.ChannelDo, error) {
	xl = s.logger(xl)
	channel, err := s.Get(xl, channelID)
	if err != nil {
		return nil, err
	}
	channel.Name = name
	if err := s.channels.Update(xl, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// Delete 仍有内容引用该频道时返回 409。
func (s *ChannelService) Delete(xl *xlog.Logger, channelID string) error {
	xl = s.logger(xl)
	channel, err := s.Get(xl, channelID)
	if err != nil {
		return err
	}
	for name, referrer := range s.referrers {
		n, err := referrer.CountByChannel(xl, channel.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			xl.Infof("channel %s still referenced by %d %s", channel.ID, n, name)
			return errors.Conflict("Cannot delete channel while it still has " + name + ". Delete them first.")
		}
	}
	return s.channels.Delete(xl, channel.ID)
}
