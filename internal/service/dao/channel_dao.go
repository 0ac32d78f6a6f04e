package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type ChannelDaoInterface interface {
	Insert(xl *xlog.Logger, channel *model.ChannelDo) (*model.ChannelDo, error)

	Update(xl *xlog.Logger, channel *model.ChannelDo) error

	Select(xl *xlog.Logger, channelID string) (*model.ChannelDo, error)

	Delete(xl *xlog.Logger, channelID string) error

	ListAll(xl *xlog.Logger) ([]model.ChannelDo, error)
}

type ChannelDaoService struct {
	mongoColl
}

func NewChannelDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *ChannelDaoService {
	return &ChannelDaoService{newMongoColl(xl, session, config, dao.CollectionChannel)}
}

func (s *ChannelDaoService) Insert(xl *xlog.Logger, channel *model.ChannelDo) (*model.ChannelDo, error) {
	channel.ID = newID()
	channel.CreatedTime = time.Now()
	channel.UpdatedTime = channel.CreatedTime
	if err := s.insert(xl, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *ChannelDaoService) Update(xl *xlog.Logger, channel *model.ChannelDo) error {
	channel.UpdatedTime = time.Now()
	return s.updateID(xl, channel.ID, channel)
}

func (s *ChannelDaoService) Select(xl *xlog.Logger, channelID string) (*model.ChannelDo, error) {
	var channel model.ChannelDo
	if err := s.selectID(xl, channelID, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (s *ChannelDaoService) Delete(xl *xlog.Logger, channelID string) error {
	return s.removeID(xl, channelID)
}

func (s *ChannelDaoService) ListAll(xl *xlog.Logger) ([]model.ChannelDo, error) {
	channels := make([]model.ChannelDo, 0)
	if err := s.list(xl, bson.M{}, &channels, "name"); err != nil {
		return nil, err
	}
	return channels, nil
}
