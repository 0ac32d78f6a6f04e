package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type BroadcasterDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, broadcaster *model.BroadcasterDo) (*model.BroadcasterDo, error)

	Update(xl *xlog.Logger, broadcaster *model.BroadcasterDo) error

	Select(xl *xlog.Logger, id string) (*model.BroadcasterDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.BroadcasterDo, error)
}

type BroadcasterDaoService struct {
	mongoColl
}

func NewBroadcasterDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *BroadcasterDaoService {
	return &BroadcasterDaoService{newMongoColl(xl, session, config, dao.CollectionBroadcaster)}
}

func (s *BroadcasterDaoService) Insert(xl *xlog.Logger, broadcaster *model.BroadcasterDo) (*model.BroadcasterDo, error) {
	broadcaster.ID = newID()
	broadcaster.CreatedTime = time.Now()
	broadcaster.UpdatedTime = broadcaster.CreatedTime
	if err := s.insert(xl, broadcaster); err != nil {
		return nil, err
	}
	return broadcaster, nil
}

func (s *BroadcasterDaoService) Update(xl *xlog.Logger, broadcaster *model.BroadcasterDo) error {
	broadcaster.UpdatedTime = time.Now()
	return s.updateID(xl, broadcaster.ID, broadcaster)
}

func (s *BroadcasterDaoService) Select(xl *xlog.Logger, id string) (*model.BroadcasterDo, error) {
	var broadcaster model.BroadcasterDo
	if err := s.selectID(xl, id, &broadcaster); err != nil {
		return nil, err
	}
	return &broadcaster, nil
}

func (s *BroadcasterDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *BroadcasterDaoService) List(xl *xlog.Logger, channelID string) ([]model.BroadcasterDo, error) {
	result := make([]model.BroadcasterDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "name"); err != nil {
		return nil, err
	}
	return result, nil
}
