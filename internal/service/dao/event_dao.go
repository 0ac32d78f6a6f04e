package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type EventDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, event *model.EventDo) (*model.EventDo, error)

	Update(xl *xlog.Logger, event *model.EventDo) error

	Select(xl *xlog.Logger, id string) (*model.EventDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.EventDo, error)
}

type EventDaoService struct {
	mongoColl
}

func NewEventDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *EventDaoService {
	return &EventDaoService{newMongoColl(xl, session, config, dao.CollectionEvent)}
}

func (s *EventDaoService) Insert(xl *xlog.Logger, event *model.EventDo) (*model.EventDo, error) {
	event.ID = newID()
	event.CreatedTime = time.Now()
	event.UpdatedTime = event.CreatedTime
	if err := s.insert(xl, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventDaoService) Update(xl *xlog.Logger, event *model.EventDo) error {
	event.UpdatedTime = time.Now()
	return s.updateID(xl, event.ID, event)
}

func (s *EventDaoService) Select(xl *xlog.Logger, id string) (*model.EventDo, error) {
	var event model.EventDo
	if err := s.selectID(xl, id, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *EventDaoService) List(xl *xlog.Logger, channelID string) ([]model.EventDo, error) {
	result := make([]model.EventDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "start_date"); err != nil {
		return nil, err
	}
	return result, nil
}
