package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type NewsDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, news *model.NewsDo) (*model.NewsDo, error)

	Update(xl *xlog.Logger, news *model.NewsDo) error

	Select(xl *xlog.Logger, id string) (*model.NewsDo, error)

	Delete(xl *xlog.Logger, id string) error

	// List 最新发布的在前。
	List(xl *xlog.Logger, channelID string) ([]model.NewsDo, error)
}

type NewsDaoService struct {
	mongoColl
}

func NewNewsDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *NewsDaoService {
	return &NewsDaoService{newMongoColl(xl, session, config, dao.CollectionNews)}
}

func (s *NewsDaoService) Insert(xl *xlog.Logger, news *model.NewsDo) (*model.NewsDo, error) {
	news.ID = newID()
	news.CreatedTime = time.Now()
	news.UpdatedTime = news.CreatedTime
	if err := s.insert(xl, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsDaoService) Update(xl *xlog.Logger, news *model.NewsDo) error {
	news.UpdatedTime = time.Now()
	return s.updateID(xl, news.ID, news)
}

func (s *NewsDaoService) Select(xl *xlog.Logger, id string) (*model.NewsDo, error) {
	var news model.NewsDo
	if err := s.selectID(xl, id, &news); err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *NewsDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *NewsDaoService) List(xl *xlog.Logger, channelID string) ([]model.NewsDo, error) {
	result := make([]model.NewsDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "-published_at"); err != nil {
		return nil, err
	}
	return result, nil
}
