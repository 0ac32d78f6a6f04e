package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type AdvertisementDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, advertisement *model.AdvertisementDo) (*model.AdvertisementDo, error)

	Update(xl *xlog.Logger, advertisement *model.AdvertisementDo) error

	Select(xl *xlog.Logger, id string) (*model.AdvertisementDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.AdvertisementDo, error)
}

type AdvertisementDaoService struct {
	mongoColl
}

func NewAdvertisementDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *AdvertisementDaoService {
	return &AdvertisementDaoService{newMongoColl(xl, session, config, dao.CollectionAdvertisement)}
}

func (s *AdvertisementDaoService) Insert(xl *xlog.Logger, advertisement *model.AdvertisementDo) (*model.AdvertisementDo, error) {
	advertisement.ID = newID()
	advertisement.CreatedTime = time.Now()
	advertisement.UpdatedTime = advertisement.CreatedTime
	if err := s.insert(xl, advertisement); err != nil {
		return nil, err
	}
	return advertisement, nil
}

func (s *AdvertisementDaoService) Update(xl *xlog.Logger, advertisement *model.AdvertisementDo) error {
	advertisement.UpdatedTime = time.Now()
	return s.updateID(xl, advertisement.ID, advertisement)
}

func (s *AdvertisementDaoService) Select(xl *xlog.Logger, id string) (*model.AdvertisementDo, error) {
	var advertisement model.AdvertisementDo
	if err := s.selectID(xl, id, &advertisement); err != nil {
		return nil, err
	}
	return &advertisement, nil
}

func (s *AdvertisementDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *AdvertisementDaoService) List(xl *xlog.Logger, channelID string) ([]model.AdvertisementDo, error) {
	result := make([]model.AdvertisementDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "-created_time"); err != nil {
		return nil, err
	}
	return result, nil
}
