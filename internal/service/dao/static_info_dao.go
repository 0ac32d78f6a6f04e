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

// StaticInfoDaoInterface 每个频道只有一条静态信息，按频道读写。
type StaticInfoDaoInterface interface {
	ChannelReferrer

	// Insert 频道已有记录时返回 ErrDuplicate。
	Insert(xl *xlog.Logger, info *model.StaticInfoDo) (*model.StaticInfoDo, error)

	Update(xl *xlog.Logger, info *model.StaticInfoDo) error

	SelectByChannel(xl *xlog.Logger, channelID string) (*model.StaticInfoDo, error)

	Delete(xl *xlog.Logger, id string) error

	ListAll(xl *xlog.Logger) ([]model.StaticInfoDo, error)
}

type StaticInfoDaoService struct {
	mongoColl
}

func NewStaticInfoDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) (*StaticInfoDaoService, error) {
	s := &StaticInfoDaoService{newMongoColl(xl, session, config, dao.CollectionStaticInfo)}
	if err := s.ensureIndex(mgo.Index{Key: []string{"channel_id"}, Unique: true}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StaticInfoDaoService) Insert(xl *xlog.Logger, info *model.StaticInfoDo) (*model.StaticInfoDo, error) {
	info.ID = newID()
	info.CreatedTime = time.Now()
	info.UpdatedTime = info.CreatedTime
	if err := s.insert(xl, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *StaticInfoDaoService) Update(xl *xlog.Logger, info *model.StaticInfoDo) error {
	info.UpdatedTime = time.Now()
	return s.updateID(xl, info.ID, info)
}

func (s *StaticInfoDaoService) SelectByChannel(xl *xlog.Logger, channelID string) (*model.StaticInfoDo, error) {
	var info model.StaticInfoDo
	if err := s.selectOne(xl, bson.M{"channel_id": channelID}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *StaticInfoDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *StaticInfoDaoService) ListAll(xl *xlog.Logger) ([]model.StaticInfoDo, error) {
	result := make([]model.StaticInfoDo, 0)
	if err := s.list(xl, bson.M{}, &result, "created_time"); err != nil {
		return nil, err
	}
	return result, nil
}
