package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type InterviewDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error)

	Update(xl *xlog.Logger, interview *model.InterviewDo) error

	Select(xl *xlog.Logger, id string) (*model.InterviewDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.InterviewDo, error)
}

type InterviewDaoService struct {
	mongoColl
}

func NewInterviewDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *InterviewDaoService {
	return &InterviewDaoService{newMongoColl(xl, session, config, dao.CollectionInterview)}
}

func (s *InterviewDaoService) Insert(xl *xlog.Logger, interview *model.InterviewDo) (*model.InterviewDo, error) {
	interview.ID = newID()
	interview.CreatedTime = time.Now()
	interview.UpdatedTime = interview.CreatedTime
	if err := s.insert(xl, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func (s *InterviewDaoService) Update(xl *xlog.Logger, interview *model.InterviewDo) error {
	interview.UpdatedTime = time.Now()
	return s.updateID(xl, interview.ID, interview)
}

func (s *InterviewDaoService) Select(xl *xlog.Logger, id string) (*model.InterviewDo, error) {
	var interview model.InterviewDo
	if err := s.selectID(xl, id, &interview); err != nil {
		return nil, err
	}
	return &interview, nil
}

func (s *InterviewDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *InterviewDaoService) List(xl *xlog.Logger, channelID string) ([]model.InterviewDo, error) {
	result := make([]model.InterviewDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "-date"); err != nil {
		return nil, err
	}
	return result, nil
}
