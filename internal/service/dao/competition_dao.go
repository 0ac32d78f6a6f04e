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

type CompetitionDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, competition *model.CompetitionDo) (*model.CompetitionDo, error)

	Update(xl *xlog.Logger, competition *model.CompetitionDo) error

	Select(xl *xlog.Logger, id string) (*model.CompetitionDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.CompetitionDo, error)

	InsertSubmission(xl *xlog.Logger, submission *model.CompetitionUserDo) (*model.CompetitionUserDo, error)

	ListSubmissions(xl *xlog.Logger, competitionID string) ([]model.CompetitionUserDo, error)

	DeleteSubmissions(xl *xlog.Logger, competitionID string) (int, error)
}

// CompetitionDaoService 比赛与用户提交的答案放在两张表里。
type CompetitionDaoService struct {
	mongoColl
	submissions mongoColl
}

func NewCompetitionDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) (*CompetitionDaoService, error) {
	s := &CompetitionDaoService{
		mongoColl:   newMongoColl(xl, session, config, dao.CollectionCompetition),
		submissions: newMongoColl(xl, session, config, dao.CollectionCompetitionUser),
	}
	if err := s.submissions.ensureIndex(mgo.Index{Key: []string{"competition_id"}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CompetitionDaoService) Insert(xl *xlog.Logger, competition *model.CompetitionDo) (*model.CompetitionDo, error) {
	competition.ID = newID()
	competition.CreatedTime = time.Now()
	competition.UpdatedTime = competition.CreatedTime
	if err := s.insert(xl, competition); err != nil {
		return nil, err
	}
	return competition, nil
}

func (s *CompetitionDaoService) Update(xl *xlog.Logger, competition *model.CompetitionDo) error {
	competition.UpdatedTime = time.Now()
	return s.updateID(xl, competition.ID, competition)
}

func (s *CompetitionDaoService) Select(xl *xlog.Logger, id string) (*model.CompetitionDo, error) {
	var competition model.CompetitionDo
	if err := s.selectID(xl, id, &competition); err != nil {
		return nil, err
	}
	return &competition, nil
}

func (s *CompetitionDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *CompetitionDaoService) List(xl *xlog.Logger, channelID string) ([]model.CompetitionDo, error) {
	result := make([]model.CompetitionDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "-created_time"); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CompetitionDaoService) InsertSubmission(xl *xlog.Logger, submission *model.CompetitionUserDo) (*model.CompetitionUserDo, error) {
	submission.ID = newID()
	submission.CreatedTime = time.Now()
	submission.UpdatedTime = submission.CreatedTime
	if err := s.submissions.insert(xl, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *CompetitionDaoService) ListSubmissions(xl *xlog.Logger, competitionID string) ([]model.CompetitionUserDo, error) {
	result := make([]model.CompetitionUserDo, 0)
	if err := s.submissions.list(xl, bson.M{"competition_id": competitionID}, &result, "created_time"); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CompetitionDaoService) DeleteSubmissions(xl *xlog.Logger, competitionID string) (int, error) {
	return s.submissions.removeAll(xl, bson.M{"competition_id": competitionID})
}
