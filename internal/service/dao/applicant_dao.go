package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type ApplicantDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, applicant *model.InterviewApplicantDo) (*model.InterviewApplicantDo, error)

	Update(xl *xlog.Logger, applicant *model.InterviewApplicantDo) error

	Select(xl *xlog.Logger, id string) (*model.InterviewApplicantDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.InterviewApplicantDo, error)
}

type ApplicantDaoService struct {
	mongoColl
}

func NewApplicantDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *ApplicantDaoService {
	return &ApplicantDaoService{newMongoColl(xl, session, config, dao.CollectionInterviewApplicant)}
}

func (s *ApplicantDaoService) Insert(xl *xlog.Logger, applicant *model.InterviewApplicantDo) (*model.InterviewApplicantDo, error) {
	applicant.ID = newID()
	applicant.CreatedTime = time.Now()
	applicant.UpdatedTime = applicant.CreatedTime
	if err := s.insert(xl, applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

func (s *ApplicantDaoService) Update(xl *xlog.Logger, applicant *model.InterviewApplicantDo) error {
	applicant.UpdatedTime = time.Now()
	return s.updateID(xl, applicant.ID, applicant)
}

func (s *ApplicantDaoService) Select(xl *xlog.Logger, id string) (*model.InterviewApplicantDo, error) {
	var applicant model.InterviewApplicantDo
	if err := s.selectID(xl, id, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (s *ApplicantDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *ApplicantDaoService) List(xl *xlog.Logger, channelID string) ([]model.InterviewApplicantDo, error) {
	result := make([]model.InterviewApplicantDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "-created_time"); err != nil {
		return nil, err
	}
	return result, nil
}
