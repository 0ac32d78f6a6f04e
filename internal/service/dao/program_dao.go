package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

type ProgramDaoInterface interface {
	ChannelReferrer

	Insert(xl *xlog.Logger, program *model.ProgramDo) (*model.ProgramDo, error)

	Update(xl *xlog.Logger, program *model.ProgramDo) error

	Select(xl *xlog.Logger, id string) (*model.ProgramDo, error)

	Delete(xl *xlog.Logger, id string) error

	List(xl *xlog.Logger, channelID string) ([]model.ProgramDo, error)
}

type ProgramDaoService struct {
	mongoColl
}

func NewProgramDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) *ProgramDaoService {
	return &ProgramDaoService{newMongoColl(xl, session, config, dao.CollectionProgram)}
}

func (s *ProgramDaoService) Insert(xl *xlog.Logger, program *model.ProgramDo) (*model.ProgramDo, error) {
	program.ID = newID()
	program.CreatedTime = time.Now()
	program.UpdatedTime = program.CreatedTime
	if err := s.insert(xl, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ProgramDaoService) Update(xl *xlog.Logger, program *model.ProgramDo) error {
	program.UpdatedTime = time.Now()
	return s.updateID(xl, program.ID, program)
}

func (s *ProgramDaoService) Select(xl *xlog.Logger, id string) (*model.ProgramDo, error) {
	var program model.ProgramDo
	if err := s.selectID(xl, id, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (s *ProgramDaoService) Delete(xl *xlog.Logger, id string) error {
	return s.removeID(xl, id)
}

func (s *ProgramDaoService) List(xl *xlog.Logger, channelID string) ([]model.ProgramDo, error) {
	result := make([]model.ProgramDo, 0)
	if err := s.list(xl, channelQuery(channelID), &result, "day", "start_time"); err != nil {
		return nil, err
	}
	return result, nil
}
