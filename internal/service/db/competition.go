package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
)

const msgCompetitionNotFound = "Competition not found"

// CreateCompetition 开始日期不能早于今天，结束日期必须晚于开始日期。
func (s *ContentService) CreateCompetition(xl *xlog.Logger, f *form.CompetitionForm) (*model.CompetitionDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	f.Now = s.now()
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if err := s.requireChannel(xl, f.ChannelID); err != nil {
		return nil, err
	}
	start, end, err := f.Dates(f.Now.Location())
	if err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	competition := &model.CompetitionDo{
		ChannelID:   f.ChannelID,
		Title:       f.Title,
		Description: f.Description,
		StartDate:   start,
		EndDate:     end,
	}
	if _, err := s.Competitions.Insert(xl, competition); err != nil {
		return nil, err
	}
	competition.Channel = s.channels.Ref(xl, competition.ChannelID)
	return competition, nil
}

func (s *ContentService) GetCompetition(xl *xlog.Logger, id string) (*model.CompetitionDo, error) {
	xl = s.logger(xl)
	competition, err := s.Competitions.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgCompetitionNotFound)
	}
	competition.Channel = s.channels.Ref(xl, competition.ChannelID)
	return competition, nil
}

// GetCompetitionWithSubmissions 展开每条答案的提交人。
func (s *ContentService) GetCompetitionWithSubmissions(xl *xlog.Logger, id string) (*model.CompetitionView, error) {
	xl = s.logger(xl)
	competition, err := s.GetCompetition(xl, id)
	if err != nil {
		return nil, err
	}
	return s.competitionView(xl, competition)
}

func (s *ContentService) competitionView(xl *xlog.Logger, competition *model.CompetitionDo) (*model.CompetitionView, error) {
	submissions, err := s.Competitions.ListSubmissions(xl, competition.ID)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		if account, err := s.accounts.Select(xl, submissions[i].UserID); err == nil {
			submissions[i].User = account.Ref()
		}
	}
	return &model.CompetitionView{CompetitionDo: *competition, Submissions: submissions}, nil
}

// ListCompetitions 管理端列表，带上各自的答案。
func (s *ContentService) ListCompetitions(xl *xlog.Logger, channelID string) ([]model.CompetitionView, error) {
	xl = s.logger(xl)
	competitions, err := s.Competitions.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	views := make([]model.CompetitionView, 0, len(competitions))
	for i := range competitions {
		competitions[i].Channel = refs.get(competitions[i].ChannelID)
		view, err := s.competitionView(xl, &competitions[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *ContentService) UpdateCompetition(xl *xlog.Logger, id string, f *form.CompetitionForm) (*model.CompetitionDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	f.Now = s.now()
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	competition, err := s.Competitions.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgCompetitionNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != competition.ChannelID {
		if err := s.requireChannel(xl, f.ChannelID); err != nil {
			return nil, err
		}
		competition.ChannelID = f.ChannelID
	}
	if f.Title != "" {
		competition.Title = f.Title
	}
	if f.Description != "" {
		competition.Description = f.Description
	}
	start, end, err := f.Dates(f.Now.Location())
	if err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if f.StartDate != "" {
		competition.StartDate = start
	}
	if f.EndDate != "" {
		competition.EndDate = end
	}
	if !competition.EndDate.After(competition.StartDate) {
		return nil, errors.InvalidArgument("End date must be after start date")
	}
	if err := s.Competitions.Update(xl, competition); err != nil {
		return nil, err
	}
	competition.Channel = s.channels.Ref(xl, competition.ChannelID)
	return competition, nil
}

// DeleteCompetition 同时删除所有答案。
func (s *ContentService) DeleteCompetition(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	competition, err := s.Competitions.Select(xl, id)
	if err != nil {
		return notFound(err, msgCompetitionNotFound)
	}
	n, err := s.Competitions.DeleteSubmissions(xl, competition.ID)
	if err != nil {
		return err
	}
	xl.Infof("deleted %d submissions of competition %s", n, competition.ID)
	return s.Competitions.Delete(xl, competition.ID)
}

// SubmitAnswer 普通用户提交答案，比赛必须存在。
func (s *ContentService) SubmitAnswer(xl *xlog.Logger, user *model.AccountDo, competitionID string, f *form.SubmissionForm) (*model.CompetitionUserDo, error) {
	xl = s.logger(xl)
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if _, err := s.Competitions.Select(xl, competitionID); err != nil {
		return nil, notFound(err, msgCompetitionNotFound)
	}
	submission := &model.CompetitionUserDo{
		CompetitionID: competitionID,
		UserID:        user.ID,
		Answer:        f.Answer,
	}
	if _, err := s.Competitions.InsertSubmission(xl, submission); err != nil {
		return nil, err
	}
	submission.User = user.Ref()
	return submission, nil
}
