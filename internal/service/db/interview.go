package db

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

const (
	msgInterviewNotFound = "Interview not found"
	msgUploadVideo       = "Error uploading video"
)

// checkProgram 节目必须存在且属于同一频道。
func (s *ContentService) checkProgram(xl *xlog.Logger, programID, channelID string) error {
	program, err := s.Programs.Select(xl, programID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return errors.InvalidArgument("Invalid programId. Program does not exist.")
		}
		return err
	}
	if program.ChannelID != channelID {
		return errors.InvalidArgument("Program does not belong to the specified channel")
	}
	return nil
}

func (s *ContentService) CreateInterview(xl *xlog.Logger, f *form.InterviewForm, content *cloud.LocalFile) (*model.InterviewDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if content == nil {
		return nil, errors.InvalidArgument("Video content is required")
	}
	date, err := form.ParseDate(f.Date, s.now().Location())
	if err != nil {
		return nil, errors.InvalidArgument("Invalid date format. Please use a valid date (YYYY-MM-DD or ISO format)")
	}
	if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
		return nil, err
	}
	if err := s.checkProgram(xl, f.ProgramID, f.ChannelID); err != nil {
		return nil, err
	}
	media, err := UploadMedia(xl, s.media, content, FolderInterviews, msgUploadVideo)
	if err != nil {
		return nil, err
	}
	interview := &model.InterviewDo{
		ChannelID:   f.ChannelID,
		ProgramID:   f.ProgramID,
		Title:       f.Title,
		Date:        date,
		Content:     media,
		Description: f.Description,
	}
	if _, err := s.Interviews.Insert(xl, interview); err != nil {
		cloud.BestEffortDestroy(xl, s.media, media)
		return nil, err
	}
	interview.Channel = s.channels.Ref(xl, interview.ChannelID)
	return interview, nil
}

func (s *ContentService) GetInterview(xl *xlog.Logger, id string) (*model.InterviewDo, error) {
	xl = s.logger(xl)
	interview, err := s.Interviews.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgInterviewNotFound)
	}
	interview.Channel = s.channels.Ref(xl, interview.ChannelID)
	return interview, nil
}

func (s *ContentService) ListInterviews(xl *xlog.Logger, channelID string) ([]model.InterviewDo, error) {
	xl = s.logger(xl)
	interviews, err := s.Interviews.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range interviews {
		interviews[i].Channel = refs.get(interviews[i].ChannelID)
	}
	return interviews, nil
}

func (s *ContentService) UpdateInterview(xl *xlog.Logger, id string, f *form.InterviewForm, content *cloud.LocalFile) (*model.InterviewDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	interview, err := s.Interviews.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgInterviewNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != interview.ChannelID {
		if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
			return nil, err
		}
		interview.ChannelID = f.ChannelID
	}
	if f.ProgramID != "" {
		interview.ProgramID = f.ProgramID
	}
	if f.ChannelID != "" || f.ProgramID != "" {
		if err := s.checkProgram(xl, interview.ProgramID, interview.ChannelID); err != nil {
			return nil, err
		}
	}
	if f.Title != "" {
		interview.Title = f.Title
	}
	if f.Date != "" {
		date, err := form.ParseDate(f.Date, s.now().Location())
		if err != nil {
			return nil, errors.InvalidArgument("Invalid date format. Please use a valid date (YYYY-MM-DD or ISO format)")
		}
		interview.Date = date
	}
	if f.Description != "" {
		interview.Description = f.Description
	}

	swap, err := swapMedia(xl, s.media, interview.Content, content, FolderInterviews, msgUploadVideo)
	if err != nil {
		return nil, err
	}
	interview.Content = swap.Media()
	if err := s.Interviews.Update(xl, interview); err != nil {
		swap.Rollback(xl)
		return nil, err
	}
	swap.Commit(xl)
	interview.Channel = s.channels.Ref(xl, interview.ChannelID)
	return interview, nil
}

func (s *ContentService) DeleteInterview(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	interview, err := s.Interviews.Select(xl, id)
	if err != nil {
		return notFound(err, msgInterviewNotFound)
	}
	cloud.BestEffortDestroy(xl, s.media, interview.Content)
	return s.Interviews.Delete(xl, interview.ID)
}
