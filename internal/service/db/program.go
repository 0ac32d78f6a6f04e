package db

import (
	"sort"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

const msgProgramNotFound = "Program not found"

func (s *ContentService) CreateProgram(xl *xlog.Logger, f *form.ProgramForm, image *cloud.LocalFile) (*model.ProgramDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if image == nil {
		return nil, errors.InvalidArgument("Image is required")
	}
	if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
		return nil, err
	}
	media, err := UploadMedia(xl, s.media, image, FolderPrograms, msgUploadImage)
	if err != nil {
		return nil, err
	}
	program := &model.ProgramDo{
		ChannelID:   f.ChannelID,
		Title:       f.Title,
		Image:       media,
		Description: f.Description,
		Day:         f.Day,
		StartTime:   form.Clock(f.StartTime),
		EndTime:     form.Clock(f.EndTime),
		Status:      f.Status,
	}
	if program.Status == "" {
		program.Status = model.ProgramStatusActive
	}
	if _, err := s.Programs.Insert(xl, program); err != nil {
		cloud.BestEffortDestroy(xl, s.media, media)
		return nil, err
	}
	program.Channel = s.channels.Ref(xl, program.ChannelID)
	return program, nil
}

func (s *ContentService) GetProgram(xl *xlog.Logger, id string) (*model.ProgramDo, error) {
	xl = s.logger(xl)
	program, err := s.Programs.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgProgramNotFound)
	}
	program.Channel = s.channels.Ref(xl, program.ChannelID)
	return program, nil
}

// ListPrograms 按星期与开始时间排序。
func (s *ContentService) ListPrograms(xl *xlog.Logger, channelID string) ([]model.ProgramDo, error) {
	xl = s.logger(xl)
	programs, err := s.Programs.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(programs, func(i, j int) bool {
		di, dj := weekdayIndex(programs[i].Day), weekdayIndex(programs[j].Day)
		if di != dj {
			return di < dj
		}
		return programs[i].StartTime < programs[j].StartTime
	})
	refs := s.newChannelRefs(xl)
	for i := range programs {
		programs[i].Channel = refs.get(programs[i].ChannelID)
	}
	return programs, nil
}

// weekdayIndex 周一为 0，未知的排在最后。
func weekdayIndex(day string) int {
	for i, d := range model.WeekDays {
		if d == day {
			return i
		}
	}
	return len(model.WeekDays)
}

func (s *ContentService) UpdateProgram(xl *xlog.Logger, id string, f *form.ProgramForm, image *cloud.LocalFile) (*model.ProgramDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	program, err := s.Programs.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgProgramNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != program.ChannelID {
		if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
			return nil, err
		}
		program.ChannelID = f.ChannelID
	}
	if f.Title != "" {
		program.Title = f.Title
	}
	if f.Description != "" {
		program.Description = f.Description
	}
	if f.Day != "" {
		program.Day = f.Day
	}
	if f.StartTime != "" {
		program.StartTime = form.Clock(f.StartTime)
	}
	if f.EndTime != "" {
		program.EndTime = form.Clock(f.EndTime)
	}
	if f.Status != "" {
		program.Status = f.Status
	}
	// 只改了其中一个时间时，与原有的另一个时间比较
	if err := form.CheckTimeRange(program.StartTime, program.EndTime); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}

	swap, err := swapMedia(xl, s.media, program.Image, image, FolderPrograms, msgUploadImage)
	if err != nil {
		return nil, err
	}
	program.Image = swap.Media()
	if err := s.Programs.Update(xl, program); err != nil {
		swap.Rollback(xl)
		return nil, err
	}
	swap.Commit(xl)
	program.Channel = s.channels.Ref(xl, program.ChannelID)
	return program, nil
}

func (s *ContentService) DeleteProgram(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	program, err := s.Programs.Select(xl, id)
	if err != nil {
		return notFound(err, msgProgramNotFound)
	}
	cloud.BestEffortDestroy(xl, s.media, program.Image)
	return s.Programs.Delete(xl, program.ID)
}
