package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

const (
	msgEventNotFound = "Event not found"
	msgUploadEvent   = "Image upload failed"
)

func (s *ContentService) CreateEvent(xl *xlog.Logger, f *form.EventForm, image *cloud.LocalFile) (*model.EventDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if err := s.requireChannel(xl, f.ChannelID); err != nil {
		return nil, err
	}
	loc := s.now().Location()
	event := &model.EventDo{
		ChannelID:   f.ChannelID,
		Type:        f.Type,
		Title:       f.Title,
		Description: f.Description,
		Address:     f.Address,
	}
	event.StartDate, _ = form.ParseDate(f.StartDate, loc)
	event.EndDate, _ = form.ParseDate(f.EndDate, loc)
	if image != nil {
		media, err := UploadMedia(xl, s.media, image, FolderEvents, msgUploadEvent)
		if err != nil {
			return nil, err
		}
		event.Image = media
	}
	if _, err := s.Events.Insert(xl, event); err != nil {
		cloud.BestEffortDestroy(xl, s.media, event.Image)
		return nil, err
	}
	event.Channel = s.channels.Ref(xl, event.ChannelID)
	return event, nil
}

func (s *ContentService) GetEvent(xl *xlog.Logger, id string) (*model.EventDo, error) {
	xl = s.logger(xl)
	event, err := s.Events.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgEventNotFound)
	}
	event.Channel = s.channels.Ref(xl, event.ChannelID)
	return event, nil
}

func (s *ContentService) ListEvents(xl *xlog.Logger, channelID string) ([]model.EventDo, error) {
	xl = s.logger(xl)
	events, err := s.Events.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range events {
		events[i].Channel = refs.get(events[i].ChannelID)
	}
	return events, nil
}

func (s *ContentService) UpdateEvent(xl *xlog.Logger, id string, f *form.EventForm, image *cloud.LocalFile) (*model.EventDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	event, err := s.Events.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgEventNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != event.ChannelID {
		if err := s.requireChannel(xl, f.ChannelID); err != nil {
			return nil, err
		}
		event.ChannelID = f.ChannelID
	}
	if f.Type != "" {
		event.Type = f.Type
	}
	if f.Title != "" {
		event.Title = f.Title
	}
	if f.Description != "" {
		event.Description = f.Description
	}
	if f.Address != "" {
		event.Address = f.Address
	}
	loc := s.now().Location()
	if f.StartDate != "" {
		event.StartDate, _ = form.ParseDate(f.StartDate, loc)
	}
	if f.EndDate != "" {
		event.EndDate, _ = form.ParseDate(f.EndDate, loc)
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, errors.InvalidArgument("End date must be after start date")
	}

	swap, err := swapMedia(xl, s.media, event.Image, image, FolderEvents, msgUploadEvent)
	if err != nil {
		return nil, err
	}
	event.Image = swap.Media()
	if err := s.Events.Update(xl, event); err != nil {
		swap.Rollback(xl)
		return nil, err
	}
	swap.Commit(xl)
	event.Channel = s.channels.Ref(xl, event.ChannelID)
	return event, nil
}

func (s *ContentService) DeleteEvent(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	event, err := s.Events.Select(xl, id)
	if err != nil {
		return notFound(err, msgEventNotFound)
	}
	cloud.BestEffortDestroy(xl, s.media, event.Image)
	return s.Events.Delete(xl, event.ID)
}
