package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

const msgBroadcasterNotFound = "Broadcaster not found"

func (s *ContentService) CreateBroadcaster(xl *xlog.Logger, f *form.BroadcasterForm, image *cloud.LocalFile) (*model.BroadcasterDo, error) {
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
	media, err := UploadMedia(xl, s.media, image, FolderBroadcasters, msgUploadImage)
	if err != nil {
		return nil, err
	}
	broadcaster := &model.BroadcasterDo{
		ChannelID:   f.ChannelID,
		Name:        f.Name,
		Image:       media,
		SocialLinks: form.ParseSocialLinks(f.SocialLinks),
		Description: f.Description,
	}
	if _, err := s.Broadcasters.Insert(xl, broadcaster); err != nil {
		cloud.BestEffortDestroy(xl, s.media, media)
		return nil, err
	}
	broadcaster.Channel = s.channels.Ref(xl, broadcaster.ChannelID)
	return broadcaster, nil
}

func (s *ContentService) GetBroadcaster(xl *xlog.Logger, id string) (*model.BroadcasterDo, error) {
	xl = s.logger(xl)
	broadcaster, err := s.Broadcasters.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgBroadcasterNotFound)
	}
	broadcaster.Channel = s.channels.Ref(xl, broadcaster.ChannelID)
	return broadcaster, nil
}

func (s *ContentService) ListBroadcasters(xl *xlog.Logger, channelID string) ([]model.BroadcasterDo, error) {
	xl = s.logger(xl)
	broadcasters, err := s.Broadcasters.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range broadcasters {
		broadcasters[i].Channel = refs.get(broadcasters[i].ChannelID)
	}
	return broadcasters, nil
}

func (s *ContentService) UpdateBroadcaster(xl *xlog.Logger, id string, f *form.BroadcasterForm, image *cloud.LocalFile) (*model.BroadcasterDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	broadcaster, err := s.Broadcasters.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgBroadcasterNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != broadcaster.ChannelID {
		if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
			return nil, err
		}
		broadcaster.ChannelID = f.ChannelID
	}
	if f.Name != "" {
		broadcaster.Name = f.Name
	}
	if f.SocialLinks != "" {
		broadcaster.SocialLinks = form.ParseSocialLinks(f.SocialLinks)
	}
	if f.Description != "" {
		broadcaster.Description = f.Description
	}
	swap, err := swapMedia(xl, s.media, broadcaster.Image, image, FolderBroadcasters, msgUploadImage)
	if err != nil {
		return nil, err
	}
	broadcaster.Image = swap.Media()
	if err := s.Broadcasters.Update(xl, broadcaster); err != nil {
		swap.Rollback(xl)
		return nil, err
	}
	swap.Commit(xl)
	broadcaster.Channel = s.channels.Ref(xl, broadcaster.ChannelID)
	return broadcaster, nil
}

func (s *ContentService) DeleteBroadcaster(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	broadcaster, err := s.Broadcasters.Select(xl, id)
	if err != nil {
		return notFound(err, msgBroadcasterNotFound)
	}
	cloud.BestEffortDestroy(xl, s.media, broadcaster.Image)
	return s.Broadcasters.Delete(xl, broadcaster.ID)
}
