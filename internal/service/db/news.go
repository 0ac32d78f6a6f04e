package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

const msgNewsNotFound = "News article not found"

// CreateNews 图片可选；未指定发布时间时取当前时间。
func (s *ContentService) CreateNews(xl *xlog.Logger, f *form.NewsForm, image *cloud.LocalFile) (*model.NewsDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if err := s.requireChannel(xl, f.ChannelID); err != nil {
		return nil, err
	}
	news := &model.NewsDo{
		ChannelID:   f.ChannelID,
		Title:       f.Title,
		Description: f.Description,
		Content:     f.Content,
		PublishedAt: s.now(),
	}
	if f.PublishedAt != "" {
		news.PublishedAt, _ = form.ParseDate(f.PublishedAt, s.now().Location())
	}
	if image != nil {
		media, err := UploadMedia(xl, s.media, image, FolderNews, msgUploadImage)
		if err != nil {
			return nil, err
		}
		news.Image = media
	}
	if _, err := s.News.Insert(xl, news); err != nil {
		cloud.BestEffortDestroy(xl, s.media, news.Image)
		return nil, err
	}
	news.Channel = s.channels.Ref(xl, news.ChannelID)
	return news, nil
}

func (s *ContentService) GetNews(xl *xlog.Logger, id string) (*model.NewsDo, error) {
	xl = s.logger(xl)
	news, err := s.News.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgNewsNotFound)
	}
	news.Channel = s.channels.Ref(xl, news.ChannelID)
	return news, nil
}

// ListNews 最新发布的在前。
func (s *ContentService) ListNews(xl *xlog.Logger, channelID string) ([]model.NewsDo, error) {
	xl = s.logger(xl)
	list, err := s.News.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range list {
		list[i].Channel = refs.get(list[i].ChannelID)
	}
	return list, nil
}

func (s *ContentService) UpdateNews(xl *xlog.Logger, id string, f *form.NewsForm, image *cloud.LocalFile) (*model.NewsDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	news, err := s.News.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgNewsNotFound)
	}
	if f.ChannelID != "" && f.ChannelID != news.ChannelID {
		if err := s.requireChannel(xl, f.ChannelID); err != nil {
			return nil, err
		}
		news.ChannelID = f.ChannelID
	}
	if f.Title != "" {
		news.Title = f.Title
	}
	if f.Description != "" {
		news.Description = f.Description
	}
	if f.Content != "" {
		news.Content = f.Content
	}
	if f.PublishedAt != "" {
		news.PublishedAt, _ = form.ParseDate(f.PublishedAt, s.now().Location())
	}

	swap, err := swapMedia(xl, s.media, news.Image, image, FolderNews, msgUploadImage)
	if err != nil {
		return nil, err
	}
	news.Image = swap.Media()
	if err := s.News.Update(xl, news); err != nil {
		swap.Rollback(xl)
		return nil, err
	}
	swap.Commit(xl)
	news.Channel = s.channels.Ref(xl, news.ChannelID)
	return news, nil
}

func (s *ContentService) DeleteNews(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	news, err := s.News.Select(xl, id)
	if err != nil {
		return notFound(err, msgNewsNotFound)
	}
	cloud.BestEffortDestroy(xl, s.media, news.Image)
	return s.News.Delete(xl, news.ID)
}
