package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// 广告咨询与访谈报名都由前台匿名提交，后台只读、删除，报名可以修改状态。

const (
	msgAdvertisementNotFound = "Advertisement not found"
	msgApplicantNotFound     = "Interview applicant not found"
)

func (s *ContentService) CreateAdvertisement(xl *xlog.Logger, f *form.AdvertisementForm) (*model.AdvertisementDo, error) {
	xl = s.logger(xl)
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	phone, err := s.normalizePhone(f.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireChannel(xl, f.ChannelID); err != nil {
		return nil, err
	}
	ad := &model.AdvertisementDo{
		ChannelID:   f.ChannelID,
		Name:        f.Name,
		Email:       f.Email,
		PhoneNumber: phone,
		Message:     f.Message,
	}
	if _, err := s.Advertisements.Insert(xl, ad); err != nil {
		return nil, err
	}
	ad.Channel = s.channels.Ref(xl, ad.ChannelID)
	return ad, nil
}

func (s *ContentService) GetAdvertisement(xl *xlog.Logger, id string) (*model.AdvertisementDo, error) {
	xl = s.logger(xl)
	ad, err := s.Advertisements.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgAdvertisementNotFound)
	}
	ad.Channel = s.channels.Ref(xl, ad.ChannelID)
	return ad, nil
}

func (s *ContentService) ListAdvertisements(xl *xlog.Logger, channelID string) ([]model.AdvertisementDo, error) {
	xl = s.logger(xl)
	ads, err := s.Advertisements.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range ads {
		ads[i].Channel = refs.get(ads[i].ChannelID)
	}
	return ads, nil
}

func (s *ContentService) DeleteAdvertisement(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	if _, err := s.Advertisements.Select(xl, id); err != nil {
		return notFound(err, msgAdvertisementNotFound)
	}
	return s.Advertisements.Delete(xl, id)
}

// CreateApplicant 新报名的状态为 pending。
func (s *ContentService) CreateApplicant(xl *xlog.Logger, f *form.ApplicantForm) (*model.InterviewApplicantDo, error) {
	xl = s.logger(xl)
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	phone, err := s.normalizePhone(f.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireChannel(xl, f.ChannelID); err != nil {
		return nil, err
	}
	applicant := &model.InterviewApplicantDo{
		ChannelID:   f.ChannelID,
		Name:        f.Name,
		Email:       f.Email,
		PhoneNumber: phone,
		Topic:       f.Topic,
		SocialLinks: form.ParseSocialLinks(f.SocialLinks),
		Job:         f.Job,
		Status:      model.ApplicantStatusPending,
	}
	if _, err := s.Applicants.Insert(xl, applicant); err != nil {
		return nil, err
	}
	applicant.Channel = s.channels.Ref(xl, applicant.ChannelID)
	return applicant, nil
}

func (s *ContentService) GetApplicant(xl *xlog.Logger, id string) (*model.InterviewApplicantDo, error) {
	xl = s.logger(xl)
	applicant, err := s.Applicants.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgApplicantNotFound)
	}
	applicant.Channel = s.channels.Ref(xl, applicant.ChannelID)
	return applicant, nil
}

func (s *ContentService) ListApplicants(xl *xlog.Logger, channelID string) ([]model.InterviewApplicantDo, error) {
	xl = s.logger(xl)
	applicants, err := s.Applicants.List(xl, channelID)
	if err != nil {
		return nil, err
	}
	refs := s.newChannelRefs(xl)
	for i := range applicants {
		applicants[i].Channel = refs.get(applicants[i].ChannelID)
	}
	return applicants, nil
}

func (s *ContentService) UpdateApplicantStatus(xl *xlog.Logger, id string, f *form.ApplicantStatusForm) (*model.InterviewApplicantDo, error) {
	xl = s.logger(xl)
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	applicant, err := s.Applicants.Select(xl, id)
	if err != nil {
		return nil, notFound(err, msgApplicantNotFound)
	}
	applicant.Status = f.Status
	if err := s.Applicants.Update(xl, applicant); err != nil {
		return nil, err
	}
	applicant.Channel = s.channels.Ref(xl, applicant.ChannelID)
	return applicant, nil
}

func (s *ContentService) DeleteApplicant(xl *xlog.Logger, id string) error {
	xl = s.logger(xl)
	if _, err := s.Applicants.Select(xl, id); err != nil {
		return notFound(err, msgApplicantNotFound)
	}
	return s.Applicants.Delete(xl, id)
}
