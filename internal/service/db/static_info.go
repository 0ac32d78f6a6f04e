package db

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao"
)

const (
	msgStaticInfoNotFound = "Static info not found for this channel"
	msgStaticInfoExists   = "Static info already exists for this channel. Only one static info per channel is allowed. Use PUT /api/staticinfo/:channelId to update instead."

	FolderFrequencyImg = "staticinfo/frequency"
	FolderFavIcon      = "staticinfo/favicon"
)

// StaticInfoFiles 静态信息附带的两张图片，未上传的为 nil。
type StaticInfoFiles struct {
	FrequencyImg *cloud.LocalFile
	FavIcon      *cloud.LocalFile
}

// StaticInfoService 频道站点静态信息，每个频道只有一条。
type StaticInfoService struct {
	infos    dao.StaticInfoDaoInterface
	channels *ChannelService
	media    cloud.MediaStore
	xl       *xlog.Logger
}

func NewStaticInfoService(xl *xlog.Logger, infos dao.StaticInfoDaoInterface, channels *ChannelService, media cloud.MediaStore) *StaticInfoService {
	if xl == nil {
		xl = xlog.New("seagulls-staticinfo")
	}
	return &StaticInfoService{
		infos:    infos,
		channels: channels,
		media:    media,
		xl:       xl,
	}
}

func (s *StaticInfoService) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return s.xl
	}
	return xl
}

// favIconSize 读取并校验图标尺寸。
func favIconSize(file *cloud.LocalFile) (int, int, error) {
	width, height, err := cloud.ImageSize(file.Path)
	if err != nil {
		return 0, 0, errors.InvalidArgument("Error reading favicon dimensions")
	}
	if err := form.ValidateFavIcon(width, height); err != nil {
		return 0, 0, errors.InvalidArgument(err.Error())
	}
	return width, height, nil
}

// Create 图片都校验通过后才上传；频道已有记录时返回 409。
func (s *StaticInfoService) Create(xl *xlog.Logger, f *form.StaticInfoForm, files StaticInfoFiles) (*model.StaticInfoDo, error) {
	xl = s.logger(xl)
	f.Partial = false
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	if files.FrequencyImg == nil {
		return nil, errors.InvalidArgument("Frequency image is required")
	}
	if files.FavIcon == nil {
		return nil, errors.InvalidArgument("Favicon is required")
	}
	if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
		return nil, err
	}
	if _, err := s.infos.SelectByChannel(xl, f.ChannelID); err == nil {
		return nil, errors.Conflict(msgStaticInfoExists)
	} else if err != mgo.ErrNotFound {
		return nil, err
	}
	width, height, err := favIconSize(files.FavIcon)
	if err != nil {
		return nil, err
	}

	frequencyImg, err := UploadMedia(xl, s.media, files.FrequencyImg, FolderFrequencyImg, "Error uploading frequency image")
	if err != nil {
		return nil, err
	}
	favIcon, err := UploadMedia(xl, s.media, files.FavIcon, FolderFavIcon, "Error uploading favicon")
	if err != nil {
		cloud.BestEffortDestroy(xl, s.media, frequencyImg)
		return nil, err
	}

	info := &model.StaticInfoDo{
		ChannelID:        f.ChannelID,
		AboutUS:          f.AboutUS,
		Frequency:        f.Frequency,
		FrequencyImg:     frequencyImg,
		SocialMediaLinks: f.Links(),
		DownloadApp:      *f.App(),
		MetaTags:         f.MetaTags,
		MetaDescription:  f.MetaDescription,
		FavIcon:          &model.FavIconDo{MediaDo: *favIcon, Width: width, Height: height},
		PhoneNumber:      f.PhoneNumber,
		Email:            f.Email,
		Address:          f.Address,
	}
	if _, err := s.infos.Insert(xl, info); err != nil {
		cloud.BestEffortDestroy(xl, s.media, frequencyImg)
		cloud.BestEffortDestroy(xl, s.media, favIcon)
		if err == dao.ErrDuplicate {
			return nil, errors.Conflict(msgStaticInfoExists)
		}
		return nil, err
	}
	xl.Infof("static info %s created for channel %s", info.ID, info.ChannelID)
	info.Channel = s.channels.Ref(xl, info.ChannelID)
	return info, nil
}

func (s *StaticInfoService) selectByChannel(xl *xlog.Logger, channelID string) (*model.StaticInfoDo, error) {
	info, err := s.infos.SelectByChannel(xl, channelID)
	if err != nil {
		if err == mgo.ErrNotFound {
			return nil, errors.NotFound(msgStaticInfoNotFound)
		}
		return nil, err
	}
	return info, nil
}

func (s *StaticInfoService) Get(xl *xlog.Logger, channelID string) (*model.StaticInfoDo, error) {
	xl = s.logger(xl)
	info, err := s.selectByChannel(xl, channelID)
	if err != nil {
		return nil, err
	}
	info.Channel = s.channels.Ref(xl, info.ChannelID)
	return info, nil
}

func (s *StaticInfoService) List(xl *xlog.Logger) ([]model.StaticInfoDo, error) {
	xl = s.logger(xl)
	infos, err := s.infos.ListAll(xl)
	if err != nil {
		return nil, err
	}
	for i := range infos {
		infos[i].Channel = s.channels.Ref(xl, infos[i].ChannelID)
	}
	return infos, nil
}

// Update 只修改提交了的字段；新图片上传成功后才删除旧图片。
func (s *StaticInfoService) Update(xl *xlog.Logger, channelID string, f *form.StaticInfoForm, files StaticInfoFiles) (*model.StaticInfoDo, error) {
	xl = s.logger(xl)
	f.Partial = true
	if err := f.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}
	info, err := s.selectByChannel(xl, channelID)
	if err != nil {
		return nil, err
	}
	if f.ChannelID != "" && f.ChannelID != info.ChannelID {
		if err := s.channels.CheckExists(xl, f.ChannelID); err != nil {
			return nil, err
		}
		if _, err := s.infos.SelectByChannel(xl, f.ChannelID); err == nil {
			return nil, errors.Conflict(msgStaticInfoExists)
		} else if err != mgo.ErrNotFound {
			return nil, err
		}
		info.ChannelID = f.ChannelID
	}
	var width, height int
	if files.FavIcon != nil {
		if width, height, err = favIconSize(files.FavIcon); err != nil {
			return nil, err
		}
	}

	if f.AboutUS != "" {
		info.AboutUS = f.AboutUS
	}
	if f.Frequency != "" {
		info.Frequency = f.Frequency
	}
	if links := f.Links(); links != nil {
		info.SocialMediaLinks = links
	}
	if app := f.App(); app != nil {
		info.DownloadApp = *app
	}
	if f.MetaTags != "" {
		info.MetaTags = f.MetaTags
	}
	if f.MetaDescription != "" {
		info.MetaDescription = f.MetaDescription
	}
	if f.PhoneNumber != "" {
		info.PhoneNumber = f.PhoneNumber
	}
	if f.Email != "" {
		info.Email = f.Email
	}
	if f.Address != "" {
		info.Address = f.Address
	}

	frequencyImg, err := swapMedia(xl, s.media, info.FrequencyImg, files.FrequencyImg, FolderFrequencyImg, "Error uploading frequency image")
	if err != nil {
		return nil, err
	}
	var oldFavIcon *model.MediaDo
	if info.FavIcon != nil {
		oldFavIcon = &info.FavIcon.MediaDo
	}
	favIcon, err := swapMedia(xl, s.media, oldFavIcon, files.FavIcon, FolderFavIcon, "Error uploading favicon")
	if err != nil {
		frequencyImg.Rollback(xl)
		return nil, err
	}
	info.FrequencyImg = frequencyImg.Media()
	if files.FavIcon != nil {
		info.FavIcon = &model.FavIconDo{MediaDo: *favIcon.Media(), Width: width, Height: height}
	}

	if err := s.infos.Update(xl, info); err != nil {
		frequencyImg.Rollback(xl)
		favIcon.Rollback(xl)
		if err == dao.ErrDuplicate {
			return nil, errors.Conflict(msgStaticInfoExists)
		}
		return nil, err
	}
	frequencyImg.Commit(xl)
	favIcon.Commit(xl)
	info.Channel = s.channels.Ref(xl, info.ChannelID)
	return info, nil
}

func (s *StaticInfoService) Delete(xl *xlog.Logger, channelID string) error {
	xl = s.logger(xl)
	info, err := s.selectByChannel(xl, channelID)
	if err != nil {
		return err
	}
	cloud.BestEffortDestroy(xl, s.media, info.FrequencyImg)
	if info.FavIcon != nil {
		cloud.BestEffortDestroy(xl, s.media, &info.FavIcon.MediaDo)
	}
	return s.infos.Delete(xl, info.ID)
}
