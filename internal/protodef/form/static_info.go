package form

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// FavIconSizes 允许的站点图标边长。
var FavIconSizes = []int{16, 32, 48, 64, 128, 256}

type StaticInfoForm struct {
	ChannelID        string `form:"channelId" json:"channelId"`
	AboutUS          string `form:"aboutUS" json:"aboutUS"`
	Frequency        string `form:"frequency" json:"frequency"`
	SocialMediaLinks string `form:"socialMediaLinks" json:"socialMediaLinks"`
	DownloadApp      string `form:"downloadApp" json:"downloadApp"`
	MetaTags         string `form:"metaTags" json:"metaTags"`
	MetaDescription  string `form:"metaDescription" json:"metaDescription"`
	PhoneNumber      string `form:"phoneNumber" json:"phoneNumber"`
	Email            string `form:"email" json:"email"`
	Address          string `form:"address" json:"address"`
	Partial          bool   `form:"-" json:"-"`

	links       map[string]string
	downloadApp *model.DownloadAppDo
}

func (f *StaticInfoForm) Validate() error {
	f.ChannelID = utils.TrimQuotes(f.ChannelID)
	f.Email = strings.ToLower(utils.TrimQuotes(f.Email))
	required := !f.Partial
	err := validation.ValidateStruct(f,
		validation.Field(&f.ChannelID, validation.When(required, validation.Required.Error(ErrChannelIDRequired.Error()))),
		validation.Field(&f.AboutUS, validation.When(required, validation.Required.Error("About US is required"))),
		validation.Field(&f.Frequency, validation.When(required, validation.Required.Error("Frequency is required"))),
		validation.Field(&f.SocialMediaLinks, validation.When(required, validation.Required.Error("Social media links are required"))),
		validation.Field(&f.DownloadApp, validation.When(required, validation.Required.Error("Download app links are required"))),
		validation.Field(&f.MetaTags, validation.When(required, validation.Required.Error("Meta tags are required"))),
		validation.Field(&f.MetaDescription, validation.When(required, validation.Required.Error("Meta description is required"))),
		validation.Field(&f.PhoneNumber, validation.When(required, validation.Required.Error("Phone number is required"))),
		validation.Field(&f.Email,
			validation.When(required, validation.Required.Error("Email is required")),
			validation.Match(EmailRegex).Error(ErrEmailMsg)),
		validation.Field(&f.Address, validation.When(required, validation.Required.Error("Address is required"))),
	)
	if err != nil {
		return err
	}
	if f.SocialMediaLinks != "" {
		links, ok := ParseStringMap(f.SocialMediaLinks)
		if !ok {
			return errors.New("Social media links must be a JSON object")
		}
		f.links = links
	}
	if f.DownloadApp != "" {
		raw := utils.TrimQuotes(f.DownloadApp)
		if !gjson.Valid(raw) {
			return errors.New("Download app links must be a JSON object")
		}
		r := gjson.Parse(raw)
		app := &model.DownloadAppDo{
			AppStore:   strings.TrimSpace(r.Get("AppStore").String()),
			GooglePlay: strings.TrimSpace(r.Get("GooglePlay").String()),
		}
		if app.AppStore == "" || app.GooglePlay == "" {
			return errors.New("Both AppStore and GooglePlay links are required")
		}
		f.downloadApp = app
	}
	return nil
}

// Links Validate 之后可用。
func (f *StaticInfoForm) Links() map[string]string {
	return f.links
}

// App Validate 之后可用，未提交时为 nil。
func (f *StaticInfoForm) App() *model.DownloadAppDo {
	return f.downloadApp
}

// ValidateFavIcon 图标必须是正方形，边长为 16/32/48/64/128/256 之一。
func ValidateFavIcon(width, height int) error {
	if width != height {
		return fmt.Errorf("Favicon must be square, got %dx%d", width, height)
	}
	for _, size := range FavIconSizes {
		if width == size {
			return nil
		}
	}
	return fmt.Errorf("Favicon size must be one of 16, 32, 48, 64, 128 or 256 pixels, got %dx%d", width, height)
}
