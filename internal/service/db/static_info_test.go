package db

import (
	"net/http"
	"testing"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
)

func staticInfoForm(channelID string) *form.StaticInfoForm {
	return &form.StaticInfoForm{
		ChannelID:        channelID,
		AboutUS:          "The voice of the coast",
		Frequency:        "98.6 FM",
		SocialMediaLinks: `{"facebook":"https://facebook.com/seagulls"}`,
		DownloadApp:      `{"AppStore":"https://apps.apple.com/seagulls","GooglePlay":"https://play.google.com/seagulls"}`,
		MetaTags:         "radio,music",
		MetaDescription:  "Seagulls FM",
		PhoneNumber:      "+201001234567",
		Email:            "Info@Seagulls.fm",
		Address:          "Alexandria",
	}
}

func TestStaticInfoCreate(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")

	info, err := f.infoSvc.Create(nil, staticInfoForm(channel.ID), StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 32, 32),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if info.FavIcon == nil || info.FavIcon.Width != 32 || info.FavIcon.Height != 32 {
		t.Fatalf("favicon = %+v", info.FavIcon)
	}
	if info.Email != "info@seagulls.fm" || info.SocialMediaLinks["facebook"] == "" || info.DownloadApp.GooglePlay == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Channel == nil || info.Channel.Name != "Seagulls FM" {
		t.Fatalf("channel not populated: %+v", info.Channel)
	}

	// 同一频道再次创建返回 409，原记录不变，也不会上传文件
	uploads := len(f.media.uploaded)
	second := staticInfoForm(channel.ID)
	second.AboutUS = "replacement"
	_, err = f.infoSvc.Create(nil, second, StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 32, 32),
	})
	assertStatus(t, err, http.StatusConflict)
	if len(f.media.uploaded) != uploads {
		t.Fatalf("conflicting create uploaded files")
	}
	stored, err := f.infoSvc.Get(nil, channel.ID)
	if err != nil || stored.AboutUS != "The voice of the coast" {
		t.Fatalf("existing info changed: %+v, %v", stored, err)
	}
}

func TestStaticInfoCreateRejects(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")

	cases := []struct {
		name  string
		form  *form.StaticInfoForm
		files StaticInfoFiles
		want  int
	}{
		{"non-square favicon", staticInfoForm(channel.ID), StaticInfoFiles{
			FrequencyImg: pngFile(t, "freq.png", 300, 100),
			FavIcon:      pngFile(t, "icon.png", 32, 16),
		}, http.StatusBadRequest},
		{"odd favicon size", staticInfoForm(channel.ID), StaticInfoFiles{
			FrequencyImg: pngFile(t, "freq.png", 300, 100),
			FavIcon:      pngFile(t, "icon.png", 40, 40),
		}, http.StatusBadRequest},
		{"not an image", staticInfoForm(channel.ID), StaticInfoFiles{
			FrequencyImg: pngFile(t, "freq.png", 300, 100),
			FavIcon:      tempFile(t, "icon.png", "image/png", []byte("nope")),
		}, http.StatusBadRequest},
		{"missing favicon", staticInfoForm(channel.ID), StaticInfoFiles{
			FrequencyImg: pngFile(t, "freq.png", 300, 100),
		}, http.StatusBadRequest},
		{"unknown channel", staticInfoForm("missing"), StaticInfoFiles{
			FrequencyImg: pngFile(t, "freq.png", 300, 100),
			FavIcon:      pngFile(t, "icon.png", 32, 32),
		}, http.StatusBadRequest},
	}
	for _, c := range cases {
		_, err := f.infoSvc.Create(nil, c.form, c.files)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if got := errors.HTTPStatus(err); got != c.want {
			t.Errorf("%s: status %d, want %d", c.name, got, c.want)
		}
	}
	if len(f.media.uploaded) != 0 {
		t.Fatalf("rejected creates uploaded %v", f.media.uploaded)
	}

	bad := staticInfoForm(channel.ID)
	bad.DownloadApp = `{"AppStore":"https://apps.apple.com/seagulls"}`
	_, err := f.infoSvc.Create(nil, bad, StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 32, 32),
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestStaticInfoFavIconUploadFailure(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	f.media.failFolder = FolderFavIcon

	_, err := f.infoSvc.Create(nil, staticInfoForm(channel.ID), StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 32, 32),
	})
	assertStatus(t, err, http.StatusInternalServerError)
	if len(f.media.uploaded) != 1 || !f.media.isDestroyed(f.media.uploaded[0]) {
		t.Fatalf("frequency image should be destroyed, uploaded %v destroyed %v", f.media.uploaded, f.media.destroyed)
	}
	assertStatus(t, func() error { _, err := f.infoSvc.Get(nil, channel.ID); return err }(), http.StatusNotFound)
}

func TestStaticInfoUpdate(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	other := f.channel(t, "Seagulls Jazz")
	info, err := f.infoSvc.Create(nil, staticInfoForm(channel.ID), StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 32, 32),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldFreq := info.FrequencyImg.PublicID
	oldIcon := info.FavIcon.PublicID

	updated, err := f.infoSvc.Update(nil, channel.ID, &form.StaticInfoForm{Frequency: "101.1 FM"}, StaticInfoFiles{
		FavIcon: pngFile(t, "icon.png", 64, 64),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Frequency != "101.1 FM" || updated.AboutUS != "The voice of the coast" {
		t.Fatalf("partial update lost fields: %+v", updated)
	}
	if updated.FavIcon.Width != 64 || updated.FrequencyImg.PublicID != oldFreq {
		t.Fatalf("unexpected images %+v %+v", updated.FavIcon, updated.FrequencyImg)
	}
	if !f.media.isDestroyed(oldIcon) || f.media.isDestroyed(oldFreq) {
		t.Fatalf("only the replaced favicon should be destroyed: %v", f.media.destroyed)
	}

	// 频道已经有静态信息时不能迁移过去
	if _, err := f.infoSvc.Create(nil, staticInfoForm(other.ID), StaticInfoFiles{
		FrequencyImg: pngFile(t, "freq.png", 300, 100),
		FavIcon:      pngFile(t, "icon.png", 16, 16),
	}); err != nil {
		t.Fatalf("create other: %v", err)
	}
	_, err = f.infoSvc.Update(nil, channel.ID, &form.StaticInfoForm{ChannelID: other.ID}, StaticInfoFiles{})
	assertStatus(t, err, http.StatusConflict)

	_, err = f.infoSvc.Update(nil, "missing", &form.StaticInfoForm{Frequency: "1"}, StaticInfoFiles{})
	assertStatus(t, err, http.StatusNotFound)

	if err := f.infoSvc.Delete(nil, channel.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !f.media.isDestroyed(oldFreq) || !f.media.isDestroyed(updated.FavIcon.PublicID) {
		t.Fatalf("delete should destroy both images: %v", f.media.destroyed)
	}
}
