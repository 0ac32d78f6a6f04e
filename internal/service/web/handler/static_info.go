package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/service/db"
)

const (
	fieldFrequencyImg = "frequencyimg"
	fieldFavIcon      = "favIcon"
)

type StaticInfoApiHandler struct {
	StaticInfo *db.StaticInfoService
	Uploads    *Uploader
}

// files 读取两个可选的图片字段。
func (h *StaticInfoApiHandler) files(c *gin.Context, t *tempFiles) (db.StaticInfoFiles, error) {
	var files db.StaticInfoFiles
	var err error
	if files.FrequencyImg, err = t.get(fieldFrequencyImg, KindImage); err != nil {
		return files, err
	}
	if files.FavIcon, err = t.get(fieldFavIcon, KindImage); err != nil {
		return files, err
	}
	return files, nil
}

func (h *StaticInfoApiHandler) Create(c *gin.Context) {
	xl := logger(c)
	t := h.Uploads.begin(c, xl)
	defer t.remove()

	var f form.StaticInfoForm
	if !bind(c, xl, &f) {
		return
	}
	files, err := h.files(c, t)
	if err != nil {
		fail(c, xl, err)
		return
	}
	info, err := h.StaticInfo.Create(xl, &f, files)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, info)
}

func (h *StaticInfoApiHandler) List(c *gin.Context) {
	xl := logger(c)
	infos, err := h.StaticInfo.List(xl)
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, infos, len(infos))
}

func (h *StaticInfoApiHandler) Get(c *gin.Context) {
	xl := logger(c)
	info, err := h.StaticInfo.Get(xl, c.Param("channelId"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, info)
}

func (h *StaticInfoApiHandler) Update(c *gin.Context) {
	xl := logger(c)
	t := h.Uploads.begin(c, xl)
	defer t.remove()

	var f form.StaticInfoForm
	if !bind(c, xl, &f) {
		return
	}
	files, err := h.files(c, t)
	if err != nil {
		fail(c, xl, err)
		return
	}
	info, err := h.StaticInfo.Update(xl, c.Param("channelId"), &f, files)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, info)
}

func (h *StaticInfoApiHandler) Delete(c *gin.Context) {
	xl := logger(c)
	if err := h.StaticInfo.Delete(xl, c.Param("channelId")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Static info deleted successfully")
}
