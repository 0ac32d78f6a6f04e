package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/service/db"
)

type ChannelApiHandler struct {
	Channels *db.ChannelService
}

func (h *ChannelApiHandler) Create(c *gin.Context) {
	xl := logger(c)
	var f form.ChannelForm
	if !bindValid(c, xl, &f) {
		return
	}
	channel, err := h.Channels.Create(xl, f.Name)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, channel)
}

func (h *ChannelApiHandler) List(c *gin.Context) {
	xl := logger(c)
	channels, err := h.Channels.List(xl)
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, channels, len(channels))
}

func (h *ChannelApiHandler) Get(c *gin.Context) {
	xl := logger(c)
	channel, err := h.Channels.Get(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, channel)
}

func (h *ChannelApiHandler) Rename(c *gin.Context) {
	xl := logger(c)
	var f form.ChannelForm
	if !bindValid(c, xl, &f) {
		return
	}
	channel, err := h.Channels.Rename(xl, c.Param("id"), f.Name)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, channel)
}

// Delete 仍有内容引用该频道时返回 409。
func (h *ChannelApiHandler) Delete(c *gin.Context) {
	xl := logger(c)
	if err := h.Channels.Delete(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Channel deleted successfully")
}
