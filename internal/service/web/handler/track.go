package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/dao"
	"github.com/solutions/seagulls/internal/service/db"
)

// TrackApiHandler 听众投稿与审核排播。
type TrackApiHandler struct {
	Tracks  *db.TrackService
	Uploads *Uploader
}

// Submit 每个用户每个配额周（周五零点起算）只能投稿一次，超出时返回 429。
func (h *TrackApiHandler) Submit(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	f := form.TrackSubmitForm{
		ChannelID: utils.TrimQuotes(c.PostForm("channelId")),
		SongName:  utils.TrimQuotes(c.PostForm("songName")),
		Genre:     form.ParseStringList(c.PostFormArray("genre")),
	}
	song, err := files.get("songFile", KindAudioVideo)
	if err != nil {
		fail(c, xl, err)
		return
	}
	track, err := h.Tracks.Submit(xl, principal(c), &f, song)
	if err != nil {
		fail(c, xl, err)
		return
	}
	model.NewCreatedResponse(track).WithMessage("Track uploaded successfully").WithRequestID(xl.ReqId).Send(c)
}

func (h *TrackApiHandler) ListMine(c *gin.Context) {
	xl := logger(c)
	tracks, err := h.Tracks.ListMine(xl, principal(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, tracks, len(tracks))
}

func (h *TrackApiHandler) List(c *gin.Context) {
	xl := logger(c)
	var q form.TrackListQuery
	if !bind(c, xl, &q) {
		return
	}
	tracks, err := h.Tracks.List(xl, dao.TrackFilter{
		Status:    model.TrackStatus(q.Status),
		ChannelID: q.ChannelID,
		UserID:    q.UserID,
	})
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, tracks, len(tracks))
}

// ListApproved 公开的播出计划，date 为 YYYY-MM-DD 时只返回当天。
func (h *TrackApiHandler) ListApproved(c *gin.Context) {
	xl := logger(c)
	var q form.ApprovedListQuery
	if !bind(c, xl, &q) {
		return
	}
	var day *time.Time
	if q.Date != "" {
		d, err := form.ParseDate(q.Date, time.Local)
		if err != nil {
			fail(c, xl, errors.InvalidArgument("Invalid date. Use YYYY-MM-DD format"))
			return
		}
		day = &d
	}
	approved, err := h.Tracks.ListApproved(xl, q.ChannelID, day)
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, approved, len(approved))
}

// Get 投稿人本人或管理员可以查看。
func (h *TrackApiHandler) Get(c *gin.Context) {
	xl := logger(c)
	track, err := h.Tracks.Get(xl, principal(c), c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, track)
}

func (h *TrackApiHandler) UpdateStatus(c *gin.Context) {
	xl := logger(c)
	var f form.TrackStatusForm
	if !bindValid(c, xl, &f) {
		return
	}
	track, err := h.Tracks.UpdateStatus(xl, principal(c), c.Param("id"), model.TrackStatus(f.Status))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, track)
}

// Approve 审核通过并排播，通知邮件发送失败不影响结果。
func (h *TrackApiHandler) Approve(c *gin.Context) {
	xl := logger(c)
	var f form.TrackApproveForm
	if !bind(c, xl, &f) {
		return
	}
	result, err := h.Tracks.Approve(xl, principal(c), c.Param("id"), &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	model.NewSuccessResponse(result).WithMessage("Track approved and scheduled successfully").WithRequestID(xl.ReqId).Send(c)
}

func (h *TrackApiHandler) Delete(c *gin.Context) {
	xl := logger(c)
	if err := h.Tracks.Delete(xl, principal(c), c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Track deleted successfully")
}
