package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/service/db"
)

// ContentApiHandler 主播、节目、访谈、新闻、活动等频道内容接口。
// 列表接口都支持 channelId 查询参数。
type ContentApiHandler struct {
	Content *db.ContentService
	Uploads *Uploader
}

func channelQuery(c *gin.Context) string {
	return utils.TrimQuotes(c.Query("channelId"))
}

func (h *ContentApiHandler) CreateBroadcaster(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.BroadcasterForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	broadcaster, err := h.Content.CreateBroadcaster(xl, &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, broadcaster)
}

func (h *ContentApiHandler) ListBroadcasters(c *gin.Context) {
	xl := logger(c)
	broadcasters, err := h.Content.ListBroadcasters(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, broadcasters, len(broadcasters))
}

func (h *ContentApiHandler) GetBroadcaster(c *gin.Context) {
	xl := logger(c)
	broadcaster, err := h.Content.GetBroadcaster(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, broadcaster)
}

func (h *ContentApiHandler) UpdateBroadcaster(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.BroadcasterForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	broadcaster, err := h.Content.UpdateBroadcaster(xl, c.Param("id"), &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, broadcaster)
}

func (h *ContentApiHandler) DeleteBroadcaster(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteBroadcaster(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Broadcaster deleted successfully")
}

func (h *ContentApiHandler) CreateProgram(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.ProgramForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	program, err := h.Content.CreateProgram(xl, &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, program)
}

// ListPrograms 按星期（周一开始）和开始时间排序。
func (h *ContentApiHandler) ListPrograms(c *gin.Context) {
	xl := logger(c)
	programs, err := h.Content.ListPrograms(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, programs, len(programs))
}

func (h *ContentApiHandler) GetProgram(c *gin.Context) {
	xl := logger(c)
	program, err := h.Content.GetProgram(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, program)
}

func (h *ContentApiHandler) UpdateProgram(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.ProgramForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	program, err := h.Content.UpdateProgram(xl, c.Param("id"), &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, program)
}

func (h *ContentApiHandler) DeleteProgram(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteProgram(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Program deleted successfully")
}

func (h *ContentApiHandler) CreateInterview(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.InterviewForm
	if !bind(c, xl, &f) {
		return
	}
	content, err := files.get("content", KindAudioVideo)
	if err != nil {
		fail(c, xl, err)
		return
	}
	interview, err := h.Content.CreateInterview(xl, &f, content)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, interview)
}

func (h *ContentApiHandler) ListInterviews(c *gin.Context) {
	xl := logger(c)
	interviews, err := h.Content.ListInterviews(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, interviews, len(interviews))
}

func (h *ContentApiHandler) GetInterview(c *gin.Context) {
	xl := logger(c)
	interview, err := h.Content.GetInterview(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, interview)
}

func (h *ContentApiHandler) UpdateInterview(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.InterviewForm
	if !bind(c, xl, &f) {
		return
	}
	content, err := files.get("content", KindAudioVideo)
	if err != nil {
		fail(c, xl, err)
		return
	}
	interview, err := h.Content.UpdateInterview(xl, c.Param("id"), &f, content)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, interview)
}

func (h *ContentApiHandler) DeleteInterview(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteInterview(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Interview deleted successfully")
}

func (h *ContentApiHandler) CreateNews(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.NewsForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	news, err := h.Content.CreateNews(xl, &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, news)
}

func (h *ContentApiHandler) ListNews(c *gin.Context) {
	xl := logger(c)
	news, err := h.Content.ListNews(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, news, len(news))
}

func (h *ContentApiHandler) GetNews(c *gin.Context) {
	xl := logger(c)
	news, err := h.Content.GetNews(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, news)
}

func (h *ContentApiHandler) UpdateNews(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.NewsForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	news, err := h.Content.UpdateNews(xl, c.Param("id"), &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, news)
}

func (h *ContentApiHandler) DeleteNews(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteNews(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "News deleted successfully")
}

func (h *ContentApiHandler) CreateEvent(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.EventForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	event, err := h.Content.CreateEvent(xl, &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, event)
}

func (h *ContentApiHandler) ListEvents(c *gin.Context) {
	xl := logger(c)
	events, err := h.Content.ListEvents(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, events, len(events))
}

func (h *ContentApiHandler) GetEvent(c *gin.Context) {
	xl := logger(c)
	event, err := h.Content.GetEvent(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, event)
}

func (h *ContentApiHandler) UpdateEvent(c *gin.Context) {
	xl := logger(c)
	files := h.Uploads.begin(c, xl)
	defer files.remove()

	var f form.EventForm
	if !bind(c, xl, &f) {
		return
	}
	image, err := files.get("image", KindImage)
	if err != nil {
		fail(c, xl, err)
		return
	}
	event, err := h.Content.UpdateEvent(xl, c.Param("id"), &f, image)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, event)
}

func (h *ContentApiHandler) DeleteEvent(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteEvent(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Event deleted successfully")
}
