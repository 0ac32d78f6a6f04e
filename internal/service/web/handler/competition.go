package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/protodef/form"
)

func (h *ContentApiHandler) CreateCompetition(c *gin.Context) {
	xl := logger(c)
	var f form.CompetitionForm
	if !bind(c, xl, &f) {
		return
	}
	competition, err := h.Content.CreateCompetition(xl, &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, competition)
}

// ListCompetitions 每个竞赛附带提交数量。
func (h *ContentApiHandler) ListCompetitions(c *gin.Context) {
	xl := logger(c)
	competitions, err := h.Content.ListCompetitions(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, competitions, len(competitions))
}

func (h *ContentApiHandler) GetCompetition(c *gin.Context) {
	xl := logger(c)
	competition, err := h.Content.GetCompetition(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, competition)
}

func (h *ContentApiHandler) GetCompetitionSubmissions(c *gin.Context) {
	xl := logger(c)
	view, err := h.Content.GetCompetitionWithSubmissions(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, view)
}

func (h *ContentApiHandler) UpdateCompetition(c *gin.Context) {
	xl := logger(c)
	var f form.CompetitionForm
	if !bind(c, xl, &f) {
		return
	}
	competition, err := h.Content.UpdateCompetition(xl, c.Param("id"), &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, competition)
}

func (h *ContentApiHandler) DeleteCompetition(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteCompetition(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Competition deleted successfully")
}

func (h *ContentApiHandler) SubmitAnswer(c *gin.Context) {
	xl := logger(c)
	var f form.SubmissionForm
	if !bind(c, xl, &f) {
		return
	}
	submission, err := h.Content.SubmitAnswer(xl, principal(c), c.Param("id"), &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, submission)
}
