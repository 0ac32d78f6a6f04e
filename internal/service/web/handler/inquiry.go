package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solutions/seagulls/internal/protodef/form"
)

// 广告咨询与访谈报名由听众公开提交，管理员查看和处理。

func (h *ContentApiHandler) CreateAdvertisement(c *gin.Context) {
	xl := logger(c)
	var f form.AdvertisementForm
	if !bind(c, xl, &f) {
		return
	}
	ad, err := h.Content.CreateAdvertisement(xl, &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, ad)
}

func (h *ContentApiHandler) ListAdvertisements(c *gin.Context) {
	xl := logger(c)
	ads, err := h.Content.ListAdvertisements(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, ads, len(ads))
}

func (h *ContentApiHandler) GetAdvertisement(c *gin.Context) {
	xl := logger(c)
	ad, err := h.Content.GetAdvertisement(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, ad)
}

func (h *ContentApiHandler) DeleteAdvertisement(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteAdvertisement(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Advertisement deleted successfully")
}

func (h *ContentApiHandler) CreateApplicant(c *gin.Context) {
	xl := logger(c)
	var f form.ApplicantForm
	if !bind(c, xl, &f) {
		return
	}
	applicant, err := h.Content.CreateApplicant(xl, &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	created(c, xl, applicant)
}

func (h *ContentApiHandler) ListApplicants(c *gin.Context) {
	xl := logger(c)
	applicants, err := h.Content.ListApplicants(xl, channelQuery(c))
	if err != nil {
		fail(c, xl, err)
		return
	}
	list(c, xl, applicants, len(applicants))
}

func (h *ContentApiHandler) GetApplicant(c *gin.Context) {
	xl := logger(c)
	applicant, err := h.Content.GetApplicant(xl, c.Param("id"))
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, applicant)
}

func (h *ContentApiHandler) UpdateApplicantStatus(c *gin.Context) {
	xl := logger(c)
	var f form.ApplicantStatusForm
	if !bind(c, xl, &f) {
		return
	}
	applicant, err := h.Content.UpdateApplicantStatus(xl, c.Param("id"), &f)
	if err != nil {
		fail(c, xl, err)
		return
	}
	ok(c, xl, applicant)
}

func (h *ContentApiHandler) DeleteApplicant(c *gin.Context) {
	xl := logger(c)
	if err := h.Content.DeleteApplicant(xl, c.Param("id")); err != nil {
		fail(c, xl, err)
		return
	}
	deleted(c, xl, "Interview applicant deleted successfully")
}
