package db

import (
	"net/http"
	"testing"

	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
)

func programForm(channelID, day, start, end string) *form.ProgramForm {
	return &form.ProgramForm{
		ChannelID:   channelID,
		Title:       "Morning Show",
		Description: "Wake up with the coast",
		Day:         day,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestProgramCreateAndList(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	image := tempFile(t, "show.jpg", "image/jpeg", nil)

	_, err := f.contentSvc.CreateProgram(nil, programForm(channel.ID, "Monday", "8:00", "10:00"), nil)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateProgram(nil, programForm(channel.ID, "Monday", "10:00", "08:00"), image)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateProgram(nil, programForm(channel.ID, "Someday", "08:00", "10:00"), image)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateProgram(nil, programForm("missing", "Monday", "08:00", "10:00"), image)
	assertStatus(t, err, http.StatusBadRequest)

	for _, p := range []*form.ProgramForm{
		programForm(channel.ID, "Friday", "08:00", "10:00"),
		programForm(channel.ID, "Monday", "14:00", "15:00"),
		programForm(channel.ID, "Monday", "9:30", "11:00"),
	} {
		if _, err := f.contentSvc.CreateProgram(nil, p, image); err != nil {
			t.Fatalf("create program: %v", err)
		}
	}
	programs, err := f.contentSvc.ListPrograms(nil, channel.ID)
	if err != nil {
		t.Fatalf("list programs: %v", err)
	}
	var got []string
	for _, p := range programs {
		got = append(got, p.Day+" "+p.StartTime)
		if p.Status != model.ProgramStatusActive {
			t.Fatalf("default status = %q", p.Status)
		}
	}
	want := []string{"Monday 09:30", "Monday 14:00", "Friday 08:00"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestProgramPartialUpdate(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	program, err := f.contentSvc.CreateProgram(nil, programForm(channel.ID, "Monday", "08:00", "10:00"),
		tempFile(t, "show.jpg", "image/jpeg", nil))
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	// 只改开始时间时与原结束时间比较
	_, err = f.contentSvc.UpdateProgram(nil, program.ID, &form.ProgramForm{StartTime: "11:00"}, nil)
	assertStatus(t, err, http.StatusBadRequest)

	updated, err := f.contentSvc.UpdateProgram(nil, program.ID, &form.ProgramForm{StartTime: "9:00", Status: "inactive"}, nil)
	if err != nil {
		t.Fatalf("update program: %v", err)
	}
	if updated.StartTime != "09:00" || updated.EndTime != "10:00" || updated.Status != model.ProgramStatusInactive || updated.Title != "Morning Show" {
		t.Fatalf("unexpected program %+v", updated)
	}
	_, err = f.contentSvc.UpdateProgram(nil, "missing", &form.ProgramForm{Title: "x"}, nil)
	assertStatus(t, err, http.StatusNotFound)
}

func TestBroadcasterImageSwap(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	broadcaster, err := f.contentSvc.CreateBroadcaster(nil, &form.BroadcasterForm{
		ChannelID:   channel.ID,
		Name:        "Mona",
		SocialLinks: `{"instagram":"https://instagram.com/mona"}`,
	}, tempFile(t, "mona.jpg", "image/jpeg", nil))
	if err != nil {
		t.Fatalf("create broadcaster: %v", err)
	}
	old := broadcaster.Image.PublicID

	// 上传失败时保留旧图片
	f.media.failFolder = FolderBroadcasters
	_, err = f.contentSvc.UpdateBroadcaster(nil, broadcaster.ID, &form.BroadcasterForm{Name: "Mona S"}, tempFile(t, "new.jpg", "image/jpeg", nil))
	assertStatus(t, err, http.StatusInternalServerError)
	if f.media.isDestroyed(old) {
		t.Fatalf("old image destroyed before replacement was uploaded")
	}
	stored, _ := f.contentSvc.GetBroadcaster(nil, broadcaster.ID)
	if stored.Name != "Mona" {
		t.Fatalf("failed update changed the record: %+v", stored)
	}

	f.media.failFolder = ""
	updated, err := f.contentSvc.UpdateBroadcaster(nil, broadcaster.ID, &form.BroadcasterForm{Name: "Mona S"}, tempFile(t, "new.jpg", "image/jpeg", nil))
	if err != nil {
		t.Fatalf("update broadcaster: %v", err)
	}
	if updated.Image.PublicID == old || !f.media.isDestroyed(old) || updated.Name != "Mona S" {
		t.Fatalf("unexpected swap %+v, destroyed %v", updated.Image, f.media.destroyed)
	}

	_, err = f.contentSvc.UpdateBroadcaster(nil, broadcaster.ID, &form.BroadcasterForm{ChannelID: "missing"}, nil)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestInterviewProgramChecks(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	other := f.channel(t, "Seagulls Jazz")
	image := tempFile(t, "show.jpg", "image/jpeg", nil)
	program, err := f.contentSvc.CreateProgram(nil, programForm(other.ID, "Monday", "08:00", "10:00"), image)
	if err != nil {
		t.Fatalf("create program: %v", err)
	}
	video := tempFile(t, "talk.mp4", "video/mp4", nil)
	interview := func(channelID, programID, date string) *form.InterviewForm {
		return &form.InterviewForm{
			ChannelID:   channelID,
			ProgramID:   programID,
			Title:       "Talk",
			Date:        date,
			Description: "An interview",
		}
	}

	_, err = f.contentSvc.CreateInterview(nil, interview(channel.ID, program.ID, "2024-03-10"), video)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateInterview(nil, interview(channel.ID, "missing", "2024-03-10"), video)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateInterview(nil, interview(other.ID, program.ID, "2024-03-10"), nil)
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.CreateInterview(nil, interview(other.ID, program.ID, "tomorrow"), video)
	assertStatus(t, err, http.StatusBadRequest)
	if f.media.live() != 1 {
		t.Fatalf("rejected interviews uploaded media")
	}

	created, err := f.contentSvc.CreateInterview(nil, interview(other.ID, program.ID, "2024-03-10"), video)
	if err != nil {
		t.Fatalf("create interview: %v", err)
	}
	if created.Content == nil || created.Date.Day() != 10 || created.Channel == nil {
		t.Fatalf("unexpected interview %+v", created)
	}
}

func TestNewsPublishedAt(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	news := &form.NewsForm{ChannelID: channel.ID, Title: "Launch", Description: "We are live", Content: "Tune in"}

	created, err := f.contentSvc.CreateNews(nil, news, nil)
	if err != nil {
		t.Fatalf("create news: %v", err)
	}
	if !created.PublishedAt.Equal(wednesday) || created.Image != nil {
		t.Fatalf("unexpected news %+v", created)
	}

	dated := *news
	dated.PublishedAt = "2024-02-01"
	created, err = f.contentSvc.CreateNews(nil, &dated, tempFile(t, "n.jpg", "image/jpeg", nil))
	if err != nil {
		t.Fatalf("create dated news: %v", err)
	}
	if created.PublishedAt.Month() != 2 || created.Image == nil {
		t.Fatalf("unexpected news %+v", created)
	}

	missing := *news
	missing.ChannelID = "missing"
	_, err = f.contentSvc.CreateNews(nil, &missing, nil)
	assertStatus(t, err, http.StatusNotFound)
}

func TestEventDates(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	event := &form.EventForm{
		ChannelID:   channel.ID,
		Type:        model.EventTypeEvent,
		Title:       "Beach Concert",
		Description: "Live music",
		StartDate:   "2024-04-01",
		EndDate:     "2024-04-02",
		Address:     "Corniche",
	}
	created, err := f.contentSvc.CreateEvent(nil, event, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	_, err = f.contentSvc.UpdateEvent(nil, created.ID, &form.EventForm{EndDate: "2024-03-20"}, nil)
	assertStatus(t, err, http.StatusBadRequest)

	bad := *event
	bad.Type = "festival"
	_, err = f.contentSvc.CreateEvent(nil, &bad, nil)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestInquiries(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")

	ad, err := f.contentSvc.CreateAdvertisement(nil, &form.AdvertisementForm{
		ChannelID:   channel.ID,
		Name:        "Shop",
		Email:       "Shop@Example.com",
		PhoneNumber: "+1 201-555-0123",
		Message:     "We want a slot",
	})
	if err != nil {
		t.Fatalf("create advertisement: %v", err)
	}
	if ad.PhoneNumber != "+12015550123" || ad.Email != "shop@example.com" {
		t.Fatalf("unexpected advertisement %+v", ad)
	}
	_, err = f.contentSvc.CreateAdvertisement(nil, &form.AdvertisementForm{
		ChannelID: channel.ID, Name: "Shop", Email: "shop@example.com", PhoneNumber: "12", Message: "x",
	})
	assertStatus(t, err, http.StatusBadRequest)

	applicant, err := f.contentSvc.CreateApplicant(nil, &form.ApplicantForm{
		ChannelID:   channel.ID,
		Name:        "Sara",
		Email:       "sara@example.com",
		PhoneNumber: "+12015550123",
		Topic:       "Sailing",
		Job:         "Captain",
	})
	if err != nil {
		t.Fatalf("create applicant: %v", err)
	}
	if applicant.Status != model.ApplicantStatusPending {
		t.Fatalf("status = %s", applicant.Status)
	}
	updated, err := f.contentSvc.UpdateApplicantStatus(nil, applicant.ID, &form.ApplicantStatusForm{Status: "Approved"})
	if err != nil || updated.Status != model.ApplicantStatusApproved {
		t.Fatalf("update status: %+v, %v", updated, err)
	}
	_, err = f.contentSvc.UpdateApplicantStatus(nil, applicant.ID, &form.ApplicantStatusForm{Status: "maybe"})
	assertStatus(t, err, http.StatusBadRequest)
	assertStatus(t, f.contentSvc.DeleteApplicant(nil, "missing"), http.StatusNotFound)
}

func TestCompetitionLifecycle(t *testing.T) {
	f := newFixture(t)
	channel := f.channel(t, "Seagulls FM")
	user := f.account(t, model.RoleUser, "user@example.com")

	_, err := f.contentSvc.CreateCompetition(nil, &form.CompetitionForm{
		ChannelID: channel.ID, Title: "Quiz", Description: "Guess the song",
		StartDate: "2024-03-05", EndDate: "2024-03-20",
	})
	assertStatus(t, err, http.StatusBadRequest)

	competition, err := f.contentSvc.CreateCompetition(nil, &form.CompetitionForm{
		ChannelID: channel.ID, Title: "Quiz", Description: "Guess the song",
		StartDate: "2024-03-06", EndDate: "2024-03-20",
	})
	if err != nil {
		t.Fatalf("create competition: %v", err)
	}
	if _, err := f.contentSvc.SubmitAnswer(nil, user, competition.ID, &form.SubmissionForm{Answer: "Sea Breeze"}); err != nil {
		t.Fatalf("submit answer: %v", err)
	}
	_, err = f.contentSvc.SubmitAnswer(nil, user, competition.ID, &form.SubmissionForm{Answer: "  "})
	assertStatus(t, err, http.StatusBadRequest)
	_, err = f.contentSvc.SubmitAnswer(nil, user, "missing", &form.SubmissionForm{Answer: "x"})
	assertStatus(t, err, http.StatusNotFound)

	view, err := f.contentSvc.GetCompetitionWithSubmissions(nil, competition.ID)
	if err != nil {
		t.Fatalf("get competition: %v", err)
	}
	if len(view.Submissions) != 1 || view.Submissions[0].User == nil || view.Submissions[0].User.Email != user.Email {
		t.Fatalf("submissions = %+v", view.Submissions)
	}

	if err := f.contentSvc.DeleteCompetition(nil, competition.ID); err != nil {
		t.Fatalf("delete competition: %v", err)
	}
	if subs, _ := f.daos.Competitions.ListSubmissions(nil, competition.ID); len(subs) != 0 {
		t.Fatalf("submissions should be removed with the competition")
	}
}
