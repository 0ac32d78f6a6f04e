package form

import (
	"testing"
	"time"
)

func TestParseStringList(t *testing.T) {
	cases := []struct {
		raw  []string
		want []string
	}{
		{[]string{`["Pop","Jazz"]`}, []string{"Pop", "Jazz"}},
		{[]string{"Pop", "Jazz"}, []string{"Pop", "Jazz"}},
		{[]string{`"Rock"`}, []string{"Rock"}},
		{[]string{""}, []string{}},
		{nil, []string{}},
	}
	for _, c := range cases {
		got := ParseStringList(c.raw)
		if len(got) != len(c.want) {
			t.Fatalf("ParseStringList(%v) = %v, want %v", c.raw, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("ParseStringList(%v) = %v, want %v", c.raw, got, c.want)
			}
		}
	}
}

func TestTrackSubmitGenres(t *testing.T) {
	ok := TrackSubmitForm{ChannelID: "c1", SongName: "Song", Genre: ParseStringList([]string{`["Pop","Jazz"]`})}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected Pop+Jazz to be accepted, got %v", err)
	}
	bad := TrackSubmitForm{ChannelID: "c1", SongName: "Song", Genre: []string{"Pop", "Opera"}}
	if err := bad.Validate(); err == nil || err.Error() != ErrGenreMsg {
		t.Fatalf("expected genre error, got %v", err)
	}
	missing := TrackSubmitForm{ChannelID: "c1", Genre: []string{"Pop"}}
	if err := missing.ValidateRequired(); err == nil {
		t.Fatal("expected missing songName to be rejected")
	}
}

func TestTimeRegex(t *testing.T) {
	valid := []string{"00:00", "9:05", "14:30", "23:59"}
	invalid := []string{"24:00", "12:60", "1230", "ab:cd", ""}
	for _, v := range valid {
		if !TimeRegex.MatchString(v) {
			t.Errorf("%q should match", v)
		}
	}
	for _, v := range invalid {
		if TimeRegex.MatchString(v) {
			t.Errorf("%q should not match", v)
		}
	}
}

func TestClock(t *testing.T) {
	if got := Clock("9:05"); got != "09:05" {
		t.Fatalf("Clock(9:05) = %q", got)
	}
	if got := Clock("23:59"); got != "23:59" {
		t.Fatalf("Clock(23:59) = %q", got)
	}
	if got := Clock("bad"); got != "bad" {
		t.Fatalf("Clock(bad) = %q", got)
	}
}

func TestTrackApproveForm(t *testing.T) {
	f := TrackApproveForm{Date: "2024-03-11", Time: "14:30"}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	day, at, err := f.ScheduledAt(time.Local)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local); !day.Equal(want) {
		t.Fatalf("day = %v, want %v", day, want)
	}
	if want := time.Date(2024, 3, 11, 14, 30, 0, 0, time.Local); !at.Equal(want) {
		t.Fatalf("at = %v, want %v", at, want)
	}
	if err := (&TrackApproveForm{Date: "2024-03-11", Time: "25:00"}).Validate(); err == nil {
		t.Fatal("expected invalid time to be rejected")
	}
	if err := (&TrackApproveForm{Date: "2024-03-11"}).Validate(); err == nil {
		t.Fatal("expected missing time to be rejected")
	}
	if err := (&TrackApproveForm{Date: "not-a-date", Time: "10:00"}).Validate(); err == nil {
		t.Fatal("expected invalid date to be rejected")
	}
}

func TestProgramForm(t *testing.T) {
	f := ProgramForm{ChannelID: "c1", Title: "Morning", Description: "Show", Day: "Monday", StartTime: "08:00", EndTime: "10:00"}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	f.EndTime = "07:00"
	if err := f.Validate(); err == nil {
		t.Fatal("expected end before start to be rejected")
	}
	f = ProgramForm{ChannelID: "c1", Title: "Morning", Description: "Show", Day: "Funday", StartTime: "08:00", EndTime: "10:00"}
	if err := f.Validate(); err == nil {
		t.Fatal("expected invalid day to be rejected")
	}
	partial := ProgramForm{Status: "inactive", Partial: true}
	if err := partial.Validate(); err != nil {
		t.Fatalf("partial update should only validate supplied fields, got %v", err)
	}
}

func TestValidateFavIcon(t *testing.T) {
	for _, size := range FavIconSizes {
		if err := ValidateFavIcon(size, size); err != nil {
			t.Errorf("%d should be accepted: %v", size, err)
		}
	}
	if err := ValidateFavIcon(32, 16); err == nil {
		t.Error("non-square favicon should be rejected")
	}
	if err := ValidateFavIcon(100, 100); err == nil {
		t.Error("unsupported size should be rejected")
	}
}

func TestStaticInfoForm(t *testing.T) {
	f := StaticInfoForm{
		ChannelID:        "c1",
		AboutUS:          "about",
		Frequency:        "90.9",
		SocialMediaLinks: `{"facebook":"https://fb.com/x"}`,
		DownloadApp:      `{"AppStore":"https://apps.apple.com/x","GooglePlay":"https://play.google.com/x"}`,
		MetaTags:         "radio",
		MetaDescription:  "desc",
		PhoneNumber:      "+201000000000",
		Email:            "Info@Seagulls.com",
		Address:          "Alexandria",
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	if f.Email != "info@seagulls.com" {
		t.Fatalf("email should be lowercased, got %q", f.Email)
	}
	if f.Links()["facebook"] != "https://fb.com/x" || f.App().GooglePlay == "" {
		t.Fatalf("unexpected parsed values %v %v", f.Links(), f.App())
	}
	f.DownloadApp = `{"AppStore":"x"}`
	if err := f.Validate(); err == nil {
		t.Fatal("missing GooglePlay should be rejected")
	}
}

func TestCompetitionForm(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.Local)
	f := CompetitionForm{ChannelID: "c1", Title: "Quiz", Description: "d", StartDate: "2024-03-06", EndDate: "2024-03-10", Now: now}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	f.StartDate = "2024-03-01"
	if err := f.Validate(); err == nil {
		t.Fatal("start date in the past should be rejected")
	}
	f.StartDate = "2024-03-10"
	if err := f.Validate(); err == nil {
		t.Fatal("end date equal to start date should be rejected")
	}
}

func TestCompetitionFormDates(t *testing.T) {
	f := CompetitionForm{StartDate: "2024-03-06", EndDate: "2024-03-10"}
	start, end, err := f.Dates(time.Local)
	if err != nil {
		t.Fatal(err)
	}
	if start.Day() != 6 || end.Day() != 10 {
		t.Fatalf("start %v end %v", start, end)
	}

	f = CompetitionForm{EndDate: "2024-03-10"}
	start, _, err = f.Dates(time.Local)
	if err != nil || !start.IsZero() {
		t.Fatalf("missing start date should stay zero: %v, %v", start, err)
	}

	f = CompetitionForm{StartDate: "2024-03-06", EndDate: "someday"}
	if _, _, err := f.Dates(time.Local); err == nil {
		t.Fatal("unparsable end date should be reported")
	}
}
