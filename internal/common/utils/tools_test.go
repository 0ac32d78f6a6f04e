package utils

import (
	"testing"
	"time"
)

func TestTrimQuotes(t *testing.T) {
	cases := map[string]string{
		`"Pop"`:      "Pop",
		`'Jazz'`:     "Jazz",
		`""Rock""`:   "Rock",
		` "R&B" `:    "R&B",
		`Hip Hop`:    "Hip Hop",
		`"`:          `"`,
		`"unclosed`:  `"unclosed`,
		``:           ``,
		`["a","b"]`:  `["a","b"]`,
		`"["a"]"`:    `["a"]`,
		`  spaced  `: "spaced",
	}
	for in, want := range cases {
		if got := TrimQuotes(in); got != want {
			t.Errorf("TrimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateDigits(t *testing.T) {
	code, err := GenerateDigits(6)
	if err != nil {
		t.Fatalf("generate digits: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("unexpected rune %q in %q", r, code)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 6, 15, 4, 5, 6, time.Local)
	got := StartOfDay(in)
	want := time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}
}

func TestNewReqID(t *testing.T) {
	a := NewReqID()
	time.Sleep(time.Millisecond)
	b := NewReqID()
	if a == "" || a == b {
		t.Fatalf("request ids should be non-empty and distinct, got %q and %q", a, b)
	}
}

func TestNewSample(t *testing.T) {
	c := NewSample()
	if c.Upload.MaxAVSizeMB != 100 || c.OTP.Length != 6 || c.Jwt.CookieName != "token" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}
