package errors

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidArgument("bad"), http.StatusBadRequest},
		{New(ServerErrorChannelNotFound, "Channel not found"), http.StatusBadRequest},
		{New(ServerErrorBadCredentials, "Invalid credentials"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("Track not found"), http.StatusNotFound},
		{Conflict("exists"), http.StatusConflict},
		{NewQuotaExceeded(time.Now()), http.StatusTooManyRequests},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
		{New(ServerErrorMediaUploadFail, "upload"), http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestSummary(t *testing.T) {
	if s, ok := Summary(NotFound("Track not found")); !ok || s != "Track not found" {
		t.Fatalf("unexpected summary %q %v", s, ok)
	}
	if _, ok := Summary(fmt.Errorf("plain")); ok {
		t.Fatal("plain errors carry no summary")
	}
	reset := time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local)
	q := NewQuotaExceeded(reset)
	if s, ok := Summary(q); !ok || s == "" {
		t.Fatal("quota error should carry a summary")
	}
	if !q.ResetDate.Equal(reset) {
		t.Fatalf("reset date = %v", q.ResetDate)
	}
}

func TestDetail(t *testing.T) {
	cause := fmt.Errorf("bucket not found")
	err := Wrap(ServerErrorMediaUploadFail, "Error uploading song file", cause)
	if Detail(err) != "bucket not found" {
		t.Fatalf("detail = %q", Detail(err))
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
	if Detail(NotFound("x")) != "" {
		t.Fatal("errors without cause have no detail")
	}
}
