package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
)

func TestTempReap(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	stale := filepath.Join(dir, "stale.mp3")
	fresh := filepath.Join(dir, "fresh.mp3")
	for _, p := range []string{stale, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(stale, now.Add(-2*time.Hour), now.Add(-2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	conf := utils.NewSample()
	conf.Upload.TempDir = dir
	conf.Upload.ReapAfterMinutes = 60
	reaper := NewTempReapTask(*conf)
	reaper.now = func() time.Time { return now }

	if n := reaper.Reap(); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale file should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh file should stay: %v", err)
	}

	reaper.dir = filepath.Join(dir, "missing")
	if n := reaper.Reap(); n != 0 {
		t.Fatalf("missing dir removed %d", n)
	}
}

type fakeCleaner struct {
	calls int
	err   error
}

func (f *fakeCleaner) ClearExpiredOTP(xl *xlog.Logger) (int, error) {
	f.calls++
	return 2, f.err
}

func TestOTPSweep(t *testing.T) {
	cleaner := &fakeCleaner{}
	task := NewOTPSweepTask(cleaner)
	task.Start()
	cleaner.err = errors.New("mongo down")
	task.Start()
	if cleaner.calls != 2 {
		t.Fatalf("calls = %d", cleaner.calls)
	}
}
