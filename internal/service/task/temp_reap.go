package task

import (
	"os"
	"path/filepath"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
)

// TempReapTask 删除上传目录中遗留的临时文件。
// 正常请求结束时会自己删除临时文件，这里只处理进程中断等情况留下的文件。
type TempReapTask struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
	xl     *xlog.Logger
}

func NewTempReapTask(conf utils.Config) *TempReapTask {
	return &TempReapTask{
		dir:    conf.Upload.TempDir,
		maxAge: time.Duration(conf.Upload.ReapAfterMinutes) * time.Minute,
		now:    time.Now,
		xl:     xlog.New("seagulls-temp-reap"),
	}
}

func (t *TempReapTask) Start() {
	t.Reap()
}

// Reap 返回删除的文件数。
func (t *TempReapTask) Reap() int {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			t.xl.Errorf("error reading temp dir %s: %v", t.dir, err)
		}
		return 0
	}
	deadline := t.now().Add(-t.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(deadline) {
			continue
		}
		p := filepath.Join(t.dir, entry.Name())
		if err := os.Remove(p); err != nil {
			t.xl.Errorf("failed to remove temp file %s: %v", p, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		t.xl.Infof("removed %d stale temp files from %s", removed, t.dir)
	}
	return removed
}
