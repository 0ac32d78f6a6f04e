package db

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao/memdao"
)

// wednesday 2024-03-06 10:00，所在配额周为 03-01 至 03-08。
var wednesday = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

type fakeMedia struct {
	mu         sync.Mutex
	n          int
	uploaded   []string
	destroyed  []string
	failFolder string
}

func (f *fakeMedia) Upload(xl *xlog.Logger, localPath string, folder string, resourceType string) (*model.MediaDo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFolder != "" && strings.HasPrefix(folder, f.failFolder) {
		return nil, fmt.Errorf("upload to %s refused", folder)
	}
	f.n++
	key := fmt.Sprintf("%s/%s/%d%s", cloud.MediaKeyPrefix, folder, f.n, filepath.Ext(localPath))
	f.uploaded = append(f.uploaded, key)
	return &model.MediaDo{PublicID: key, URL: "https://cdn.test/" + key, ResourceType: resourceType}, nil
}

func (f *fakeMedia) Destroy(xl *xlog.Logger, media *model.MediaDo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, media.PublicID)
	return nil
}

func (f *fakeMedia) isDestroyed(publicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.destroyed {
		if id == publicID {
			return true
		}
	}
	return false
}

// live 已上传且未删除的文件数。
func (f *fakeMedia) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploaded) - len(f.destroyed)
}

type fakeMailer struct {
	mu        sync.Mutex
	approvals []cloud.TrackApprovalMail
	otps      map[string]string
	err       error
}

func (m *fakeMailer) SendTrackApproval(xl *xlog.Logger, mail *cloud.TrackApprovalMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals = append(m.approvals, *mail)
	return m.err
}

func (m *fakeMailer) SendOTP(xl *xlog.Logger, to string, code string, expire time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.otps == nil {
		m.otps = make(map[string]string)
	}
	m.otps[to] = code
	return m.err
}

type fixture struct {
	now      time.Time
	conf     *utils.Config
	media    *fakeMedia
	mailer   *fakeMailer
	channels *memdao.ChannelDao
	accounts *memdao.AccountDao
	tracks   *memdao.UploadTrackDao
	approved *memdao.ApprovedTrackDao
	infos    *memdao.StaticInfoDao
	daos     ContentDaos

	channelSvc *ChannelService
	accountSvc *AccountService
	trackSvc   *TrackService
	infoSvc    *StaticInfoService
	contentSvc *ContentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		now:      wednesday,
		conf:     utils.NewSample(),
		media:    &fakeMedia{},
		mailer:   &fakeMailer{},
		channels: memdao.NewChannelDao(),
		accounts: memdao.NewAccountDao(),
		tracks:   memdao.NewUploadTrackDao(),
		approved: memdao.NewApprovedTrackDao(),
		infos:    memdao.NewStaticInfoDao(),
		daos: ContentDaos{
			Broadcasters:   memdao.NewBroadcasterDao(),
			Programs:       memdao.NewProgramDao(),
			Interviews:     memdao.NewInterviewDao(),
			News:           memdao.NewNewsDao(),
			Events:         memdao.NewEventDao(),
			Advertisements: memdao.NewAdvertisementDao(),
			Applicants:     memdao.NewApplicantDao(),
			Competitions:   memdao.NewCompetitionDao(),
		},
	}
	clock := func() time.Time { return f.now }
	referrers := f.daos.Referrers()
	referrers["static info"] = f.infos
	referrers["upload tracks"] = f.tracks
	referrers["approved tracks"] = f.approved

	f.channelSvc = NewChannelService(nil, f.channels, referrers)
	f.accountSvc = NewAccountService(nil, f.conf, f.accounts, f.media, f.mailer).WithClock(clock)
	f.trackSvc = NewTrackService(nil, f.channels, f.tracks, f.approved, f.accounts, f.media, f.mailer).WithClock(clock)
	f.infoSvc = NewStaticInfoService(nil, f.infos, f.channelSvc, f.media)
	f.contentSvc = NewContentService(nil, f.daos, f.channelSvc, f.accounts, f.media, f.conf.PhoneRegion).WithClock(clock)
	return f
}

func (f *fixture) channel(t *testing.T, name string) *model.ChannelDo {
	t.Helper()
	channel, err := f.channelSvc.Create(nil, name)
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	return channel
}

func (f *fixture) account(t *testing.T, role model.Role, email string) *model.AccountDo {
	t.Helper()
	account, err := f.accounts.Insert(nil, &model.AccountDo{
		Role:     role,
		Name:     "Test " + string(role),
		Email:    email,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
	return account
}

// tempFile 在测试临时目录中创建一个本地文件。
func tempFile(t *testing.T, name string, mimeType string, data []byte) *cloud.LocalFile {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return &cloud.LocalFile{Path: p, Filename: name, MimeType: mimeType, Size: int64(len(data))}
}

func pngFile(t *testing.T, name string, width, height int) *cloud.LocalFile {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	out, err := os.Create(p)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer out.Close()
	if err := png.Encode(out, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &cloud.LocalFile{Path: p, Filename: name, MimeType: "image/png"}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	if got := errors.HTTPStatus(err); got != want {
		t.Fatalf("status = %d, want %d (error %v)", got, want, err)
	}
}
