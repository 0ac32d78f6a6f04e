package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/form"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
	"github.com/solutions/seagulls/internal/service/dao/memdao"
	"github.com/solutions/seagulls/internal/service/db"
)

type memMedia struct {
	mu sync.Mutex
	n  int
}

func (m *memMedia) Upload(xl *xlog.Logger, localPath string, folder string, resourceType string) (*model.MediaDo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := os.Stat(localPath); err != nil {
		return nil, err
	}
	m.n++
	key := fmt.Sprintf("%s/%s/%d", cloud.MediaKeyPrefix, folder, m.n)
	return &model.MediaDo{PublicID: key, URL: "https://cdn.test/" + key, ResourceType: resourceType}, nil
}

func (m *memMedia) Destroy(xl *xlog.Logger, media *model.MediaDo) error {
	return nil
}

type testServer struct {
	conf   *utils.Config
	svc    Services
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conf := utils.NewSample()
	conf.Upload.TempDir = t.TempDir()

	media := &memMedia{}
	mailer, err := cloud.NewMailer(nil, &conf.Mail)
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	channels := memdao.NewChannelDao()
	accounts := memdao.NewAccountDao()
	tracks := memdao.NewUploadTrackDao()
	approved := memdao.NewApprovedTrackDao()
	infos := memdao.NewStaticInfoDao()
	daos := db.ContentDaos{
		Broadcasters:   memdao.NewBroadcasterDao(),
		Programs:       memdao.NewProgramDao(),
		Interviews:     memdao.NewInterviewDao(),
		News:           memdao.NewNewsDao(),
		Events:         memdao.NewEventDao(),
		Advertisements: memdao.NewAdvertisementDao(),
		Applicants:     memdao.NewApplicantDao(),
		Competitions:   memdao.NewCompetitionDao(),
	}
	referrers := daos.Referrers()
	referrers["static info"] = infos
	referrers["upload tracks"] = tracks
	referrers["approved tracks"] = approved

	var svc Services
	svc.Channels = db.NewChannelService(nil, channels, referrers)
	svc.Accounts = db.NewAccountService(nil, conf, accounts, media, mailer)
	svc.Content = db.NewContentService(nil, daos, svc.Channels, accounts, media, conf.PhoneRegion)
	svc.StaticInfo = db.NewStaticInfoService(nil, infos, svc.Channels, media)
	svc.Tracks = db.NewTrackService(nil, channels, tracks, approved, accounts, media, mailer)
	return &testServer{conf: conf, svc: svc, router: NewRouter(conf, svc)}
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	body := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func (s *testServer) token(t *testing.T, role model.Role, email string) string {
	t.Helper()
	_, token, err := s.svc.Accounts.Register(nil, role, &form.RegisterForm{
		Name:          "Test " + string(role),
		Email:         email,
		Password:      "secret123",
		PhoneOptional: true,
	}, "")
	if err != nil {
		t.Fatalf("register %s: %v", role, err)
	}
	return token
}

func (s *testServer) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(s.conf.Upload.TempDir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("temp dir should be empty, got %d entries", len(entries))
	}
}

type part struct {
	field, filename, mimeType string
	data                      []byte
}

func multipartRequest(t *testing.T, method, url string, fields map[string][]string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, p := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, p.field, p.filename))
		h.Set("Content-Type", p.mimeType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = w.Write(p.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || body["status"] != "OK" {
		t.Fatalf("health: %d %v", w.Code, body)
	}
	w, body = s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || body["message"] != "Welcome to SeagullsFM API" {
		t.Fatalf("welcome: %d %v", w.Code, body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/nothing", nil)
	req.Header.Set(model.RequestIDHeader, "req-123")
	w, body = s.do(req)
	if w.Code != http.StatusNotFound || body["success"] != false {
		t.Fatalf("not found: %d %v", w.Code, body)
	}
	if w.Header().Get(model.RequestIDHeader) != "req-123" || body["requestId"] != "req-123" {
		t.Fatalf("request id not echoed: %v", w.Header())
	}
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(httptest.NewRequest(http.MethodGet, "/api/user/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	w, _ = s.do(bearer(httptest.NewRequest(http.MethodGet, "/api/user/me", nil), "garbage"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", w.Code)
	}

	userToken := s.token(t, model.RoleUser, "user@example.com")
	w, body := s.do(bearer(httptest.NewRequest(http.MethodGet, "/api/user/me", nil), userToken))
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %v", w.Code, body)
	}
	data := body["data"].(map[string]interface{})
	if data["email"] != "user@example.com" {
		t.Fatalf("me data = %v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password must not be serialized")
	}

	w, body = s.do(bearer(multipartRequest(t, http.MethodPost, "/api/channel", map[string][]string{"name": {"X"}}), userToken))
	if w.Code != http.StatusForbidden || !strings.Contains(body["message"].(string), "Role user") {
		t.Fatalf("forbidden: %d %v", w.Code, body)
	}

	adminToken := s.token(t, model.RoleAdmin, "admin@example.com")
	w, _ = s.do(bearer(httptest.NewRequest(http.MethodGet, "/api/user/me", nil), adminToken))
	if w.Code != http.StatusForbidden {
		t.Fatalf("admin on user route: %d", w.Code)
	}
	w, _ = s.do(bearer(httptest.NewRequest(http.MethodGet, "/api/admin/me", nil), adminToken))
	if w.Code != http.StatusOK {
		t.Fatalf("admin me: %d", w.Code)
	}
}

func TestRegisterSetsCookie(t *testing.T) {
	s := newTestServer(t)

	req := multipartRequest(t, http.MethodPost, "/api/user/register", map[string][]string{
		"name":        {"Nour"},
		"email":       {"Nour@Example.com"},
		"password":    {"secret123"},
		"phoneNumber": {"+12015550123"},
	})
	w, body := s.do(req)
	if w.Code != http.StatusCreated || body["token"] == "" {
		t.Fatalf("register: %d %v", w.Code, body)
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == s.conf.Jwt.CookieName {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("token cookie missing: %v", w.Result().Cookies())
	}

	me := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	me.AddCookie(cookie)
	w, body = s.do(me)
	if w.Code != http.StatusOK {
		t.Fatalf("me with cookie: %d %v", w.Code, body)
	}

	w, _ = s.do(multipartRequest(t, http.MethodPost, "/api/user/register", map[string][]string{
		"name":        {"Nour"},
		"email":       {"nour@example.com"},
		"password":    {"secret123"},
		"phoneNumber": {"+12015550124"},
	}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: %d", w.Code)
	}
}

func TestTrackSubmitQuota(t *testing.T) {
	s := newTestServer(t)
	channel, err := s.svc.Channels.Create(nil, "Seagulls FM")
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	token := s.token(t, model.RoleUser, "listener@example.com")
	submit := func() (*httptest.ResponseRecorder, map[string]interface{}) {
		req := multipartRequest(t, http.MethodPost, "/api/uploadtrack", map[string][]string{
			"channelId": {channel.ID},
			"songName":  {"Blue Sea"},
			"genre":     {`["Pop","Jazz"]`},
		}, part{field: "songFile", filename: "blue.mp3", mimeType: "audio/mpeg", data: []byte("ID3")})
		return s.do(bearer(req, token))
	}

	w, body := submit()
	if w.Code != http.StatusCreated {
		t.Fatalf("first submit: %d %v", w.Code, body)
	}
	w, body = submit()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second submit: %d %v", w.Code, body)
	}
	if _, ok := body["resetDate"]; !ok {
		t.Fatalf("resetDate missing: %v", body)
	}
	s.assertTempDirEmpty(t)

	w, body = s.do(bearer(httptest.NewRequest(http.MethodGet, "/api/uploadtrack/my-tracks", nil), token))
	if w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("my tracks: %d %v", w.Code, body)
	}

	bad := multipartRequest(t, http.MethodPost, "/api/uploadtrack", map[string][]string{
		"channelId": {channel.ID},
		"songName":  {"Blue Sea"},
		"genre":     {"Pop"},
	}, part{field: "songFile", filename: "blue.txt", mimeType: "text/plain", data: []byte("x")})
	other := s.token(t, model.RoleUser, "other@example.com")
	w, _ = s.do(bearer(bad, other))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad mime: %d", w.Code)
	}
	s.assertTempDirEmpty(t)
}

func TestStaticInfoConflict(t *testing.T) {
	s := newTestServer(t)
	channel, err := s.svc.Channels.Create(nil, "Seagulls FM")
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	token := s.token(t, model.RoleAdmin, "staff@example.com")
	create := func() (*httptest.ResponseRecorder, map[string]interface{}) {
		req := multipartRequest(t, http.MethodPost, "/api/staticinfo", map[string][]string{
			"channelId":        {channel.ID},
			"aboutUS":          {"The voice of the coast"},
			"frequency":        {"98.1 FM"},
			"socialMediaLinks": {`{"facebook":"https://fb.com/seagulls"}`},
			"downloadApp":      {`{"AppStore":"https://apps.apple.com/x","GooglePlay":"https://play.google.com/x"}`},
			"metaTags":         {"radio,alexandria"},
			"metaDescription":  {"Seagulls radio"},
			"phoneNumber":      {"+12015550123"},
			"email":            {"hello@seagulls.fm"},
			"address":          {"Corniche"},
		},
			part{field: "frequencyimg", filename: "freq.png", mimeType: "image/png", data: pngBytes(t, 10, 20)},
			part{field: "favIcon", filename: "icon.png", mimeType: "image/png", data: pngBytes(t, 32, 32)},
		)
		return s.do(bearer(req, token))
	}

	w, body := create()
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %v", w.Code, body)
	}
	w, body = create()
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: %d %v", w.Code, body)
	}
	s.assertTempDirEmpty(t)

	w, body = s.do(httptest.NewRequest(http.MethodGet, "/api/staticinfo/"+channel.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d %v", w.Code, body)
	}
}

func TestChannelDeleteConflict(t *testing.T) {
	s := newTestServer(t)
	root := s.token(t, model.RoleSuperAdmin, "root@example.com")

	w, body := s.do(bearer(multipartRequest(t, http.MethodPost, "/api/channel", map[string][]string{"name": {"Seagulls FM"}}), root))
	if w.Code != http.StatusCreated {
		t.Fatalf("create channel: %d %v", w.Code, body)
	}
	channelID := body["data"].(map[string]interface{})["id"].(string)

	adminToken := s.token(t, model.RoleAdmin, "staff@example.com")
	req := multipartRequest(t, http.MethodPost, "/api/news", map[string][]string{
		"channelId":   {channelID},
		"title":       {"Opening day"},
		"description": {"First broadcast"},
		"content":     {"We are live"},
	})
	w, body = s.do(bearer(req, adminToken))
	if w.Code != http.StatusCreated {
		t.Fatalf("create news: %d %v", w.Code, body)
	}

	w, body = s.do(bearer(httptest.NewRequest(http.MethodDelete, "/api/channel/"+channelID, nil), root))
	if w.Code != http.StatusConflict {
		t.Fatalf("delete referenced channel: %d %v", w.Code, body)
	}

	w, body = s.do(httptest.NewRequest(http.MethodGet, "/api/news?channelId="+channelID, nil))
	if w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("list news: %d %v", w.Code, body)
	}
}

func TestTrackReviewRoutes(t *testing.T) {
	s := newTestServer(t)
	channel, err := s.svc.Channels.Create(nil, "Seagulls FM")
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	owner := s.token(t, model.RoleUser, "listener@example.com")
	stranger := s.token(t, model.RoleUser, "stranger@example.com")
	admin := s.token(t, model.RoleAdmin, "staff@example.com")

	req := multipartRequest(t, http.MethodPost, "/api/uploadtrack", map[string][]string{
		"channelId": {channel.ID},
		"songName":  {"Blue Sea"},
		"genre":     {"Pop"},
	}, part{field: "songFile", filename: "blue.mp3", mimeType: "audio/mpeg", data: []byte("ID3")})
	w, body := s.do(bearer(req, owner))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %v", w.Code, body)
	}
	trackID := body["data"].(map[string]interface{})["id"].(string)

	day := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	approve := `{"date":"` + day + `","time":"14:30"}`

	// 普通用户不能审核
	w, _ = s.do(bearer(jsonRequest(http.MethodPut, "/api/uploadtrack/"+trackID+"/status", `{"status":"Checked"}`), owner))
	if w.Code != http.StatusForbidden {
		t.Fatalf("user status update: %d", w.Code)
	}
	w, _ = s.do(bearer(jsonRequest(http.MethodPost, "/api/uploadtrack/"+trackID+"/approve", approve), owner))
	if w.Code != http.StatusForbidden {
		t.Fatalf("user approve: %d", w.Code)
	}

	w, body = s.do(bearer(jsonRequest(http.MethodPut, "/api/uploadtrack/"+trackID+"/status", `{"status":"Checked"}`), admin))
	if w.Code != http.StatusOK {
		t.Fatalf("status update: %d %v", w.Code, body)
	}
	w, body = s.do(bearer(jsonRequest(http.MethodPost, "/api/uploadtrack/"+trackID+"/approve", approve), admin))
	if w.Code != http.StatusOK {
		t.Fatalf("approve: %d %v", w.Code, body)
	}

	listApproved := func(query string) (*httptest.ResponseRecorder, map[string]interface{}) {
		return s.do(httptest.NewRequest(http.MethodGet, "/api/uploadtrack/approved/list"+query, nil))
	}
	w, body = listApproved("?date=" + day)
	if w.Code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("approved on %s: %d %v", day, w.Code, body)
	}
	nextDay := time.Now().AddDate(0, 0, 4).Format("2006-01-02")
	w, body = listApproved("?date=" + nextDay + "&channelId=" + channel.ID)
	if w.Code != http.StatusOK || body["count"] != float64(0) {
		t.Fatalf("approved on %s: %d %v", nextDay, w.Code, body)
	}
	w, _ = listApproved("?date=tomorrow")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: %d", w.Code)
	}

	w, _ = s.do(bearer(httptest.NewRequest(http.MethodDelete, "/api/uploadtrack/"+trackID, nil), stranger))
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: %d", w.Code)
	}
	w, body = s.do(bearer(httptest.NewRequest(http.MethodDelete, "/api/uploadtrack/"+trackID, nil), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: %d %v", w.Code, body)
	}
	w, body = listApproved("")
	if w.Code != http.StatusOK || body["count"] != float64(0) {
		t.Fatalf("schedule should go with the track: %d %v", w.Code, body)
	}
}
