package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/service/cloud"
)

// FileKind 上传字段允许的文件类别。
type FileKind int

const (
	KindImage FileKind = iota
	KindAudioVideo
)

var imageTypes = map[string]bool{
	"image/jpeg":               true,
	"image/jpg":                true,
	"image/png":                true,
	"image/gif":                true,
	"image/webp":               true,
	"image/bmp":                true,
	"image/svg+xml":            true,
	"image/x-icon":             true,
	"image/vnd.microsoft.icon": true,
}

var avTypes = map[string]bool{
	"audio/mpeg":       true,
	"audio/mp3":        true,
	"audio/wav":        true,
	"audio/wave":       true,
	"audio/x-wav":      true,
	"audio/aac":        true,
	"audio/ogg":        true,
	"audio/webm":       true,
	"audio/flac":       true,
	"audio/m4a":        true,
	"video/mp4":        true,
	"video/mpeg":       true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/webm":       true,
	"video/ogg":        true,
	"video/x-matroska": true,
	"video/3gpp":       true,
	"video/x-flv":      true,
}

// Uploader 将 multipart 文件保存到本地临时目录。
type Uploader struct {
	conf utils.UploadConfig
}

func NewUploader(conf utils.UploadConfig) *Uploader {
	return &Uploader{conf: conf}
}

// tempFiles 一次请求中保存的临时文件，请求结束时统一删除。
type tempFiles struct {
	u     *Uploader
	c     *gin.Context
	xl    *xlog.Logger
	paths []string
}

func (u *Uploader) begin(c *gin.Context, xl *xlog.Logger) *tempFiles {
	return &tempFiles{u: u, c: c, xl: xl}
}

// get 没有上传该字段时返回 nil。
func (t *tempFiles) get(field string, kind FileKind) (*cloud.LocalFile, error) {
	header, err := t.c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, errors.InvalidArgument(fmt.Sprintf("Error reading %s: %v", field, err))
	}
	mimeType := strings.ToLower(header.Header.Get("Content-Type"))
	var limit int64
	switch kind {
	case KindAudioVideo:
		if !avTypes[mimeType] {
			return nil, errors.InvalidArgument(fmt.Sprintf("File type %s is not allowed! Allowed types: mp3, wav, aac, ogg, mp4, mov, avi, webm, mkv, 3gp, flv", mimeType))
		}
		limit = t.u.conf.MaxAVSizeMB << 20
	default:
		if !imageTypes[mimeType] {
			return nil, errors.InvalidArgument("Only image files are allowed!")
		}
		limit = t.u.conf.MaxImageSizeMB << 20
	}
	if header.Size > limit {
		return nil, errors.InvalidArgument(fmt.Sprintf("File too large. Maximum size is %dMB", limit>>20))
	}

	if err := os.MkdirAll(t.u.conf.TempDir, 0o755); err != nil {
		return nil, err
	}
	p := filepath.Join(t.u.conf.TempDir, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))
	if err := t.c.SaveUploadedFile(header, p); err != nil {
		return nil, err
	}
	t.paths = append(t.paths, p)
	return &cloud.LocalFile{
		Path:     p,
		Filename: header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
	}, nil
}

// path 头像等只需要本地路径的场景，没有文件时为空。
func (t *tempFiles) path(field string, kind FileKind) (string, error) {
	file, err := t.get(field, kind)
	if err != nil || file == nil {
		return "", err
	}
	return file.Path, nil
}

func (t *tempFiles) remove() {
	for _, p := range t.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			t.xl.Errorf("failed to remove temp file %s: %v", p, err)
		}
	}
}
