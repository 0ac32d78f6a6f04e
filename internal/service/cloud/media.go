package cloud

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
)

// MediaKeyPrefix 所有媒体文件在空间中的公共前缀。
const MediaKeyPrefix = "seagulls"

// LocalFile 已保存到本地临时目录、等待上传的文件。
type LocalFile struct {
	Path     string
	Filename string
	MimeType string
	Size     int64
}

// ResourceType 根据 MIME 类型区分音频和视频，其余按图片处理。
func (f *LocalFile) ResourceType() string {
	switch {
	case strings.HasPrefix(f.MimeType, "audio/"):
		return model.ResourceTypeAudio
	case strings.HasPrefix(f.MimeType, "video/"):
		return model.ResourceTypeVideo
	}
	return model.ResourceTypeImage
}

// MediaStore 托管媒体文件的外部存储。
type MediaStore interface {
	// Upload 上传本地文件到 folder 目录下，返回远端的 publicId 与访问地址。
	Upload(xl *xlog.Logger, localPath string, folder string, resourceType string) (*model.MediaDo, error)
	// Destroy 删除远端文件。
	Destroy(xl *xlog.Logger, media *model.MediaDo) error
}

// KodoMediaStore 基于七牛云对象存储的实现。
type KodoMediaStore struct {
	conf          *utils.QiniuStorageConfig
	mac           *qbox.Mac
	uploader      *storage.FormUploader
	bucketManager *storage.BucketManager
	xl            *xlog.Logger
}

func NewKodoMediaStore(xl *xlog.Logger, conf *utils.Config) (*KodoMediaStore, error) {
	if xl == nil {
		xl = xlog.New("seagulls-media")
	}
	if conf.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket not configured")
	}
	mac := qbox.NewMac(conf.QiniuKeyPair.AccessKey, conf.QiniuKeyPair.SecretKey)
	cfg := storage.Config{
		// 是否使用https域名
		UseHTTPS: conf.Storage.UseHTTPS,
		// 上传是否使用CDN上传加速
		UseCdnDomains: false,
	}
	if zone, ok := zoneByID(conf.Storage.Zone); ok {
		cfg.Zone = zone
	}
	return &KodoMediaStore{
		conf:          &conf.Storage,
		mac:           mac,
		uploader:      storage.NewFormUploader(&cfg),
		bucketManager: storage.NewBucketManager(mac, &cfg),
		xl:            xl,
	}, nil
}

// zoneByID 空间对应的机房，未配置时由 SDK 自动查询。
func zoneByID(id string) (*storage.Zone, bool) {
	switch id {
	case "z0":
		return &storage.ZoneHuadong, true
	case "z1":
		return &storage.ZoneHuabei, true
	case "z2":
		return &storage.ZoneHuanan, true
	case "na0":
		return &storage.ZoneBeimei, true
	case "as0":
		return &storage.ZoneXinjiapo, true
	}
	return nil, false
}

// MediaKey 生成 seagulls/<folder>/<uuid><ext> 形式的文件名。
func MediaKey(folder string, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return path.Join(MediaKeyPrefix, folder, uuid.NewString()+ext)
}

func (s *KodoMediaStore) Upload(xl *xlog.Logger, localPath string, folder string, resourceType string) (*model.MediaDo, error) {
	if xl == nil {
		xl = s.xl
	}
	putPolicy := storage.PutPolicy{
		Scope: s.conf.Bucket,
	}
	upToken := putPolicy.UploadToken(s.mac)
	key := MediaKey(folder, localPath)
	ret := storage.PutRet{}
	err := s.uploader.PutFile(context.Background(), &ret, upToken, key, localPath, nil)
	if err != nil {
		xl.Errorf("upload %s to %s failed, error %v", localPath, key, err)
		return nil, err
	}
	xl.Infof("media uploaded, key %s", ret.Key)
	return &model.MediaDo{
		PublicID:     ret.Key,
		URL:          strings.TrimSuffix(s.conf.URLPrefix, "/") + "/" + ret.Key,
		ResourceType: resourceType,
	}, nil
}

func (s *KodoMediaStore) Destroy(xl *xlog.Logger, media *model.MediaDo) error {
	if xl == nil {
		xl = s.xl
	}
	if media.Empty() {
		return nil
	}
	err := s.bucketManager.Delete(s.conf.Bucket, media.PublicID)
	if err != nil {
		xl.Errorf("delete media %s failed, error %v", media.PublicID, err)
		return err
	}
	return nil
}

// BestEffortDestroy 删除远端文件，失败只记录日志。
func BestEffortDestroy(xl *xlog.Logger, store MediaStore, media *model.MediaDo) {
	if store == nil || media.Empty() {
		return
	}
	if err := store.Destroy(xl, media); err != nil {
		xl.Errorf("failed to destroy media %s, error %v", media.PublicID, err)
	}
}
