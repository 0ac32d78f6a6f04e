package db

import (
	"github.com/qiniu/x/xlog"

	"github.com/solutions/seagulls/internal/protodef/errors"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/cloud"
)

// UploadMedia 上传失败时返回 500，summary 说明是哪个文件。
func UploadMedia(xl *xlog.Logger, store cloud.MediaStore, file *cloud.LocalFile, folder string, summary string) (*model.MediaDo, error) {
	media, err := store.Upload(xl, file.Path, folder, file.ResourceType())
	if err != nil {
		return nil, errors.Wrap(errors.ServerErrorMediaUploadFail, summary, err)
	}
	return media, nil
}

// mediaSwap 更新时替换媒体文件：先上传新文件，保存成功后 Commit 删除旧文件，保存失败时 Rollback 删除新文件。
type mediaSwap struct {
	store cloud.MediaStore
	old   *model.MediaDo
	new   *model.MediaDo
}

// swapMedia file 为 nil 时不替换，Media 返回原文件。
func swapMedia(xl *xlog.Logger, store cloud.MediaStore, old *model.MediaDo, file *cloud.LocalFile, folder string, summary string) (*mediaSwap, error) {
	swap := &mediaSwap{store: store, old: old}
	if file == nil {
		return swap, nil
	}
	media, err := UploadMedia(xl, store, file, folder, summary)
	if err != nil {
		return nil, err
	}
	swap.new = media
	return swap, nil
}

func (m *mediaSwap) Media() *model.MediaDo {
	if m.new != nil {
		return m.new
	}
	return m.old
}

func (m *mediaSwap) Commit(xl *xlog.Logger) {
	if m.new != nil {
		cloud.BestEffortDestroy(xl, m.store, m.old)
	}
}

func (m *mediaSwap) Rollback(xl *xlog.Logger) {
	cloud.BestEffortDestroy(xl, m.store, m.new)
}
