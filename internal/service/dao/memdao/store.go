// Package memdao 提供 dao 包各接口的内存实现，供单元测试使用，不依赖 mongo。
package memdao

import (
	"sync"
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/seagulls/internal/service/dao"
)

// fields 通用存储需要读写的文档字段。
type fields struct {
	id        *string
	channelID string
	created   *time.Time
	updated   *time.Time
}

// store 按插入顺序保存文档副本。
type store[T any] struct {
	mu     sync.Mutex
	ids    []string
	docs   map[string]T
	access func(*T) fields
	// conflict 判断两条文档是否违反唯一约束。
	conflict func(a, b *T) bool
}

func newStore[T any](access func(*T) fields) *store[T] {
	return &store[T]{
		docs:   make(map[string]T),
		access: access,
	}
}

func (s *store[T]) insert(doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflict != nil {
		for _, id := range s.ids {
			existing := s.docs[id]
			if s.conflict(&existing, doc) {
				return dao.ErrDuplicate
			}
		}
	}
	f := s.access(doc)
	*f.id = bson.NewObjectId().Hex()
	if f.created != nil {
		if f.created.IsZero() {
			*f.created = time.Now()
		}
		*f.updated = *f.created
	}
	s.ids = append(s.ids, *f.id)
	s.docs[*f.id] = *doc
	return nil
}

func (s *store[T]) update(doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.access(doc)
	if _, ok := s.docs[*f.id]; !ok {
		return mgo.ErrNotFound
	}
	if f.updated != nil {
		*f.updated = time.Now()
	}
	s.docs[*f.id] = *doc
	return nil
}

func (s *store[T]) get(id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, mgo.ErrNotFound
	}
	return &doc, nil
}

func (s *store[T]) find(match func(*T) bool) (*T, error) {
	for _, doc := range s.filter(match) {
		return &doc, nil
	}
	return nil, mgo.ErrNotFound
}

func (s *store[T]) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return mgo.ErrNotFound
	}
	delete(s.docs, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *store[T]) removeWhere(match func(*T) bool) int {
	removed := 0
	for _, doc := range s.filter(match) {
		if s.remove(*s.access(&doc).id) == nil {
			removed++
		}
	}
	return removed
}

func (s *store[T]) filter(match func(*T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]T, 0)
	for _, id := range s.ids {
		doc := s.docs[id]
		if match == nil || match(&doc) {
			res = append(res, doc)
		}
	}
	return res
}

func (s *store[T]) byChannel(channelID string) func(*T) bool {
	return func(doc *T) bool {
		return channelID == "" || s.access(doc).channelID == channelID
	}
}

// Content 频道内容类 DAO 的内存实现。
type Content[T any] struct {
	*store[T]
}

func newContent[T any](access func(*T) fields) *Content[T] {
	return &Content[T]{newStore(access)}
}

func (c *Content[T]) Insert(_ *xlog.Logger, doc *T) (*T, error) {
	if err := c.insert(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Content[T]) Update(_ *xlog.Logger, doc *T) error {
	return c.update(doc)
}

func (c *Content[T]) Select(_ *xlog.Logger, id string) (*T, error) {
	return c.get(id)
}

func (c *Content[T]) Delete(_ *xlog.Logger, id string) error {
	return c.remove(id)
}

func (c *Content[T]) List(_ *xlog.Logger, channelID string) ([]T, error) {
	return c.filter(c.byChannel(channelID)), nil
}

func (c *Content[T]) CountByChannel(_ *xlog.Logger, channelID string) (int, error) {
	return len(c.filter(c.byChannel(channelID))), nil
}

// Len 当前保存的文档数。
func (c *Content[T]) Len() int {
	return len(c.filter(nil))
}
