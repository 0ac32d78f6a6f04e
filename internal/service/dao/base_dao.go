package dao

import (
	"errors"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/seagulls/internal/common/utils"
)

// ErrDuplicate 违反唯一索引。
var ErrDuplicate = errors.New("duplicate key")

// ChannelReferrer 按频道统计引用数量，删除频道前使用。
type ChannelReferrer interface {
	CountByChannel(xl *xlog.Logger, channelID string) (int, error)
}

// Dial 建立 mongo 连接，整个进程共用一个 session。
func Dial(xl *xlog.Logger, config *utils.MongoConfig) (*mgo.Session, error) {
	if xl == nil {
		xl = xlog.New("seagulls-mongo")
	}
	session, err := mgo.Dial(config.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	session.SetMode(mgo.Monotonic, true)
	return session, nil
}

// mongoColl 各个 DAO 共用的集合操作。
type mongoColl struct {
	coll *mgo.Collection
	xl   *xlog.Logger
}

func newMongoColl(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig, name string) mongoColl {
	if xl == nil {
		xl = xlog.New("seagulls-" + name)
	}
	return mongoColl{
		coll: session.DB(config.Database).C(name),
		xl:   xl,
	}
}

func (m *mongoColl) logger(xl *xlog.Logger) *xlog.Logger {
	if xl == nil {
		return m.xl
	}
	return xl
}

func (m *mongoColl) ensureIndex(index mgo.Index) error {
	index.Background = true
	err := m.coll.EnsureIndex(index)
	if err != nil {
		m.xl.Errorf("failed to ensure index %v on %s, error %v", index.Key, m.coll.Name, err)
	}
	return err
}

func (m *mongoColl) insert(xl *xlog.Logger, doc interface{}) error {
	xl = m.logger(xl)
	err := m.coll.Insert(doc)
	if err != nil {
		if mgo.IsDup(err) {
			xl.Infof("duplicate key when inserting into %s", m.coll.Name)
			return ErrDuplicate
		}
		xl.Errorf("insert into %s failed, error %v", m.coll.Name, err)
		return err
	}
	return nil
}

func (m *mongoColl) updateID(xl *xlog.Logger, id string, doc interface{}) error {
	xl = m.logger(xl)
	err := m.coll.UpdateId(id, doc)
	if err != nil {
		if mgo.IsDup(err) {
			return ErrDuplicate
		}
		if err != mgo.ErrNotFound {
			xl.Errorf("update %s %s failed, error %v", m.coll.Name, id, err)
		}
		return err
	}
	return nil
}

func (m *mongoColl) selectID(xl *xlog.Logger, id string, result interface{}) error {
	return m.selectOne(xl, bson.M{"_id": id}, result)
}

func (m *mongoColl) selectOne(xl *xlog.Logger, query bson.M, result interface{}) error {
	xl = m.logger(xl)
	err := m.coll.Find(query).One(result)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("can't find record in %s for %v", m.coll.Name, query)
		} else {
			xl.Errorf("select from %s failed, error %v", m.coll.Name, err)
		}
		return err
	}
	return nil
}

func (m *mongoColl) removeID(xl *xlog.Logger, id string) error {
	xl = m.logger(xl)
	err := m.coll.RemoveId(id)
	if err != nil {
		if err != mgo.ErrNotFound {
			xl.Errorf("delete from %s failed, error %v", m.coll.Name, err)
		}
		return err
	}
	return nil
}

func (m *mongoColl) removeAll(xl *xlog.Logger, query bson.M) (int, error) {
	xl = m.logger(xl)
	info, err := m.coll.RemoveAll(query)
	if err != nil {
		xl.Errorf("delete from %s failed, error %v", m.coll.Name, err)
		return 0, err
	}
	return info.Removed, nil
}

func (m *mongoColl) list(xl *xlog.Logger, query bson.M, result interface{}, sort ...string) error {
	xl = m.logger(xl)
	q := m.coll.Find(query)
	if len(sort) > 0 {
		q = q.Sort(sort...)
	}
	if err := q.All(result); err != nil {
		xl.Errorf("list %s failed, error %v", m.coll.Name, err)
		return err
	}
	return nil
}

func (m *mongoColl) count(xl *xlog.Logger, query bson.M) (int, error) {
	xl = m.logger(xl)
	n, err := m.coll.Find(query).Count()
	if err != nil {
		xl.Errorf("count %s failed, error %v", m.coll.Name, err)
		return 0, err
	}
	return n, nil
}

// CountByChannel 被内容类 DAO 继承，实现 ChannelReferrer。
func (m *mongoColl) CountByChannel(xl *xlog.Logger, channelID string) (int, error) {
	return m.count(xl, bson.M{"channel_id": channelID})
}

func channelQuery(channelID string) bson.M {
	query := bson.M{}
	if channelID != "" {
		query["channel_id"] = channelID
	}
	return query
}

func newID() string {
	return bson.NewObjectId().Hex()
}
