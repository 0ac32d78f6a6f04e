package dao

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/seagulls/internal/common/utils"
	"github.com/solutions/seagulls/internal/protodef/model"
	"github.com/solutions/seagulls/internal/service/db/dao"
)

// TrackFilter 投稿列表的筛选条件，空字段不参与筛选。
type TrackFilter struct {
	Status    model.TrackStatus
	ChannelID string
	UserID    string
}

type UploadTrackDaoInterface interface {
	ChannelReferrer

	// Insert 同一用户同一配额周重复插入时返回 ErrDuplicate。
	Insert(xl *xlog.Logger, track *model.UploadTrackDo) (*model.UploadTrackDo, error)

	Update(xl *xlog.Logger, track *model.UploadTrackDo) error

	Select(xl *xlog.Logger, trackID string) (*model.UploadTrackDo, error)

	Delete(xl *xlog.Logger, trackID string) error

	// CountByUserBetween 统计用户在 [start, end) 内创建的投稿数。
	CountByUserBetween(xl *xlog.Logger, userID string, start, end time.Time) (int, error)

	List(xl *xlog.Logger, filter TrackFilter) ([]model.UploadTrackDo, error)
}

type UploadTrackDaoService struct {
	mongoColl
}

func NewUploadTrackDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) (*UploadTrackDaoService, error) {
	s := &UploadTrackDaoService{newMongoColl(xl, session, config, dao.CollectionUploadTrack)}
	if err := s.ensureIndex(mgo.Index{Key: []string{"user_id", "quota_week"}, Unique: true}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UploadTrackDaoService) Insert(xl *xlog.Logger, track *model.UploadTrackDo) (*model.UploadTrackDo, error) {
	track.ID = newID()
	if track.CreatedTime.IsZero() {
		track.CreatedTime = time.Now()
	}
	track.UpdatedTime = track.CreatedTime
	if err := s.insert(xl, track); err != nil {
		return nil, err
	}
	return track, nil
}

func (s *UploadTrackDaoService) Update(xl *xlog.Logger, track *model.UploadTrackDo) error {
	track.UpdatedTime = time.Now()
	return s.updateID(xl, track.ID, track)
}

func (s *UploadTrackDaoService) Select(xl *xlog.Logger, trackID string) (*model.UploadTrackDo, error) {
	var track model.UploadTrackDo
	if err := s.selectID(xl, trackID, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

func (s *UploadTrackDaoService) Delete(xl *xlog.Logger, trackID string) error {
	return s.removeID(xl, trackID)
}

func (s *UploadTrackDaoService) CountByUserBetween(xl *xlog.Logger, userID string, start, end time.Time) (int, error) {
	return s.count(xl, bson.M{
		"user_id":      userID,
		"created_time": bson.M{"$gte": start, "$lt": end},
	})
}

func (s *UploadTrackDaoService) List(xl *xlog.Logger, filter TrackFilter) ([]model.UploadTrackDo, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ChannelID != "" {
		query["channel_id"] = filter.ChannelID
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	tracks := make([]model.UploadTrackDo, 0)
	if err := s.list(xl, query, &tracks, "-created_time"); err != nil {
		return nil, err
	}
	return tracks, nil
}

type ApprovedTrackDaoInterface interface {
	ChannelReferrer

	// Insert 同一投稿重复插入时返回 ErrDuplicate。
	Insert(xl *xlog.Logger, approved *model.ApprovedTrackDo) (*model.ApprovedTrackDo, error)

	SelectByTrack(xl *xlog.Logger, trackID string) (*model.ApprovedTrackDo, error)

	// DeleteByTrack 没有对应记录时不报错。
	DeleteByTrack(xl *xlog.Logger, trackID string) error

	// List day 非空时只返回当天 [day, day+24h) 的记录，按日期和时间升序。
	List(xl *xlog.Logger, channelID string, day *time.Time) ([]model.ApprovedTrackDo, error)
}

type ApprovedTrackDaoService struct {
	mongoColl
}

func NewApprovedTrackDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) (*ApprovedTrackDaoService, error) {
	s := &ApprovedTrackDaoService{newMongoColl(xl, session, config, dao.CollectionApprovedTrack)}
	if err := s.ensureIndex(mgo.Index{Key: []string{"track_id"}, Unique: true}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ApprovedTrackDaoService) Insert(xl *xlog.Logger, approved *model.ApprovedTrackDo) (*model.ApprovedTrackDo, error) {
	approved.ID = newID()
	approved.CreatedTime = time.Now()
	approved.UpdatedTime = approved.CreatedTime
	if err := s.insert(xl, approved); err != nil {
		return nil, err
	}
	return approved, nil
}

func (s *ApprovedTrackDaoService) SelectByTrack(xl *xlog.Logger, trackID string) (*model.ApprovedTrackDo, error) {
	var approved model.ApprovedTrackDo
	if err := s.selectOne(xl, bson.M{"track_id": trackID}, &approved); err != nil {
		return nil, err
	}
	return &approved, nil
}

func (s *ApprovedTrackDaoService) DeleteByTrack(xl *xlog.Logger, trackID string) error {
	_, err := s.removeAll(xl, bson.M{"track_id": trackID})
	return err
}

func (s *ApprovedTrackDaoService) List(xl *xlog.Logger, channelID string, day *time.Time) ([]model.ApprovedTrackDo, error) {
	query := channelQuery(channelID)
	if day != nil {
		query["date"] = bson.M{"$gte": *day, "$lt": day.AddDate(0, 0, 1)}
	}
	approved := make([]model.ApprovedTrackDo, 0)
	if err := s.list(xl, query, &approved, "date", "time"); err != nil {
		return nil, err
	}
	return approved, nil
}
