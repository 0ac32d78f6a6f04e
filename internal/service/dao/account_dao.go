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

type AccountDaoInterface interface {
	Insert(xl *xlog.Logger, account *model.AccountDo) (*model.AccountDo, error)

	Update(xl *xlog.Logger, account *model.AccountDo) error

	Select(xl *xlog.Logger, accountID string) (*model.AccountDo, error)

	SelectByEmail(xl *xlog.Logger, email string) (*model.AccountDo, error)

	SelectByPhone(xl *xlog.Logger, phoneNumber string) (*model.AccountDo, error)

	Delete(xl *xlog.Logger, accountID string) error

	ListByRole(xl *xlog.Logger, role model.Role) ([]model.AccountDo, error)

	CountByRole(xl *xlog.Logger, role model.Role) (int, error)

	// ClearExpiredOTP 清除所有过期的验证码，返回受影响的账号数。
	ClearExpiredOTP(xl *xlog.Logger, now time.Time) (int, error)
}

type AccountDaoService struct {
	mongoColl
}

func NewAccountDaoService(xl *xlog.Logger, session *mgo.Session, config *utils.MongoConfig) (*AccountDaoService, error) {
	s := &AccountDaoService{newMongoColl(xl, session, config, dao.CollectionAccount)}
	if err := s.ensureIndex(mgo.Index{Key: []string{"email"}, Unique: true}); err != nil {
		return nil, err
	}
	// 管理员没有手机号
	if err := s.ensureIndex(mgo.Index{Key: []string{"phone_number"}, Unique: true, Sparse: true}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AccountDaoService) Insert(xl *xlog.Logger, account *model.AccountDo) (*model.AccountDo, error) {
	account.ID = newID()
	account.CreatedTime = time.Now()
	account.UpdatedTime = account.CreatedTime
	if err := s.insert(xl, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountDaoService) Update(xl *xlog.Logger, account *model.AccountDo) error {
	account.UpdatedTime = time.Now()
	return s.updateID(xl, account.ID, account)
}

func (s *AccountDaoService) Select(xl *xlog.Logger, accountID string) (*model.AccountDo, error) {
	return s.selectBy(xl, bson.M{"_id": accountID})
}

func (s *AccountDaoService) SelectByEmail(xl *xlog.Logger, email string) (*model.AccountDo, error) {
	return s.selectBy(xl, bson.M{"email": email})
}

func (s *AccountDaoService) SelectByPhone(xl *xlog.Logger, phoneNumber string) (*model.AccountDo, error) {
	return s.selectBy(xl, bson.M{"phone_number": phoneNumber})
}

func (s *AccountDaoService) selectBy(xl *xlog.Logger, query bson.M) (*model.AccountDo, error) {
	var account model.AccountDo
	if err := s.selectOne(xl, query, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountDaoService) Delete(xl *xlog.Logger, accountID string) error {
	return s.removeID(xl, accountID)
}

func (s *AccountDaoService) ListByRole(xl *xlog.Logger, role model.Role) ([]model.AccountDo, error) {
	accounts := make([]model.AccountDo, 0)
	if err := s.list(xl, bson.M{"role": role}, &accounts, "-created_time"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *AccountDaoService) CountByRole(xl *xlog.Logger, role model.Role) (int, error) {
	return s.count(xl, bson.M{"role": role})
}

func (s *AccountDaoService) ClearExpiredOTP(xl *xlog.Logger, now time.Time) (int, error) {
	xl = s.logger(xl)
	info, err := s.coll.UpdateAll(
		bson.M{"otp": bson.M{"$exists": true, "$ne": ""}, "otp_expiry": bson.M{"$lt": now}},
		bson.M{"$unset": bson.M{"otp": "", "otp_expiry": ""}, "$set": bson.M{"otp_verified": false}},
	)
	if err != nil {
		xl.Errorf("clear expired otp failed, error %v", err)
		return 0, err
	}
	return info.Updated, nil
}
