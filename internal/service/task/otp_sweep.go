package task

import (
	"github.com/qiniu/x/xlog"
)

// OTPCleaner 清除已过期的找回密码验证码。
type OTPCleaner interface {
	ClearExpiredOTP(xl *xlog.Logger) (int, error)
}

// OTPSweepTask 定期清理过期的验证码，避免旧验证码一直留在账号上。
type OTPSweepTask struct {
	accounts OTPCleaner
	xl       *xlog.Logger
}

func NewOTPSweepTask(accounts OTPCleaner) *OTPSweepTask {
	return &OTPSweepTask{
		accounts: accounts,
		xl:       xlog.New("seagulls-otp-sweep"),
	}
}

func (t *OTPSweepTask) Start() {
	n, err := t.accounts.ClearExpiredOTP(t.xl)
	if err != nil {
		t.xl.Errorf("error clearing expired otp: %v", err)
		return
	}
	if n > 0 {
		t.xl.Infof("cleared expired otp of %d accounts", n)
	}
}
