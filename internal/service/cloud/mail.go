package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qiniu/x/xlog"
	"github.com/resend/resend-go/v2"

	"github.com/solutions/seagulls/internal/common/utils"
)

// TrackApprovalMail 投稿通过审核后发给投稿人的通知内容。
type TrackApprovalMail struct {
	To          string
	SongName    string
	Date        time.Time
	Time        string
	ChannelName string
}

func (m *TrackApprovalMail) Subject() string {
	return fmt.Sprintf("Your Track %q Has Been Approved!", m.SongName)
}

func (m *TrackApprovalMail) Body(senderLabel string) string {
	var b strings.Builder
	b.WriteString("Dear User,\n\n")
	fmt.Fprintf(&b, "Great news! Your track %q has been approved and will be streamed on %s.\n\n", m.SongName, m.ChannelName)
	b.WriteString("Streaming Details:\n")
	fmt.Fprintf(&b, "Date: %s\n", m.Date.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "Time: %s\n", m.Time)
	fmt.Fprintf(&b, "Channel: %s\n\n", m.ChannelName)
	b.WriteString("Thank you for your submission!\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s\n", senderLabel)
	return b.String()
}

// Mailer 发送通知邮件。
type Mailer interface {
	SendTrackApproval(xl *xlog.Logger, mail *TrackApprovalMail) error
	SendOTP(xl *xlog.Logger, to string, code string, expire time.Duration) error
}

// NewMailer 根据配置的 provider 创建邮件发送器。
func NewMailer(xl *xlog.Logger, conf *utils.MailConfig) (Mailer, error) {
	if xl == nil {
		xl = xlog.New("seagulls-mailer")
	}
	switch conf.Provider {
	// 模拟的邮件发送器，仅供测试使用。
	case "test":
		return &mockMailer{}, nil
	case "resend":
		if conf.APIKey == "" {
			return nil, fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
		}
		return &ResendMailer{
			client: resend.NewClient(conf.APIKey),
			conf:   conf,
		}, nil
	default:
		xl.Errorf("unsupported mail provider %s", conf.Provider)
		return nil, fmt.Errorf("unsupported mail provider")
	}
}

type mockMailer struct {
}

func (m *mockMailer) SendTrackApproval(xl *xlog.Logger, mail *TrackApprovalMail) error {
	xl.Debugf("mock: send approval of %q to %s", mail.SongName, mail.To)
	return nil
}

func (m *mockMailer) SendOTP(xl *xlog.Logger, to string, code string, expire time.Duration) error {
	xl.Debugf("mock: send otp %s to %s", code, to)
	return nil
}

// ResendMailer 通过 resend 发送邮件。
type ResendMailer struct {
	client *resend.Client
	conf   *utils.MailConfig
}

func (r *ResendMailer) SendTrackApproval(xl *xlog.Logger, mail *TrackApprovalMail) error {
	return r.send(xl, mail.To, mail.Subject(), mail.Body(r.conf.SenderLabel))
}

func (r *ResendMailer) SendOTP(xl *xlog.Logger, to string, code string, expire time.Duration) error {
	body := fmt.Sprintf("Your password reset code is %s.\n\nIt expires in %d minutes. If you did not request it, ignore this email.\n\n%s\n",
		code, int(expire.Minutes()), r.conf.SenderLabel)
	return r.send(xl, to, "Password Reset OTP", body)
}

func (r *ResendMailer) send(xl *xlog.Logger, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    r.conf.From,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	sent, err := r.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		xl.Errorf("failed to send email %q to %s, error %v", subject, to, err)
		return err
	}
	xl.Infof("email %q sent to %s, id %s", subject, to, sent.Id)
	return nil
}
