package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/VlKazmin/api-final-yatube/config"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendWelcomeEmail 在注册成功后异步发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, username string) {
	if s.username == "" || s.password == "" {
		util.Logger.Warn("SMTP未配置，跳过欢迎邮件", zap.String("to", email))
		return
	}

	subject := "欢迎加入"
	body := fmt.Sprintf(
		"亲爱的 %s，\n\n欢迎加入！现在可以发布帖子、评论并关注感兴趣的作者了。\n\n开始探索：%s",
		username, config.AppConfig.FrontendURL)

	go func() {
		if err := s.sendEmail(email, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", email))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
