package service

import (
	"crypto/tls"
	"fmt"
	"html"
	"petshop-backend/config"
	"petshop-backend/internal/model"
	"petshop-backend/internal/util"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// Notifier 业务事件的用户通知，发送失败不影响主流程
type Notifier interface {
	SendWelcome(user *model.User)
	SendOrderConfirmation(user *model.User, order *model.Order)
}

type EmailService struct {
	smtpHost    string
	smtpPort    int
	username    string
	password    string
	frontendURL string
	enabled     bool
	send        func(m *mail.Message) error
}

func NewEmailService(cfg config.Config) *EmailService {
	s := &EmailService{
		smtpHost:    cfg.SMTPHost,
		smtpPort:    cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		frontendURL: cfg.FrontendURL,
		enabled:     cfg.SMTPEnabled(),
	}
	s.send = s.dialAndSend
	return s
}

var _ Notifier = (*EmailService)(nil)

func (s *EmailService) SendWelcome(user *model.User) {
	subject := "Welcome to the Pet Shop"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your account has been created. Start browsing at <a href="%s">%s</a>.</p>`,
		html.EscapeString(user.FirstName), s.frontendURL, s.frontendURL)

	s.sendEmailAsync(user.Email, subject, body)
}

func (s *EmailService) SendOrderConfirmation(user *model.User, order *model.Order) {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(item.ProductName), html.EscapeString(item.SelectedSize),
			item.Quantity, item.Subtotal.StringFixed(2))
	}

	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thanks for your order <strong>%s</strong>, paid with card ending in %s.</p>
<table>
<tr><th>Product</th><th>Size</th><th>Qty</th><th>Subtotal</th></tr>
%s</table>
<p>Total: <strong>%s</strong></p>`,
		html.EscapeString(user.FirstName), order.OrderNumber, order.PaymentCardLastFour,
		rows.String(), order.TotalAmount.StringFixed(2))

	s.sendEmailAsync(user.Email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	if !s.enabled {
		util.Logger.Debug("SMTP未配置，跳过邮件", zap.String("to", to), zap.String("subject", subject))
		return
	}
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (s *EmailService) dialAndSend(m *mail.Message) error {
	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = s.smtpPort == 465
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost, MinVersion: tls.VersionTLS12}
	return d.DialAndSend(m)
}
