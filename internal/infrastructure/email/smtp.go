// Package email sends transactional mail over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"iothub/internal/shared/config"
)

// SMTPSender sends activation and password-reset mail.
type SMTPSender struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

// NewSMTPSender creates an SMTPSender from config.
func NewSMTPSender(cfg *config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

// SendActivationMail mails the account activation code.
func (s *SMTPSender) SendActivationMail(to, name, code string) error {
	subject := "Activate your account"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour activation code is: %s\r\n\r\nEnter it in the app to enable your account.\r\n",
		name, code,
	)
	return s.send(to, subject, body)
}

// SendResetPasswordMail mails the password reset code.
func (s *SMTPSender) SendResetPasswordMail(to, name, code string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour password reset code is: %s\r\n\r\nThe code expires in 10 minutes.\r\nIf you did not request a reset you can ignore this mail.\r\n",
		name, code,
	)
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.fromAddress, s.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
