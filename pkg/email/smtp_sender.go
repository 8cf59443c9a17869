package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	dialer *gomail.Dialer
	config Config
}

// NewSMTPSender creates a direct-SMTP email sender backed by gomail.
func NewSMTPSender(cfg Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("%w: SMTPUser and SMTPPassword are required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		config: cfg,
	}, nil
}

// SendEmail implements Sender over SMTP. Dialing and sending runs in a
// goroutine so the context deadline bounds the attempt; gomail itself has no
// context support.
func (s *smtpSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.config.SenderEmail, s.config.SenderName)
	msg.SetHeader("To", params.SendTo)
	msg.SetHeader("Subject", params.Subject)
	msg.SetBody("text/html", params.BodyHTML)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
		return nil
	case <-ctx.Done():
		return errors.Join(ErrFailedToSendEmail, ctx.Err())
	}
}
