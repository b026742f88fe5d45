package mailer

import (
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/config"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email transport. It is a thin wrapper: callers build
// subject and bodies, the mailer only delivers.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

func (m *smtpMailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Email delivery failed")
		return err
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
