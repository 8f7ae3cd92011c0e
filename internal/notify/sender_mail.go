package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"ruleproc/internal/config"
	"ruleproc/internal/domain"
	"ruleproc/internal/permanent"
)

const mailSubject = "Notification Event"

// MailSender implements the MAIL notification method over stdlib
// net/smtp, the closest ecosystem-free counterpart to the teacher's
// HTTPScenarioSender POST-with-auth idiom (internal/notify/notify.go) —
// here the transport is SMTP rather than HTTP, so net/smtp.SendMail
// stands in for the teacher's http.Client.Do call.
// Params: none.
// Returns: none.
type MailSender struct {
	cfg config.MailConfig
}

// NewMailSender builds a MailSender from the messageService.mail config
// section. A sender is always constructed; a missing host is caught at
// Send time and marked permanent so the dispatcher logs it without
// retrying (§7's ConfigurationError handling, same classification idiom
// as the teacher's internal/permanent package).
// Params: cfg is the validated mail configuration.
// Returns: the ready sender.
func NewMailSender(cfg config.MailConfig) *MailSender {
	return &MailSender{cfg: cfg}
}

// Method reports MAIL.
func (s *MailSender) Method() domain.NotifyMethod { return domain.MethodMail }

// Send delivers message to recipient as a plain-text email with a fixed
// subject. It is attempted exactly once; callers must not retry (§7).
// Params: ctx is accepted for interface symmetry but net/smtp has no
// context-aware dial; recipient is the destination address.
// Returns: a permanent error when the mail section is unconfigured,
// otherwise the raw smtp error.
func (s *MailSender) Send(_ context.Context, message, recipient string) error {
	if s.cfg.Host == "" || recipient == "" {
		return permanent.Mark(fmt.Errorf("mail sender unconfigured or missing recipient"))
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	from := s.cfg.From
	if from == "" {
		from = "alerts@localhost"
	}
	body := buildMailBody(from, recipient, message)

	var auth smtp.Auth
	if s.cfg.HasAuth {
		auth = smtp.PlainAuth("", s.cfg.Auth.User, s.cfg.Auth.Pass, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{recipient}, []byte(body)); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}
	return nil
}

func buildMailBody(from, to, message string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\n\r\n%s\r\n",
		from, to, mailSubject, time.Now().UTC().Format(time.RFC1123Z), message,
	)
}
