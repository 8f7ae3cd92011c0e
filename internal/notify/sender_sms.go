package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"ruleproc/internal/config"
	"ruleproc/internal/domain"
	"ruleproc/internal/permanent"
)

// smsGatewayURLFormat is the fixed, SID-templated Twilio Messages endpoint.
// The `service` config field is not a URL (§6 names it alongside `sid`/
// `token` as one of three auth/routing credentials, not a gateway
// address); it supplies messagingServiceSid in the request body instead.
var smsGatewayURLFormat = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// SMSSender implements the SMS notification method as a basic-auth POST
// to a Twilio-shaped gateway endpoint, grounded on the teacher's
// HTTPScenarioSender/applyTrackerAuth idiom in internal/notify/notify.go
// (generic POST, header/auth injection, status-code range check).
// Params: none.
// Returns: none.
type SMSSender struct {
	cfg      config.SMSConfig
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewSMSSender builds an SMSSender from the messageService.sms config
// section. When the section is disabled or incomplete, Send returns a
// permanent error without contacting the gateway, which the dispatcher logs
// at warn level (§4.6/§7 SMSUnavailable); the unavailability is also logged
// once at startup at info level.
// Params: cfg is the validated SMS configuration; logger receives the
// startup-unavailable notice.
// Returns: the ready sender.
func NewSMSSender(cfg config.SMSConfig, logger *slog.Logger) *SMSSender {
	s := &SMSSender{
		cfg:      cfg,
		endpoint: fmt.Sprintf(smsGatewayURLFormat, cfg.SID),
		client:   &http.Client{},
		logger:   logger,
	}
	if !cfg.Enabled {
		s.logger.Info("SMS notifications disabled: missing or incomplete messageService.sms configuration")
	}
	return s
}

// Method reports SMS.
func (s *SMSSender) Method() domain.NotifyMethod { return domain.MethodSMS }

// Send POSTs {"to": recipient, "body": message, "messagingServiceSid": ...}
// to the gateway endpoint with HTTP basic auth (sid/token), matching the
// contract named by SPEC_FULL §6. Attempted exactly once; not retried.
// Params: ctx bounds the HTTP call; recipient is the destination phone
// number.
// Returns: a permanent error when SMS is unavailable, otherwise the raw
// transport/status error.
func (s *SMSSender) Send(ctx context.Context, message, recipient string) error {
	if !s.cfg.Enabled {
		return permanent.Mark(fmt.Errorf("sms sender unavailable: not configured"))
	}

	payload, err := json.Marshal(map[string]string{
		"to":                  recipient,
		"body":                message,
		"messagingServiceSid": s.cfg.Service,
	})
	if err != nil {
		return permanent.Mark(fmt.Errorf("marshal sms payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return permanent.Mark(fmt.Errorf("build sms request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.cfg.SID, s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request to %s: %w", safeHost(s.endpoint), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func safeHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "sms gateway"
	}
	return u.Host
}
