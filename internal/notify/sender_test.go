package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ruleproc/internal/config"
	"ruleproc/internal/permanent"
)

func TestSMSSenderDisabledIsPermanentError(t *testing.T) {
	t.Parallel()
	sender := NewSMSSender(config.SMSConfig{Enabled: false}, testLogger())

	err := sender.Send(context.Background(), "hello", "+15555550123")
	if err == nil {
		t.Fatal("expected error when SMS is disabled")
	}
	if !permanent.Is(err) {
		t.Errorf("expected permanent error, got %v", err)
	}
}

func TestSMSSenderPostsSignedRequest(t *testing.T) {
	t.Parallel()
	var gotUser, gotPass string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewSMSSender(config.SMSConfig{
		Enabled: true, SID: "sid123", Token: "tok456", Service: "MGdeadbeef",
	}, testLogger())
	sender.endpoint = srv.URL

	if err := sender.Send(context.Background(), "disk full", "+15555550123"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotUser != "sid123" || gotPass != "tok456" {
		t.Errorf("unexpected basic auth %q/%q", gotUser, gotPass)
	}
	if gotBody["to"] != "+15555550123" || gotBody["body"] != "disk full" || gotBody["messagingServiceSid"] != "MGdeadbeef" {
		t.Errorf("unexpected request body %+v", gotBody)
	}
}

func TestSMSSenderNonOKStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sender := NewSMSSender(config.SMSConfig{
		Enabled: true, SID: "sid", Token: "tok", Service: "MGdeadbeef",
	}, testLogger())
	sender.endpoint = srv.URL

	if err := sender.Send(context.Background(), "x", "+1"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestLogSenderAlwaysSucceeds(t *testing.T) {
	t.Parallel()
	sender := NewLogSender(testLogger())
	if err := sender.Send(context.Background(), "hello", ""); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestMailSenderUnconfiguredIsPermanentError(t *testing.T) {
	t.Parallel()
	sender := NewMailSender(config.MailConfig{})
	err := sender.Send(context.Background(), "hello", "ops@example.com")
	if err == nil || !permanent.Is(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
}
