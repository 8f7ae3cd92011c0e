package notify

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ruleproc/internal/domain"
)

type recordingSender struct {
	method domain.NotifyMethod

	mu   sync.Mutex
	sent []string
}

func (r *recordingSender) Method() domain.NotifyMethod { return r.method }

func (r *recordingSender) Send(_ context.Context, message, recipient string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, recipient+":"+message)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherFiltersBySeverity(t *testing.T) {
	t.Parallel()
	log := &recordingSender{method: domain.MethodLog}
	lists := []domain.NotificationList{
		{
			ID: "w1",
			Recipients: []domain.NotificationRecipient{
				{Method: domain.MethodLog, Enabled: true, MinSeverity: domain.SeverityCritical},
			},
		},
	}
	d := NewDispatcher(lists, []Sender{log}, testLogger())

	d.Dispatch(context.Background(), domain.Notification{
		ListID: "w1", Message: "hello", Severity: domain.SeverityInfo,
	})
	waitFor(t, func() bool { return log.count() == 0 })

	d.Dispatch(context.Background(), domain.Notification{
		ListID: "w1", Message: "critical", Severity: domain.SeverityCritical,
	})
	waitFor(t, func() bool { return log.count() == 1 })
}

func TestDispatcherSkipsDisabledRecipients(t *testing.T) {
	t.Parallel()
	log := &recordingSender{method: domain.MethodLog}
	lists := []domain.NotificationList{
		{
			ID: "w1",
			Recipients: []domain.NotificationRecipient{
				{Method: domain.MethodLog, Enabled: false, MinSeverity: domain.SeverityInfo},
			},
		},
	}
	d := NewDispatcher(lists, []Sender{log}, testLogger())

	d.Dispatch(context.Background(), domain.Notification{
		ListID: "w1", Message: "hello", Severity: domain.SeverityCritical,
	})
	time.Sleep(20 * time.Millisecond)
	if log.count() != 0 {
		t.Fatalf("expected disabled recipient to be skipped, got %d sends", log.count())
	}
}

func TestDispatcherHonorsMethodFilter(t *testing.T) {
	t.Parallel()
	log := &recordingSender{method: domain.MethodLog}
	mail := &recordingSender{method: domain.MethodMail}
	lists := []domain.NotificationList{
		{
			ID: "w1",
			Recipients: []domain.NotificationRecipient{
				{Method: domain.MethodLog, Enabled: true, MinSeverity: domain.SeverityInfo},
				{Method: domain.MethodMail, Enabled: true, MinSeverity: domain.SeverityInfo, Recipient: "ops@example.com"},
			},
		},
	}
	d := NewDispatcher(lists, []Sender{log, mail}, testLogger())

	d.Dispatch(context.Background(), domain.Notification{
		ListID:   "w1",
		Message:  "only mail",
		Severity: domain.SeverityInfo,
		Methods:  map[domain.NotifyMethod]struct{}{domain.MethodMail: {}},
	})

	waitFor(t, func() bool { return mail.count() == 1 })
	if log.count() != 0 {
		t.Fatalf("expected LOG recipient to be filtered out, got %d sends", log.count())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not satisfied before deadline")
	}
}
