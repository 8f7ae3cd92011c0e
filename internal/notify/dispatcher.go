package notify

import (
	"context"
	"log/slog"
	"time"

	"ruleproc/internal/domain"
	"ruleproc/internal/permanent"
)

// sendTimeout bounds a single recipient send (SPEC_FULL §4.6: "each
// recipient send runs through a bounded-timeout context.Context").
const sendTimeout = 10 * time.Second

// Dispatcher fans a Notification out to every enabled, severity-eligible
// recipient on its list, exactly once each, with no retry (SPEC_FULL §4.6,
// §7: DeliveryError is logged and not retried). Grounded on the teacher's
// Dispatcher/NewDispatcher/Send shape in internal/notify/notify.go, with
// the retry loop removed per the corrected §7 reading.
// Params: none.
// Returns: none.
type Dispatcher struct {
	lists    map[string][]domain.NotificationRecipient
	senders  map[domain.NotifyMethod]Sender
	logger   *slog.Logger
}

// NewDispatcher builds a Dispatcher from the configured notification lists
// and the set of senders available for each method. A method with no
// registered sender is silently unreachable; recipients using it are
// skipped with a warn log at dispatch time.
// Params: lists is the validated configuration; senders maps method to
// its transport; logger receives per-send outcomes.
// Returns: the ready dispatcher.
func NewDispatcher(lists []domain.NotificationList, senders []Sender, logger *slog.Logger) *Dispatcher {
	byList := make(map[string][]domain.NotificationRecipient, len(lists))
	for _, l := range lists {
		byList[l.ID] = l.Recipients
	}
	byMethod := make(map[domain.NotifyMethod]Sender, len(senders))
	for _, s := range senders {
		byMethod[s.Method()] = s
	}
	return &Dispatcher{lists: byList, senders: byMethod, logger: logger}
}

// Dispatch delivers n to enabled recipients on n.ListID: when n.Methods is
// non-empty, to each recipient whose method is in that set regardless of
// severity; otherwise to each recipient whose MinSeverity the notification
// meets. Each recipient is sent to independently and in
// its own goroutine per §5's "notification dispatch happens outside the
// owning watcher's serialized loop" rule; a failure for one recipient
// never blocks or fails another.
// Params: ctx bounds each send; n is the rendered notification.
// Returns: none, failures are logged not returned.
func (d *Dispatcher) Dispatch(ctx context.Context, n domain.Notification) {
	recipients, ok := d.lists[n.ListID]
	if !ok {
		d.logger.Warn("no notification list configured for watcher", "listId", n.ListID)
		return
	}
	for _, r := range recipients {
		if !d.eligible(r, n) {
			continue
		}
		go d.sendOne(ctx, r, n)
	}
}

func (d *Dispatcher) eligible(r domain.NotificationRecipient, n domain.Notification) bool {
	if !r.Enabled {
		return false
	}
	if len(n.Methods) > 0 {
		_, want := n.Methods[r.Method]
		return want
	}
	return n.Severity.AtLeast(r.MinSeverity)
}

func (d *Dispatcher) sendOne(ctx context.Context, r domain.NotificationRecipient, n domain.Notification) {
	sender, ok := d.senders[r.Method]
	if !ok {
		d.logger.Warn("no sender registered for method", "method", r.Method, "listId", n.ListID)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := sender.Send(ctx, n.Message, r.Recipient); err != nil {
		if permanent.Is(err) {
			d.logger.Warn("notification channel unavailable",
				"method", r.Method, "recipient", r.Recipient, "listId", n.ListID, "error", err)
			return
		}
		d.logger.Error("notification delivery failed",
			"method", r.Method, "recipient", r.Recipient, "listId", n.ListID, "error", err)
		return
	}
	d.logger.Debug("notification delivered",
		"method", r.Method, "recipient", r.Recipient, "listId", n.ListID)
}
