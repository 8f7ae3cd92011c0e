package watcher

import (
	"context"
	"log/slog"
	"time"

	"ruleproc/internal/clock"
	"ruleproc/internal/domain"
	"ruleproc/internal/exprlang"
	"ruleproc/internal/mqtt"
	"ruleproc/internal/notify"
	"ruleproc/internal/store"
	"ruleproc/internal/suppression"
	"ruleproc/internal/timers"
)

// Watcher owns one MQTT topic's pipeline end to end: decode, gates,
// condition evaluation, suppression, timers, and notification dispatch
// (SPEC_FULL §4.2). All of its mutable state — stateful buckets, the
// suppression core — is private and touched only from Run's goroutine,
// satisfying §5's single-writer-per-watcher serialization rule.
// Grounded on the teacher's Manager in internal/app/manager.go (one
// struct owning the per-entity rule/state maps, a processEvent/
// applyDecision split), generalized from the teacher's mutex-guarded
// concurrent-caller model to this spec's single-goroutine-owner model.
// Params: none.
// Returns: none.
type Watcher struct {
	spec        domain.WatchSpec
	store       *store.Store
	suppression *suppression.Core
	dispatcher  *notify.Dispatcher
	clock       clock.Clock
	logger      *slog.Logger

	buckets map[string]*domain.EventStatus

	inbox         chan []byte
	warningFireCh chan timers.WarningFire
	resetFireCh   chan timers.ResetFire
}

// New builds a Watcher for one WatchSpec. Buckets for events with neither
// `dynamic` nor `stateKey` are created immediately, seeded from `default`
// (SPEC_FULL §3, "legacy single-bucket events... at startup").
// Params: spec is the validated watch declaration; st is the shared
// Global Store; dispatcher delivers outbound notifications; clk supplies
// the current time; logger receives pipeline diagnostics.
// Returns: the ready, not-yet-running Watcher.
func New(spec domain.WatchSpec, st *store.Store, dispatcher *notify.Dispatcher, clk clock.Clock, logger *slog.Logger) *Watcher {
	w := &Watcher{
		spec:          spec,
		store:         st,
		suppression:   suppression.NewCore(),
		dispatcher:    dispatcher,
		clock:         clk,
		logger:        logger.With("watcher", spec.ID),
		buckets:       make(map[string]*domain.EventStatus),
		inbox:         make(chan []byte, 64),
		warningFireCh: make(chan timers.WarningFire, 16),
		resetFireCh:   make(chan timers.ResetFire, 16),
	}
	w.seedStaticBuckets()
	return w
}

func (w *Watcher) seedStaticBuckets() {
	if w.spec.Dynamic {
		return
	}
	for _, event := range w.spec.Events {
		if event.Dynamic || event.StateKey != "" {
			continue
		}
		w.getOrCreateBucket(event.Subject, event)
	}
}

// Subscription returns the mqtt.Subscription this watcher wants bound to
// its topic filter. The handler only enqueues; all processing happens on
// Run's goroutine.
// Params: none.
// Returns: the subscription descriptor for internal/mqtt.Client.Subscribe.
func (w *Watcher) Subscription() mqtt.Subscription {
	return mqtt.Subscription{
		Topic: w.spec.Topic,
		Handler: func(_ string, payload []byte) {
			w.inbox <- payload
		},
	}
}

// Run drives the watcher's single serialized loop until ctx is canceled,
// multiplexing delivered messages and timer fires through one select
// statement — the idiomatic Go form of §5's "single buffered channel of
// inbound events," since a select over multiple channels from one
// goroutine gives the same total-ordering guarantee as a boxed union type
// without the extra indirection.
// Params: ctx bounds the watcher's lifetime.
// Returns: none, blocks until ctx is done; armed warning/reset timers are
// stopped before it returns.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, bucket := range w.buckets {
				timers.ClearWarning(bucket)
				timers.ClearReset(bucket)
			}
			return
		case payload := <-w.inbox:
			w.handleMessage(payload)
		case fire := <-w.warningFireCh:
			w.handleWarningFire(fire)
		case fire := <-w.resetFireCh:
			w.handleResetFire(fire)
		}
	}
}

func (w *Watcher) getOrCreateBucket(key string, event domain.EventSpec) *domain.EventStatus {
	if bucket, ok := w.buckets[key]; ok {
		return bucket
	}
	bucket := &domain.EventStatus{LastValue: exprlang.Stringify(event.Default)}
	w.buckets[key] = bucket
	w.store.Update(w.spec.ID, event.Subject, event.Default)
	return bucket
}

func (w *Watcher) notify(message string, severity domain.Severity, now time.Time) {
	if severity == "" {
		severity = domain.SeverityInfo
	}
	formatted := now.Local().Format(timestampLayout) + " " + message
	w.dispatcher.Dispatch(context.Background(), domain.Notification{
		ListID:   w.spec.ID,
		Message:  formatted,
		Severity: severity,
		SentAt:   now,
	})
}

const timestampLayout = "2006-01-02 15:04:05"
