package domain

import "time"

// EventStatus is the runtime record for one non-dynamic event's stateful
// bucket (SPEC_FULL §3). It is never allocated for dynamic events.
// Params: none.
// Returns: none, mutated in place by the owning watcher goroutine.
type EventStatus struct {
	LastValue        string
	LastHandledValue *string
	WarningFired     bool
	WarningTimer     *time.Timer
	ResetTimer       *time.Timer
}

// ConditionState is the per-(watcher,event,condition,sourceKey) suppression
// record tracked by the Suppression Core (SPEC_FULL §4.4).
// Params: none.
// Returns: none, mutated in place by the owning watcher goroutine.
type ConditionState struct {
	PrevMatch        bool
	LastSentEpochSec int64
}

// Notification is one outbound message produced by the watcher pipeline and
// handed to the Notification Dispatcher.
// Params: ListID selects the recipient list (the owning watcher's id).
// Returns: none, this is a transient value passed by the pipeline.
type Notification struct {
	ListID   string
	Message  string
	Severity Severity
	Methods  map[NotifyMethod]struct{}
	SentAt   time.Time
}
