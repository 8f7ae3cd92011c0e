package timers

import (
	"time"

	"ruleproc/internal/domain"
)

// WarningFire is the snapshot handed to the owning watcher when a warning
// timer fires. The message and warningValue are captured at arm time per
// SPEC_FULL §9 ("timers with current context captured at arm time"); the
// watcher goroutine re-checks the bucket's current lastValue against
// WarningValue before deciding whether the warning is still valid.
// Params: none.
// Returns: none, this is a transient value delivered over the watcher's
// event channel.
type WarningFire struct {
	BucketKey    string
	Message      string
	Severity     domain.Severity
	WarningValue string
}

// ResetFire is the snapshot handed to the owning watcher when a reset timer
// fires.
// Params: none.
// Returns: none, this is a transient value delivered over the watcher's
// event channel.
type ResetFire struct {
	BucketKey    string
	DefaultValue string
}

// ArmWarning starts (or restarts) a bucket's warning timer, clearing any
// previously armed one first (SPEC_FULL §4.5, invariant 4: at most one
// warning timer per bucket). Firing delivers a WarningFire to fire rather
// than re-reading bucket state directly, preserving the per-watcher
// serialization rule of §5. Grounded on the teacher's sendWithRetry
// explicit time.NewTimer/Stop idiom in internal/notify/notify.go, adapted
// from a retry backoff timer to a fire-once threshold timer.
// Params: bucket holds the timer handle; bucketKey/message/severity/
// warningValue are snapshotted into the fired event; thresholdSec is the
// delay; fire receives the event when the timer elapses.
// Returns: none.
func ArmWarning(
	bucket *domain.EventStatus,
	bucketKey string,
	thresholdSec int,
	warningValue string,
	message string,
	severity domain.Severity,
	fire chan<- WarningFire,
) {
	ClearWarning(bucket)
	snapshot := WarningFire{
		BucketKey:    bucketKey,
		Message:      message,
		Severity:     severity,
		WarningValue: warningValue,
	}
	bucket.WarningTimer = time.AfterFunc(time.Duration(thresholdSec)*time.Second, func() {
		fire <- snapshot
	})
}

// ClearWarning stops an armed warning timer, if any.
// Params: bucket holds the timer handle.
// Returns: none.
func ClearWarning(bucket *domain.EventStatus) {
	if bucket.WarningTimer != nil {
		bucket.WarningTimer.Stop()
		bucket.WarningTimer = nil
	}
}

// ArmReset starts (or restarts) a bucket's reset timer (SPEC_FULL §4.5).
// Params: bucket holds the timer handle; bucketKey/defaultValue are
// snapshotted into the fired event; resetSec is the delay; fire receives
// the event when the timer elapses.
// Returns: none.
func ArmReset(
	bucket *domain.EventStatus,
	bucketKey string,
	resetSec int,
	defaultValue string,
	fire chan<- ResetFire,
) {
	ClearReset(bucket)
	snapshot := ResetFire{BucketKey: bucketKey, DefaultValue: defaultValue}
	bucket.ResetTimer = time.AfterFunc(time.Duration(resetSec)*time.Second, func() {
		fire <- snapshot
	})
}

// ClearReset stops an armed reset timer, if any.
// Params: bucket holds the timer handle.
// Returns: none.
func ClearReset(bucket *domain.EventStatus) {
	if bucket.ResetTimer != nil {
		bucket.ResetTimer.Stop()
		bucket.ResetTimer = nil
	}
}
