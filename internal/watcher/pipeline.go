package watcher

import (
	"encoding/json"
	"time"

	"ruleproc/internal/domain"
	"ruleproc/internal/exprlang"
	"ruleproc/internal/suppression"
	"ruleproc/internal/timers"
)

// handleMessage runs one delivered payload through every declared event in
// order (SPEC_FULL §4.2). A JSON decode failure is dropped silently at
// debug level; there is no notification path for malformed input.
// Params: raw is the undecoded MQTT payload.
// Returns: none.
func (w *Watcher) handleMessage(raw []byte) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		w.logger.Debug("dropping undecodable payload", "error", err)
		return
	}

	now := w.clock.Now()
	for _, event := range w.spec.Events {
		w.processEvent(event, payload, now)
	}
}

func (w *Watcher) processEvent(event domain.EventSpec, payload map[string]any, now time.Time) {
	rawValue, ok := exprlang.LookupPath(payload, event.Subject)
	if !ok {
		return
	}

	if !activeHoursOK(event.ActiveHours, now) {
		return
	}
	if !w.dependenciesOK(event.Dependencies) {
		return
	}

	dynamic := event.Dynamic || w.spec.Dynamic
	valueStr := exprlang.Stringify(rawValue)

	var bucket *domain.EventStatus
	var bucketKey string
	if !dynamic {
		bucketKey = w.bucketKeyFor(event, payload)
		bucket = w.getOrCreateBucket(bucketKey, event)
		w.store.Update(w.spec.ID, event.Subject, valueStr)
	}

	for idx, cond := range event.Conditions {
		w.processCondition(event, cond, idx, rawValue, valueStr, payload, bucket, bucketKey, dynamic, now)
	}

	if !dynamic {
		bucket.LastValue = valueStr
	}
}

func (w *Watcher) processCondition(
	event domain.EventSpec,
	cond domain.ConditionSpec,
	idx int,
	rawValue any,
	valueStr string,
	payload map[string]any,
	bucket *domain.EventStatus,
	bucketKey string,
	dynamic bool,
	now time.Time,
) {
	matched, err := w.matchCondition(cond, rawValue, payload)
	if err != nil {
		w.logger.Warn("expression evaluation failed", "event", event.Subject, "error", err)
	}

	sourceKey := suppression.SourceKey(cond, event, payload)
	suppressionKey := suppression.BuildKey(w.spec.ID, event.Subject, idx, sourceKey)

	if !matched {
		if cond.Edge == domain.EdgeRising {
			w.suppression.MarkNotMatched(suppressionKey)
		}
		return
	}

	if cond.Log != "" {
		w.logger.Info(stringifyTemplate(exprlang.Interpolate(cond.Log, rawValue, payload, w.store)))
	}

	if !w.suppression.ShouldNotify(suppressionKey, cond.Edge, cond.CooldownSec, now) {
		return
	}

	message := stringifyTemplate(exprlang.Interpolate(cond.Message, rawValue, payload, w.store))

	if dynamic {
		w.notify(message, cond.Severity, now)
		return
	}

	if !cond.UsesSuppressionControls() {
		w.applyLegacyStatefulPath(event, cond, bucket, bucketKey, valueStr, message, rawValue, payload, now)
		return
	}

	w.notify(message, cond.Severity, now)
}

func (w *Watcher) matchCondition(cond domain.ConditionSpec, rawValue any, payload map[string]any) (bool, error) {
	if cond.Condition != "" {
		return exprlang.Eval(cond.Condition, rawValue, payload, w.store)
	}
	return exprlang.MatchTypedValue(cond.Value, rawValue), nil
}

// applyLegacyStatefulPath implements the non-user-controlled branch of
// SPEC_FULL §4.2.e: notify only when the value differs from the bucket's
// last value, and unconditionally (re)evaluate both timers per §4.5
// regardless of whether the dedup check actually fired a notification.
func (w *Watcher) applyLegacyStatefulPath(
	event domain.EventSpec,
	cond domain.ConditionSpec,
	bucket *domain.EventStatus,
	bucketKey string,
	valueStr string,
	message string,
	rawValue any,
	payload map[string]any,
	now time.Time,
) {
	if bucket.LastValue != valueStr {
		w.notify(message, cond.Severity, now)
		handled := valueStr
		bucket.LastHandledValue = &handled
	}
	w.rearmTimers(event, cond, bucket, bucketKey, valueStr, rawValue, payload)
}

// rearmTimers is reached only from the legacy path, once per matching
// evaluation (SPEC_FULL §4.5). Warning arms only when a threshold is
// configured and no warning timer is already running — an unmatched
// evaluation never reaches here and so never disturbs a pending timer.
// Reset is unconditionally cleared and, if configured, rearmed every time.
func (w *Watcher) rearmTimers(
	event domain.EventSpec,
	cond domain.ConditionSpec,
	bucket *domain.EventStatus,
	bucketKey string,
	valueStr string,
	rawValue any,
	payload map[string]any,
) {
	if cond.WarningThreshold > 0 {
		if bucket.WarningTimer == nil {
			warningMsg := stringifyTemplate(exprlang.Interpolate(cond.WarningMessage, rawValue, payload, w.store))
			severity := cond.WarningSeverity
			if severity == "" {
				severity = domain.SeverityWarning
			}
			timers.ArmWarning(bucket, bucketKey, cond.WarningThreshold, valueStr, warningMsg, severity, w.warningFireCh)
		}
	} else {
		timers.ClearWarning(bucket)
		bucket.WarningFired = false
	}

	timers.ClearReset(bucket)
	if cond.ResetSec > 0 {
		defaultStr := exprlang.Stringify(event.Default)
		timers.ArmReset(bucket, bucketKey, cond.ResetSec, defaultStr, w.resetFireCh)
	}
}

// handleWarningFire implements the warning-fire reconciliation of
// SPEC_FULL §4.5: a warning is only sent if it has not already fired and
// the bucket's last value still matches the value captured at arm time.
func (w *Watcher) handleWarningFire(fire timers.WarningFire) {
	bucket, ok := w.buckets[fire.BucketKey]
	if !ok {
		return
	}
	if !bucket.WarningFired && bucket.LastValue == fire.WarningValue {
		w.notify(fire.Message, fire.Severity, w.clock.Now())
	} else {
		w.logger.Info("warning no longer valid", "bucket", fire.BucketKey)
	}
	bucket.WarningFired = true
	bucket.WarningTimer = nil
}

func (w *Watcher) handleResetFire(fire timers.ResetFire) {
	bucket, ok := w.buckets[fire.BucketKey]
	if !ok {
		return
	}
	bucket.LastValue = fire.DefaultValue
	bucket.ResetTimer = nil
}
