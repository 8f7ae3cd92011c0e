package watcher

import (
	"strings"
	"time"

	"ruleproc/internal/domain"
	"ruleproc/internal/exprlang"
)

// activeHoursOK reports whether now falls inside at least one of ranges.
// An empty list always passes (SPEC_FULL §4.2.b: active hours are opt-in
// per event). Ranges that wrap midnight are handled by
// ActiveHoursRange.Contains itself.
// Params: ranges is the event's active-hours declarations; now is the
// evaluation instant, compared in local time.
// Returns: true if unrestricted or inside a declared range.
func activeHoursOK(ranges []domain.ActiveHoursRange, now time.Time) bool {
	if len(ranges) == 0 {
		return true
	}
	local := now.Local()
	minute := local.Hour()*60 + local.Minute()
	for _, r := range ranges {
		if r.Contains(minute) {
			return true
		}
	}
	return false
}

// dependenciesOK reports whether every dependency in deps is satisfied
// against the Global Store. A malformed path (not exactly two non-empty
// "<watchId>.<subject>" segments) is logged as a warning and treated as
// unsatisfied, per SPEC_FULL §4.2.c / §7's DependencyPathError.
// Params: deps is the event's dependency list.
// Returns: true only if every dependency resolves and matches.
func (w *Watcher) dependenciesOK(deps []domain.Dependency) bool {
	for _, dep := range deps {
		watchID, subject, ok := splitDependencyPath(dep.Path)
		if !ok {
			w.logger.Warn("dependency path malformed", "path", dep.Path)
			return false
		}
		value, ok := w.store.Get(watchID, subject)
		if !ok {
			return false
		}
		if !normalizedEqual(value, dep.State) {
			return false
		}
	}
	return true
}

func splitDependencyPath(path string) (watchID, subject string, ok bool) {
	parts := strings.Split(path, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func normalizedEqual(a, b any) bool {
	return exprlang.Stringify(exprlang.Normalize(a)) == exprlang.Stringify(exprlang.Normalize(b))
}

// bucketKeyFor computes the EventStatus lookup key for event given the
// decoded payload (SPEC_FULL §3 invariant 2): the bare subject when no
// stateKey is declared, else the interpolated stateKey joined with the
// subject. This is a distinct keyspace from suppression.BuildKey, which
// tracks per-condition edge/cooldown state instead of per-event value
// history.
// Params: event is the declaration; payload is the decoded message.
// Returns: the bucket map key.
func (w *Watcher) bucketKeyFor(event domain.EventSpec, payload map[string]any) string {
	if event.StateKey == "" {
		return event.Subject
	}
	rendered := exprlang.Interpolate(event.StateKey, nil, payload, w.store)
	return stringifyTemplate(rendered) + "::" + event.Subject
}

func stringifyTemplate(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return exprlang.Stringify(v)
}
