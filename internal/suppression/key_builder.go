package suppression

import (
	"fmt"

	"ruleproc/internal/domain"
	"ruleproc/internal/exprlang"
)

// SourceKey computes the partition key a condition's edge/cooldown state is
// tracked under, per SPEC_FULL §4.4's preference order.
// Params: condition/event are the static rule declarations; payload is the
// decoded message being processed.
// Returns: the source key string.
func SourceKey(condition domain.ConditionSpec, event domain.EventSpec, payload any) string {
	if condition.Key != "" {
		if resolved, ok := interpolatedString(condition.Key, payload); ok {
			return resolved
		}
	}
	if event.StateKey != "" {
		if resolved, ok := interpolatedString(event.StateKey, payload); ok {
			return resolved
		}
	}
	host, hostOK := exprlang.LookupPath(payload, "tags.host")
	path, pathOK := exprlang.LookupPath(payload, "tags.path")
	if hostOK && pathOK {
		return fmt.Sprintf("%s:%s", exprlang.Stringify(host), exprlang.Stringify(path))
	}
	return event.Subject
}

func interpolatedString(template string, payload any) (string, bool) {
	resolved := exprlang.Interpolate(template, nil, payload, nil)
	s, ok := resolved.(string)
	return s, ok
}

// BuildKey builds the literal, human-readable suppression key named in
// SPEC_FULL §4.4 — unlike the teacher's sha1-hashed alert key in
// internal/engine/key_builder.go, this spec wants a stable, readable
// partition identifier, not a compact collision-resistant token.
// Params: watcherID/subject identify the event; conditionIndex is the
// condition's position within the event; sourceKey is the value produced
// by SourceKey.
// Returns: the "<watcherId>::<subject>::<conditionIndex>::<sourceKey>" key.
func BuildKey(watcherID, subject string, conditionIndex int, sourceKey string) string {
	return fmt.Sprintf("%s::%s::%d::%s", watcherID, subject, conditionIndex, sourceKey)
}
