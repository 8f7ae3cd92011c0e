package domain

// EdgeMode selects how repeated matches are suppressed for one condition.
// Params: none.
// Returns: level (every match) or rising (false-to-true transitions only).
type EdgeMode string

const (
	EdgeLevel  EdgeMode = "level"
	EdgeRising EdgeMode = "rising"
)

// ActiveHoursRange is one local-time window a matching payload must fall in.
// Params: From/To are minutes-since-midnight; To < From means the range
// wraps past midnight.
// Returns: none, this is a static config value.
type ActiveHoursRange struct {
	FromMin int
	ToMin   int
}

// Contains reports whether minute m falls inside the range, wrapping at
// midnight when To < From.
// Params: m is minutes-since-midnight of the current local time.
// Returns: true when m is within [From,To] or, for wrap-around ranges,
// m >= From or m <= To.
func (r ActiveHoursRange) Contains(m int) bool {
	if r.FromMin <= r.ToMin {
		return m >= r.FromMin && m <= r.ToMin
	}
	return m >= r.FromMin || m <= r.ToMin
}

// Dependency gates an event on another watcher's last observed value.
// Params: Path must be exactly "<watchId>.<subject>"; State is the value
// the dependency must normalize-equal.
// Returns: none, this is a static config value.
type Dependency struct {
	Path  string
	State any
}

// ConditionSpec is one matcher inside an EventSpec.
// Params: exactly one of Value/Condition selects the match strategy; the
// remaining fields control interpolation, severity, and suppression.
// Returns: none, this is a static config value.
type ConditionSpec struct {
	Value            any
	HasValue         bool
	Condition        string
	Log              string
	Message          string
	Severity         Severity
	Edge             EdgeMode
	CooldownSec      int
	Key              string
	WarningThreshold int
	WarningMessage   string
	WarningSeverity  Severity
	ResetSec         int
}

// UsesSuppressionControls reports whether the user opted into edge/cooldown,
// which disables the legacy lastValue-equality dedup and legacy timers for
// this condition (SPEC_FULL §9, two overlapping suppression regimes).
// Params: none.
// Returns: true when Edge is non-default or CooldownSec is positive.
func (c ConditionSpec) UsesSuppressionControls() bool {
	return c.Edge == EdgeRising || c.CooldownSec > 0
}

// EventSpec is one rule group keyed by a single payload subject.
// Params: Subject is a dotted path into the payload; Default seeds the
// runtime bucket and the Global Store entry.
// Returns: none, this is a static config value.
type EventSpec struct {
	Subject      string
	Default      any
	ActiveHours  []ActiveHoursRange
	Dependencies []Dependency
	Dynamic      bool
	StateKey     string
	Conditions   []ConditionSpec
}

// WatchSpec binds one MQTT topic to an ordered list of events.
// Params: ID identifies the watcher for store keys and dependency paths;
// Topic may contain MQTT wildcards `+`/`#`.
// Returns: none, this is a static config value.
type WatchSpec struct {
	ID      string
	Topic   string
	Enabled bool
	Dynamic bool
	Events  []EventSpec
}

// NotifyMethod is the outbound channel for one recipient.
// Params: none.
// Returns: one of LOG, MAIL, SMS.
type NotifyMethod string

const (
	MethodLog  NotifyMethod = "LOG"
	MethodMail NotifyMethod = "MAIL"
	MethodSMS  NotifyMethod = "SMS"
)

// NotificationRecipient is one entry in a notification list's recipient set.
// Params: Method selects the channel; Recipient is the address/phone number
// and is empty for LOG; MinSeverity floors which messages this recipient sees.
// Returns: none, this is a static config value.
type NotificationRecipient struct {
	Method      NotifyMethod
	Recipient   string
	Enabled     bool
	MinSeverity Severity
}

// NotificationList is one named set of recipients, keyed by watcher id.
// Params: ID matches a WatchSpec.ID.
// Returns: none, this is a static config value.
type NotificationList struct {
	ID         string
	Recipients []NotificationRecipient
}
