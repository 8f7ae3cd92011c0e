package suppression

import (
	"sync"
	"time"

	"ruleproc/internal/domain"
)

// Core tracks per-source-key ConditionState records and implements the
// edge/cooldown decision of SPEC_FULL §4.4. Grounded on the teacher's
// internal/engine/engine.go map-of-pointers-behind-RWMutex discipline for
// RuntimeState, generalized from the alert-lifecycle domain to plain
// prevMatch/lastSentAt bookkeeping.
// Params: none.
// Returns: none, one Core is owned per watcher.
type Core struct {
	mu     sync.Mutex
	states map[string]*domain.ConditionState
}

// NewCore creates an empty suppression core.
// Params: none.
// Returns: a ready-to-use Core.
func NewCore() *Core {
	return &Core{states: make(map[string]*domain.ConditionState)}
}

// ShouldNotify implements shouldNotify(now) from SPEC_FULL §4.4: it loads
// or default-creates the key's ConditionState, applies the edge rule, then
// the cooldown rule, and persists the updated state before returning.
// Params: key is the BuildKey result for this condition evaluation; edge
// selects level/rising; cooldownSec is the condition's configured cooldown
// (0 disables it); now is the current time.
// Returns: true when the caller should dispatch a notification.
func (c *Core) ShouldNotify(key string, edge domain.EdgeMode, cooldownSec int, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.states[key]
	if !ok {
		state = &domain.ConditionState{}
		c.states[key] = state
	}

	allow := true
	if edge == domain.EdgeRising {
		allow = !state.PrevMatch
	}
	state.PrevMatch = true

	if allow && cooldownSec > 0 {
		if now.Unix()-state.LastSentEpochSec < int64(cooldownSec) {
			allow = false
		}
	}
	if allow {
		state.LastSentEpochSec = now.Unix()
	}
	return allow
}

// MarkNotMatched implements the "mark not-matched" path of SPEC_FULL §4.4:
// on a non-match evaluation of a rising condition, prevMatch is cleared
// without touching lastSentAt, arming the next rising edge.
// Params: key is the BuildKey result for this condition.
// Returns: none.
func (c *Core) MarkNotMatched(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.states[key]
	if !ok {
		state = &domain.ConditionState{}
		c.states[key] = state
	}
	state.PrevMatch = false
}
