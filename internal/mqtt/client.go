package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"ruleproc/internal/config"
)

// reconnectBackoff is the fixed delay between connection attempts named by
// SPEC_FULL §4.6's transport state machine: unlike the teacher's
// exponentially-growing sendWithRetry backoff, this spec names one fixed
// interval with no cap, so no doubling/capping logic is needed here.
const reconnectBackoff = 2500 * time.Millisecond

// State is the externally observable MQTT transport state (SPEC_FULL §4.6).
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateSubscribed
	StateBackoff
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateBackoff:
		return "backoff"
	default:
		return "idle"
	}
}

// Subscription binds one topic filter (which may use MQTT `+`/`#`
// wildcards) to the handler invoked for every message delivered on it.
// Params: none.
// Returns: none.
type Subscription struct {
	Topic   string
	Handler func(topic string, payload []byte)
}

// Client is a reconnecting MQTT subscriber built on paho.mqtt.golang,
// grounded on the teacher's NewNATSSubscriber shape in
// internal/ingest/nats.go (connect, subscribe with a per-message
// callback, logger-driven failure reporting) but re-implementing
// reconnection explicitly instead of delegating to a library-managed
// queue consumer, since paho's own auto-reconnect does not expose the
// fixed, observable backoff state machine SPEC_FULL §4.6 names.
// Params: none.
// Returns: none.
type Client struct {
	opts *paho.ClientOptions
	subs []Subscription
	logger *slog.Logger

	client  paho.Client
	state   atomic.Int32
	lostCh  chan struct{}
}

// New builds a Client for the configured broker. Subscriptions are
// registered with Subscribe; Run then connects and reconnects for the
// lifetime of its ctx.
// Params: cfg is the mqtt config section; logger receives connection and
// delivery diagnostics.
// Returns: the unstarted client.
func New(cfg config.MQTTConfig, logger *slog.Logger) *Client {
	c := &Client{logger: logger, lostCh: make(chan struct{}, 1)}
	opts := paho.NewClientOptions().
		AddBroker(cfg.URL()).
		SetClientID(fmt.Sprintf("ruleproc-%d", time.Now().UnixNano())).
		SetAutoReconnect(false).
		SetCleanSession(true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)
	c.opts = opts
	return c
}

// State reports the client's current transport state.
// Params: none.
// Returns: the current State.
func (c *Client) State() State {
	return State(c.state.Load())
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
}

// Run connects and subscribes to every entry in subs, reconnecting with a
// fixed backoff on any connection loss, until ctx is canceled (SPEC_FULL
// §4.6, §5 shutdown via SIGINT/SIGTERM). At-most-once delivery: QoS 0 is
// used throughout per §6.
// Params: ctx bounds the client's lifetime; the topic set registered
// through Subscribe is subscribed on every (re)connect.
// Returns: always nil; connect failures are logged and retried after the
// backoff until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	c.client = paho.NewClient(c.opts)
	defer c.client.Disconnect(250)

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.setState(StateConnecting)
		token := c.client.Connect()
		token.Wait()
		if err := token.Error(); err != nil {
			c.logger.Warn("mqtt connect failed", "error", err)
			c.setState(StateBackoff)
			if !sleepOrDone(ctx, reconnectBackoff) {
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.lostCh:
			c.setState(StateBackoff)
			if !sleepOrDone(ctx, reconnectBackoff) {
				return nil
			}
		}
	}
}

// Subscribe registers a topic filter; it takes effect on the next (re)connect.
// Params: sub is the topic/handler pair to subscribe.
// Returns: none. Must be called before Run.
func (c *Client) Subscribe(sub Subscription) {
	c.subs = append(c.subs, sub)
}

func (c *Client) onConnect(client paho.Client) {
	for _, sub := range c.subs {
		handler := sub.Handler
		token := client.Subscribe(sub.Topic, 0, func(_ paho.Client, msg paho.Message) {
			handler(msg.Topic(), msg.Payload())
		})
		token.Wait()
		if err := token.Error(); err != nil {
			c.logger.Error("mqtt subscribe failed", "topic", sub.Topic, "error", err)
		}
	}
	c.setState(StateSubscribed)
	c.logger.Info("mqtt connected", "subscriptions", len(c.subs))
}

func (c *Client) onConnectionLost(_ paho.Client, err error) {
	c.logger.Warn("mqtt connection lost", "error", err)
	select {
	case c.lostCh <- struct{}{}:
	default:
	}
}

// sleepOrDone waits for d or ctx cancellation, whichever comes first,
// using the teacher's explicit timer Stop/drain idiom from
// internal/notify/notify.go's sendWithRetry backoff loop (adapted here
// from an exponentially growing interval to this spec's single fixed one).
// Params: ctx may cancel the wait early; d is the wait duration.
// Returns: true if the timer elapsed, false if ctx was canceled first.
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return false
	case <-timer.C:
		return true
	}
}
