// Package transport moves commands to devices and device state back, over
// Redis pub/sub. When the broker is unreachable the client degrades to a
// simulated mode: publishes report success and their effect is applied to
// the local state cache directly, so the rest of the engine keeps working.
package transport

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/internal/common/database"
	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/common/metrics"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// ConnState is the connection lifecycle state of the client.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// PublishResult reports how a publish was delivered.
type PublishResult struct {
	OK        bool
	Simulated bool
}

// Callback receives every inbound message. Callbacks run sequentially on the
// inbound goroutine; a panic in one is recovered and does not stop delivery
// to the others.
type Callback func(topic, payload string)

type Client struct {
	cfg    config.TransportConfig
	redis  *database.RedisClient
	cache  *StateCache
	logger logger.Logger

	mu        sync.RWMutex
	state     ConnState
	callbacks []Callback
	pubsub    *redis.PubSub
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewClient(cfg config.TransportConfig, rdb *database.RedisClient, cache *StateCache, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		redis:  rdb,
		cache:  cache,
		logger: log,
		state:  StateDisconnected,
	}
}

// Connect moves the client to connected when the broker answers a ping, and
// to simulated operation otherwise. Connect never fails hard: a dead broker
// leaves the client usable in degraded mode.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	pingCtx, cancel := context.WithTimeout(ctx, config.GetDuration(c.cfg.ConnectTimeout))
	err := c.redis.Ping(pingCtx)
	cancel()
	if err != nil {
		c.setState(StateDisconnected)
		c.logger.Warn("broker unreachable, running simulated", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	// explicit channels are only needed when no glob patterns cover them;
	// subscribing to both would deliver every message twice
	var channels []string
	if len(c.cfg.WildcardPatterns) == 0 {
		channels = append(channels, c.cfg.SensorTopics...)
		channels = append(channels, c.cfg.StatusTopics...)
	}

	loopCtx, loopCancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.pubsub = c.redis.Subscribe(loopCtx, channels, c.cfg.WildcardPatterns)
	c.cancel = loopCancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.setState(StateConnected)
	c.logger.Info("transport connected", map[string]interface{}{
		"channels": channels,
		"patterns": c.cfg.WildcardPatterns,
	})

	go c.inboundLoop(loopCtx, c.pubsub, c.done)
	return nil
}

// Publish sends a command to a topic. Connected, it goes to the broker and
// the state update arrives back through our own subscription. Disconnected,
// the command effect is applied to the cache directly and the publish still
// reports success, so callers behave the same either way.
func (c *Client) Publish(ctx context.Context, topic, payload string) PublishResult {
	if c.GetState() != StateConnected {
		c.applyCommand(topic, payload)
		metrics.PublishesTotal.WithLabelValues("simulated").Inc()
		c.logger.Info("simulated publish", map[string]interface{}{
			"topic":   topic,
			"payload": payload,
		})
		return PublishResult{OK: true, Simulated: true}
	}

	pubCtx, cancel := context.WithTimeout(ctx, config.GetDuration(c.cfg.PublishTimeout))
	defer cancel()

	if err := c.redis.Publish(pubCtx, topic, payload); err != nil {
		// broker dropped inside the reconnect window; degrade the same way
		// a publish made while disconnected would
		c.logger.WithError(errors.NewTransportPublishFailedError(topic, err)).Warn(
			"publish failed, falling back to simulation", map[string]interface{}{
				"topic": topic,
			})
		metrics.PublishesTotal.WithLabelValues("failed").Inc()
		c.applyCommand(topic, payload)
		metrics.PublishesTotal.WithLabelValues("simulated").Inc()
		return PublishResult{OK: true, Simulated: true}
	}
	metrics.PublishesTotal.WithLabelValues("live").Inc()
	return PublishResult{OK: true}
}

// RegisterCallback adds a listener for every inbound message.
func (c *Client) RegisterCallback(cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, cb)
}

func (c *Client) GetState() ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Snapshot returns a copy of the current device and sensor state.
func (c *Client) Snapshot() models.StateSnapshot {
	return c.cache.Snapshot()
}

func (c *Client) setState(s ConnState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Disconnect stops the inbound loop and closes the subscription.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	cancel := c.cancel
	pubsub := c.pubsub
	done := c.done
	c.cancel = nil
	c.pubsub = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if pubsub != nil {
		err = pubsub.Close()
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(config.GetDuration(c.cfg.ConnectTimeout)):
		}
	}
	c.setState(StateDisconnected)
	return err
}

func (c *Client) inboundLoop(ctx context.Context, pubsub *redis.PubSub, done chan struct{}) {
	defer close(done)
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				if ctx.Err() == nil {
					c.reconnect(ctx)
				}
				return
			}
			c.handleMessage(msg.Channel, msg.Payload)
		}
	}
}

// reconnect backs off and then runs Connect again from scratch.
func (c *Client) reconnect(ctx context.Context) {
	c.setState(StateReconnecting)
	select {
	case <-ctx.Done():
		return
	case <-time.After(config.GetDuration(c.cfg.ReconnectBackoff)):
	}
	if err := c.Connect(context.Background()); err != nil {
		c.logger.Error("reconnect failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Client) handleMessage(topic, payload string) {
	switch {
	case c.isSensorTopic(topic):
		metrics.InboundMessagesTotal.WithLabelValues("sensor").Inc()
		c.handleSensor(topic, payload)
	case strings.HasSuffix(topic, "/cmd"):
		// our own published commands echo back through the subscription;
		// this is where live-mode state updates happen
		metrics.InboundMessagesTotal.WithLabelValues("command").Inc()
		c.applyCommand(topic, payload)
	case strings.HasSuffix(topic, "/status"):
		metrics.InboundMessagesTotal.WithLabelValues("status").Inc()
		c.applyStatus(topic, payload)
	case topic == "home/thermostat/set":
		metrics.InboundMessagesTotal.WithLabelValues("thermostat").Inc()
		c.cache.SetDevice("thermostat_target", strings.TrimSpace(payload), payload)
	default:
		metrics.InboundMessagesTotal.WithLabelValues("other").Inc()
	}

	c.mu.RLock()
	callbacks := make([]Callback, len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.RUnlock()

	for _, cb := range callbacks {
		c.invoke(cb, topic, payload)
	}
}

func (c *Client) invoke(cb Callback, topic, payload string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("callback panicked", map[string]interface{}{
				"topic": topic,
				"panic": r,
			})
		}
	}()
	cb(topic, payload)
}

func (c *Client) isSensorTopic(topic string) bool {
	for _, t := range c.cfg.SensorTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// handleSensor parses the combined "temperature,humidity" reading the DHT11
// publishes. Anything else on a sensor topic is dropped.
func (c *Client) handleSensor(topic, payload string) {
	parts := strings.Split(strings.TrimSpace(payload), ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		metrics.InboundDroppedTotal.Inc()
		c.logger.Warn("malformed sensor payload dropped", map[string]interface{}{
			"topic":   topic,
			"payload": payload,
		})
		return
	}
	c.cache.SetSensor("temperature", strings.TrimSpace(parts[0]))
	c.cache.SetSensor("humidity", strings.TrimSpace(parts[1]))
}

// applyCommand records the effect of a device command in the cache.
func (c *Client) applyCommand(topic, payload string) {
	device := deviceKeyForTopic(topic)
	if device == "" {
		return
	}
	c.cache.SetDevice(device, strings.TrimSpace(payload), payload)
}

func (c *Client) applyStatus(topic, payload string) {
	device := deviceKeyForTopic(topic)
	if device == "" {
		return
	}
	c.cache.SetDevice(device, strings.TrimSpace(payload), "")
}

// deviceKeyForTopic maps a command or status topic onto the cache key of the
// device it drives. Lighting topics all feed the shared led entry.
func deviceKeyForTopic(topic string) string {
	switch {
	case strings.Contains(topic, "/lights"), strings.Contains(topic, "/led"):
		return "led"
	case strings.Contains(topic, "/thermostat"):
		return "thermostat_target"
	case strings.Contains(topic, "/tv"):
		return "tv"
	case strings.Contains(topic, "/fan"):
		return "fan"
	case strings.Contains(topic, "/ac"):
		return "ac"
	case strings.Contains(topic, "/security"):
		return "security"
	case strings.Contains(topic, "/door"):
		return "door_lock"
	default:
		return ""
	}
}
