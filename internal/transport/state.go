package transport

import (
	"sync"
	"time"

	"github.com/bumperr/gPBL-G8/internal/models"
)

// StateCache holds the last known reading of every sensor and the last known
// value of every device, keyed by name. Safe for concurrent use.
type StateCache struct {
	mu      sync.RWMutex
	sensors map[string]models.SensorReading
	devices map[string]models.DeviceState
}

// NewStateCache seeds the cache so callers always see a complete picture
// even before the first message arrives.
func NewStateCache() *StateCache {
	return &StateCache{
		sensors: map[string]models.SensorReading{
			"temperature": {Value: "22.0"},
			"humidity":    {Value: "50.0"},
		},
		devices: map[string]models.DeviceState{
			"led":               {Value: "OFF"},
			"thermostat_target": {Value: "22"},
		},
	}
}

func (c *StateCache) SetSensor(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sensors[name] = models.SensorReading{
		Value:      value,
		LastUpdate: time.Now().UTC(),
	}
}

func (c *StateCache) SetDevice(name, value, lastCommand string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.devices[name] = models.DeviceState{
		Value:           value,
		LastCommand:     lastCommand,
		LastCommandTime: time.Now().UTC(),
	}
}

func (c *StateCache) Sensor(name string) (models.SensorReading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.sensors[name]
	return r, ok
}

func (c *StateCache) Device(name string) (models.DeviceState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.devices[name]
	return d, ok
}

// Snapshot returns a deep copy; mutating it never touches the cache.
func (c *StateCache) Snapshot() models.StateSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := models.StateSnapshot{
		Sensors: make(map[string]models.SensorReading, len(c.sensors)),
		Devices: make(map[string]models.DeviceState, len(c.devices)),
	}
	for k, v := range c.sensors {
		snap.Sensors[k] = v
	}
	for k, v := range c.devices {
		snap.Devices[k] = v
	}
	return snap
}
