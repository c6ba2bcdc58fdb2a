// internal/models/state.go
package models

import "time"

// SensorReading is the last observed value of one sensor field. Values stay
// the raw payload strings; the wire format is plain UTF-8 and parsing is the
// reader's concern.
type SensorReading struct {
	Value      string    `json:"value"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// DeviceState is the last commanded or reported state of one device.
type DeviceState struct {
	Value           string    `json:"value"`
	LastCommand     string    `json:"lastCommand,omitempty"`
	LastCommandTime time.Time `json:"lastCommandTime"`
}

// StateSnapshot is a point-in-time copy of the shared device-state cache.
// Snapshots are deep copies; mutating one never affects the cache.
type StateSnapshot struct {
	Sensors map[string]SensorReading `json:"sensors"`
	Devices map[string]DeviceState   `json:"devices"`
}
