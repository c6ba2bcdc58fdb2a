// internal/models/device.go
package models

// Device is a controllable physical or virtual device from the device catalog.
type Device struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Room        string `json:"room"`
	Topic       string `json:"transportTopic"`
	DeviceType  string `json:"deviceType"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// DeviceKeyword is a literal phrase implicating a device. Unlike intent
// keywords these carry no weight; keyword length breaks ties.
type DeviceKeyword struct {
	DeviceID int64  `json:"deviceId"`
	Keyword  string `json:"keyword"`
	Context  string `json:"context"`
}

// DeviceMatch is a device found in free text together with the keyword that
// matched it.
type DeviceMatch struct {
	Device
	MatchedKeyword string `json:"matchedKeyword"`
	MatchContext   string `json:"matchContext"`
}

// DeviceAction is a concrete command a device offers.
type DeviceAction struct {
	ID            int64  `json:"id"`
	DeviceID      int64  `json:"deviceId"`
	ActionName    string `json:"actionName"`
	ActionCommand string `json:"actionCommand"`
	Payload       string `json:"payload"`
	Description   string `json:"description"`
}
