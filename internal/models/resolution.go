// internal/models/resolution.go
package models

import "time"

// CallerContext carries loosely-typed caller facts consumed by parameter
// synthesis. Name and Location are always expected; the family fields are
// optional.
type CallerContext struct {
	Name              string            `json:"name"`
	Location          string            `json:"location"`
	FamilyContactName string            `json:"familyContactName,omitempty"`
	FamilyPhone       string            `json:"familyPhone,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"`
}

// Resolution is the outcome of one resolve-and-dispatch request.
type Resolution struct {
	RequestID       string            `json:"requestId"`
	Text            string            `json:"text"`
	Source          string            `json:"source"` // "intent", "device" or "none"
	Intent          string            `json:"intent,omitempty"`
	Category        string            `json:"category,omitempty"`
	Confidence      float64           `json:"confidence"`
	MatchedKeywords []string          `json:"matchedKeywords,omitempty"`
	Device          string            `json:"device,omitempty"`
	Action          string            `json:"action,omitempty"`
	Parameters      map[string]string `json:"parameters,omitempty"`
	Topic           string            `json:"topic,omitempty"`
	Payload         string            `json:"payload,omitempty"`
	Dispatched      bool              `json:"dispatched"`
	Simulated       bool              `json:"simulated"`
	Timestamp       time.Time         `json:"timestamp"`
}
