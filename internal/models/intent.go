// internal/models/intent.go
package models

// Intent is a classified user goal from the taxonomy catalog. Intents are
// created at provisioning time and never mutated at runtime.
type Intent struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Threshold   float64 `json:"confidenceThreshold"`
	Active      bool    `json:"active"`
}

// IntentKeyword is a weighted phrase implicating an intent. Weights are
// additive: a message matching several keywords of one intent accumulates
// score.
type IntentKeyword struct {
	IntentID int64   `json:"intentId"`
	Keyword  string  `json:"keyword"`
	Weight   float64 `json:"weight"`
	Context  string  `json:"context"`
}

// IntentKeywordRow is one row of the active intent/keyword join the
// classifier scores against, ordered by keyword weight descending.
type IntentKeywordRow struct {
	IntentID    int64   `json:"intentId"`
	IntentName  string  `json:"intentName"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Threshold   float64 `json:"confidenceThreshold"`
	Keyword     string  `json:"keyword"`
	Weight      float64 `json:"weight"`
	Context     string  `json:"context"`
}

// IntentAction is a concrete operation offered by an intent.
type IntentAction struct {
	ID                   int64  `json:"id"`
	IntentID             int64  `json:"intentId"`
	ActionName           string `json:"actionName"`
	FunctionName         string `json:"functionName"`
	Description          string `json:"description"`
	ConfirmationRequired bool   `json:"confirmationRequired"`
	RiskLevel            string `json:"riskLevel"` // "low", "medium", "high"
	Topic                string `json:"transportTopic"`
	PayloadTemplate      string `json:"payloadTemplate"`
	TransportCompatible  bool   `json:"transportCompatible"`
	Active               bool   `json:"active"`
}

// ActionParameter declares one typed parameter an action expects.
type ActionParameter struct {
	ActionID       int64  `json:"actionId"`
	Name           string `json:"name"`
	Type           string `json:"type"` // "string", "integer", "boolean", "json"
	DefaultValue   string `json:"defaultValue"`
	Description    string `json:"description"`
	Required       bool   `json:"required"`
	ValidationRule string `json:"validationRule"`
}
