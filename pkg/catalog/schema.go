// pkg/catalog/schema.go
package catalog

// Catalog is the declarative intent and device taxonomy the seeder loads
// into Postgres.
type Catalog struct {
	Version string   `json:"version"`
	Intents []Intent `json:"intents"`
	Devices []Device `json:"devices"`
}

type Intent struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Threshold   float64   `json:"threshold"`
	Keywords    []Keyword `json:"keywords"`
	Actions     []Action  `json:"actions"`
}

type Keyword struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
	Context string  `json:"context,omitempty"`
}

type Action struct {
	Name                 string      `json:"name"`
	FunctionName         string      `json:"functionName"`
	Description          string      `json:"description,omitempty"`
	ConfirmationRequired bool        `json:"confirmationRequired"`
	RiskLevel            string      `json:"riskLevel"`
	Topic                string      `json:"topic,omitempty"`
	PayloadTemplate      string      `json:"payloadTemplate,omitempty"`
	TransportCompatible  bool        `json:"transportCompatible"`
	Parameters           []Parameter `json:"parameters,omitempty"`
}

type Parameter struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Default        string `json:"default,omitempty"`
	Description    string `json:"description,omitempty"`
	Required       bool   `json:"required"`
	ValidationRule string `json:"validationRule,omitempty"`
}

type Device struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Room        string          `json:"room,omitempty"`
	Topic       string          `json:"topic"`
	DeviceType  string          `json:"deviceType"`
	Description string          `json:"description,omitempty"`
	Keywords    []DeviceKeyword `json:"keywords"`
	Actions     []DeviceAction  `json:"actions"`
}

type DeviceKeyword struct {
	Keyword string `json:"keyword"`
	Context string `json:"context,omitempty"`
}

type DeviceAction struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Payload     string `json:"payload,omitempty"`
	Description string `json:"description,omitempty"`
}
