// Package params fills an action's declared parameters from its defaults,
// the caller's profile, and whatever the utterance itself carries.
package params

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// roomPins maps a canonical room name onto the controller pin driving its
// LED strip. Mirrors the physical wiring of the reference installation.
var roomPins = map[string]int{
	"living_room": 8,
	"bedroom":     9,
	"kitchen":     10,
	"bathroom":    11,
}

// roomSynonyms maps spoken room phrasing onto canonical room names. Longer
// phrases listed first within each room.
var roomSynonyms = []struct {
	phrase string
	room   string
}{
	{"living room", "living_room"},
	{"lounge", "living_room"},
	{"sleeping room", "bedroom"},
	{"bedroom", "bedroom"},
	{"cooking area", "kitchen"},
	{"kitchen", "kitchen"},
	{"washroom", "bathroom"},
	{"bathroom", "bathroom"},
	{"toilet", "bathroom"},
}

var offTokens = []string{"off", "turn off", "switch off", "stop", "dark"}
var onTokens = []string{"on", "turn on", "switch on", "start", "light up"}

var temperatureRe = regexp.MustCompile(`(\d+)\s*(?:degrees?|°)`)

type Synthesizer struct {
	logger logger.Logger
}

func New(log logger.Logger) *Synthesizer {
	return &Synthesizer{logger: log}
}

// Synthesize produces a value for every declared parameter. Each parameter
// resolves default first, then the caller's context, then extraction from the
// text. Pin parameters resolve in a second pass so they can read the room the
// first pass settled on.
func (s *Synthesizer) Synthesize(declared []models.ActionParameter, text string, caller *models.CallerContext) map[string]string {
	values := make(map[string]string, len(declared))
	lowered := strings.ToLower(text)

	var pins []models.ActionParameter
	for _, p := range declared {
		if p.Name == "arduino_pin" {
			pins = append(pins, p)
			continue
		}
		values[p.Name] = s.resolve(p, lowered, caller)
	}
	for _, p := range pins {
		values[p.Name] = s.resolvePin(p, values)
	}
	return values
}

func (s *Synthesizer) resolve(p models.ActionParameter, lowered string, caller *models.CallerContext) string {
	value := p.DefaultValue

	if caller != nil {
		if v, ok := fromCaller(p.Name, caller); ok {
			value = v
		}
	}

	if v, ok := s.extract(p.Name, lowered); ok {
		value = v
	}

	if value == "" && p.Required {
		s.logger.WithError(errors.NewParameterInvalidError(p.Name, "no value resolved")).
			Warn("required parameter unresolved", map[string]interface{}{
				"parameter": p.Name,
			})
	}
	return value
}

func (s *Synthesizer) resolvePin(p models.ActionParameter, values map[string]string) string {
	if room, ok := values["room_name"]; ok {
		if pin, ok := roomPins[room]; ok {
			return strconv.Itoa(pin)
		}
	}
	return p.DefaultValue
}

func fromCaller(name string, caller *models.CallerContext) (string, bool) {
	switch name {
	case "caller_name":
		if caller.Name != "" {
			return caller.Name, true
		}
	case "room_name", "location":
		if caller.Location != "" {
			return caller.Location, true
		}
	case "contact_name":
		if caller.FamilyContactName != "" {
			return caller.FamilyContactName, true
		}
	case "phone_number":
		if caller.FamilyPhone != "" {
			return caller.FamilyPhone, true
		}
	}
	if caller.Extra != nil {
		if v, ok := caller.Extra[name]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func (s *Synthesizer) extract(name, lowered string) (string, bool) {
	switch name {
	case "led_state":
		return extractLEDState(lowered)
	case "room_name":
		return extractRoom(lowered)
	case "target_temperature":
		return extractTemperature(lowered)
	}
	return "", false
}

// off tokens are checked first so "turn off" never reads as "on". The
// returned tokens are the uppercase wire values the firmware compares against.
func extractLEDState(lowered string) (string, bool) {
	for _, tok := range offTokens {
		if containsWord(lowered, tok) {
			return "OFF", true
		}
	}
	for _, tok := range onTokens {
		if containsWord(lowered, tok) {
			return "ON", true
		}
	}
	return "", false
}

func extractRoom(lowered string) (string, bool) {
	for _, syn := range roomSynonyms {
		if strings.Contains(lowered, syn.phrase) {
			return syn.room, true
		}
	}
	return "", false
}

func extractTemperature(lowered string) (string, bool) {
	m := temperatureRe.FindStringSubmatch(lowered)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
