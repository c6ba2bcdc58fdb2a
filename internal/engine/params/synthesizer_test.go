package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func param(name, def string, required bool) models.ActionParameter {
	return models.ActionParameter{Name: name, DefaultValue: def, Required: required}
}

func ledParams() []models.ActionParameter {
	return []models.ActionParameter{
		param("room_name", "living_room", true),
		param("led_state", "ON", true),
		param("arduino_pin", "8", false),
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestSynthesizer_Synthesize(t *testing.T) {
	tests := []struct {
		name   string
		params []models.ActionParameter
		text   string
		caller *models.CallerContext
		want   map[string]string
	}{
		{
			name:   "defaults only",
			params: ledParams(),
			text:   "do the thing",
			want: map[string]string{
				"room_name":   "living_room",
				"led_state":   "ON",
				"arduino_pin": "8",
			},
		},
		{
			name:   "text overrides led state and room",
			params: ledParams(),
			text:   "turn off the bathroom lights",
			want: map[string]string{
				"room_name":   "bathroom",
				"led_state":   "OFF",
				"arduino_pin": "11",
			},
		},
		{
			name:   "room synonym lounge",
			params: ledParams(),
			text:   "lights on in the lounge",
			want: map[string]string{
				"room_name":   "living_room",
				"led_state":   "ON",
				"arduino_pin": "8",
			},
		},
		{
			name:   "caller location fills room, text still wins over it",
			params: ledParams(),
			text:   "switch on the kitchen lights",
			caller: &models.CallerContext{Location: "bedroom"},
			want: map[string]string{
				"room_name":   "kitchen",
				"led_state":   "ON",
				"arduino_pin": "10",
			},
		},
		{
			name:   "caller location used when text names no room",
			params: ledParams(),
			text:   "lights off please",
			caller: &models.CallerContext{Location: "bedroom"},
			want: map[string]string{
				"room_name":   "bedroom",
				"led_state":   "OFF",
				"arduino_pin": "9",
			},
		},
		{
			name: "temperature extracted from degrees phrasing",
			params: []models.ActionParameter{
				param("target_temperature", "22", true),
			},
			text: "set it to 25 degrees",
			want: map[string]string{"target_temperature": "25"},
		},
		{
			name: "temperature default when text has no number",
			params: []models.ActionParameter{
				param("target_temperature", "22", true),
			},
			text: "make it warmer",
			want: map[string]string{"target_temperature": "22"},
		},
		{
			name: "caller profile fills contact fields",
			params: []models.ActionParameter{
				param("contact_name", "", true),
				param("phone_number", "", true),
			},
			text:   "call my daughter",
			caller: &models.CallerContext{FamilyContactName: "Sarah", FamilyPhone: "+60123456789"},
			want: map[string]string{
				"contact_name": "Sarah",
				"phone_number": "+60123456789",
			},
		},
		{
			name: "caller extras cover unknown parameters",
			params: []models.ActionParameter{
				param("medication_name", "", false),
			},
			text:   "remind me about my pills",
			caller: &models.CallerContext{Extra: map[string]string{"medication_name": "metformin"}},
			want:   map[string]string{"medication_name": "metformin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(createTestLogger(t))

			got := s.Synthesize(tt.params, tt.text, tt.caller)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSynthesizer_PinFollowsResolvedRoom(t *testing.T) {
	// declaration order puts the pin before the room; the pin must still
	// pick up the room the text resolves
	declared := []models.ActionParameter{
		param("arduino_pin", "8", false),
		param("room_name", "living_room", true),
		param("led_state", "ON", true),
	}
	s := New(createTestLogger(t))

	got := s.Synthesize(declared, "turn on the bathroom lights", nil)

	assert.Equal(t, "bathroom", got["room_name"])
	assert.Equal(t, "11", got["arduino_pin"])
}

func TestSynthesizer_LEDStateIsWireToken(t *testing.T) {
	// firmware compares the payload against the literal tokens ON and OFF
	declared := []models.ActionParameter{param("led_state", "OFF", true)}
	s := New(createTestLogger(t))

	got := s.Synthesize(declared, "turn it on", nil)

	assert.Equal(t, "ON", got["led_state"])
}

func TestSynthesizer_LocationFromCaller(t *testing.T) {
	declared := []models.ActionParameter{param("location", "Home", false)}
	s := New(createTestLogger(t))

	got := s.Synthesize(declared, "help me please", &models.CallerContext{Location: "bathroom"})

	assert.Equal(t, "bathroom", got["location"])

	got = s.Synthesize(declared, "help me please", nil)
	assert.Equal(t, "Home", got["location"])
}

func TestSynthesizer_OffTokenBeatsEmbeddedOn(t *testing.T) {
	s := New(createTestLogger(t))

	got := s.Synthesize(ledParams(), "turn off the living room lights", nil)

	assert.Equal(t, "OFF", got["led_state"])
}

func TestSynthesizer_UnknownRoomKeepsPinDefault(t *testing.T) {
	declared := []models.ActionParameter{
		param("room_name", "garage", true),
		param("arduino_pin", "7", false),
	}
	s := New(createTestLogger(t))

	got := s.Synthesize(declared, "lights please", nil)

	assert.Equal(t, "garage", got["room_name"])
	assert.Equal(t, "7", got["arduino_pin"])
}
