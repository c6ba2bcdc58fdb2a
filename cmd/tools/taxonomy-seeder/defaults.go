// cmd/tools/taxonomy-seeder/defaults.go
package main

import "github.com/bumperr/gPBL-G8/pkg/catalog"

func ledParams(room, pin string) []catalog.Parameter {
	return []catalog.Parameter{
		{Name: "room_name", Type: "string", Default: room, Required: true},
		{Name: "led_state", Type: "string", Default: "ON", Required: true, ValidationRule: "^(ON|OFF)$"},
		{Name: "arduino_pin", Type: "integer", Default: pin},
	}
}

func lightKeywords(room string) []catalog.DeviceKeyword {
	return []catalog.DeviceKeyword{
		{Keyword: room + " lights"},
		{Keyword: room + " light"},
		{Keyword: room + " lamp"},
		{Keyword: room},
	}
}

func lightActions() []catalog.DeviceAction {
	return []catalog.DeviceAction{
		{Name: "turn_on", Command: "power", Payload: "ON"},
		{Name: "turn_off", Command: "power", Payload: "OFF"},
		{Name: "dim", Command: "brightness", Payload: "30"},
		{Name: "brighten", Command: "brightness", Payload: "80"},
	}
}

// defaultCatalog is the taxonomy of the reference installation, a two
// bedroom home with an elderly resident and Arduino-driven room lighting.
func defaultCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Version: "1.0.0",
		Intents: []catalog.Intent{
			{
				Name:        "family_contact",
				Description: "Resident wants to reach a family member",
				Category:    "communication",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "call my daughter", Weight: 2.5},
					{Keyword: "call my son", Weight: 2.5},
					{Keyword: "call family", Weight: 2.0},
					{Keyword: "talk to my daughter", Weight: 2.0},
					{Keyword: "phone my", Weight: 1.5},
					{Keyword: "call", Weight: 1.0},
				},
				Actions: []catalog.Action{{
					Name:         "Call family member",
					FunctionName: "call_family_member",
					Description:  "Places a voice call to the configured family contact",
					RiskLevel:    "low",
					Parameters: []catalog.Parameter{
						{Name: "contact_name", Type: "string", Required: true},
						{Name: "phone_number", Type: "string", Required: true},
					},
				}},
			},
			{
				Name:        "emergency",
				Description: "Urgent cry for help",
				Category:    "safety",
				Threshold:   0.9,
				Keywords: []catalog.Keyword{
					{Keyword: "emergency", Weight: 2.5},
					{Keyword: "911", Weight: 2.5},
					{Keyword: "ambulance", Weight: 2.5},
					{Keyword: "help me", Weight: 2.5},
					{Keyword: "help", Weight: 2.0},
					{Keyword: "fall", Weight: 2.0},
					{Keyword: "fell", Weight: 2.0},
					{Keyword: "fallen", Weight: 2.0},
					{Keyword: "chest pain", Weight: 2.5},
					{Keyword: "can't breathe", Weight: 2.5},
					{Keyword: "hurt", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Raise emergency alert",
					FunctionName:        "call_emergency",
					Description:         "Raises the in-home alert and notifies caregivers",
					RiskLevel:           "high",
					Topic:               "emergency/alert",
					PayloadTemplate:     "HELP",
					TransportCompatible: true,
					Parameters: []catalog.Parameter{
						{Name: "location", Type: "string", Default: "Home"},
					},
				}},
			},
			{
				Name:        "smart_home",
				Description: "General device control, resolved against the device catalog",
				Category:    "control",
				Threshold:   0.7,
				Keywords: []catalog.Keyword{
					{Keyword: "turn on", Weight: 1.5},
					{Keyword: "turn off", Weight: 1.5},
					{Keyword: "switch on", Weight: 1.5},
					{Keyword: "switch off", Weight: 1.5},
					{Keyword: "dim", Weight: 1.0},
					{Keyword: "brighten", Weight: 1.0},
				},
				Actions: []catalog.Action{{
					Name:         "Route to device catalog",
					FunctionName: "smart_home_control",
					Description:  "Resolved through the device matcher",
					RiskLevel:    "low",
				}},
			},
			{
				Name:        "arduino_led_control",
				Description: "Direct LED strip control",
				Category:    "control",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "led", Weight: 2.5},
					{Keyword: "led strip", Weight: 2.5},
					{Keyword: "strip lights", Weight: 2.0},
				},
				Actions: []catalog.Action{{
					Name:                "Control LED strip",
					FunctionName:        "control_arduino_led",
					RiskLevel:           "low",
					Topic:               "home/living_room/lights/cmd",
					PayloadTemplate:     "{led_state}",
					TransportCompatible: true,
					Parameters:          ledParams("living_room", "8"),
				}},
			},
			{
				Name:        "living_room_lights",
				Description: "Living room lighting",
				Category:    "control",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "living room lights", Weight: 2.5},
					{Keyword: "living room light", Weight: 2.5},
					{Keyword: "lounge lights", Weight: 2.0},
					{Keyword: "living room", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Control living room LED",
					FunctionName:        "control_living_room_led",
					RiskLevel:           "low",
					Topic:               "home/living_room/lights/cmd",
					PayloadTemplate:     "{led_state}",
					TransportCompatible: true,
					Parameters:          ledParams("living_room", "8"),
				}},
			},
			{
				Name:        "bedroom_lights",
				Description: "Bedroom lighting",
				Category:    "control",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "bedroom lights", Weight: 2.5},
					{Keyword: "bedroom light", Weight: 2.5},
					{Keyword: "bedroom lamp", Weight: 2.0},
					{Keyword: "bedroom", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Control bedroom LED",
					FunctionName:        "control_bedroom_led",
					RiskLevel:           "low",
					Topic:               "home/bedroom/lights/cmd",
					PayloadTemplate:     "{led_state}",
					TransportCompatible: true,
					Parameters:          ledParams("bedroom", "9"),
				}},
			},
			{
				Name:        "kitchen_lights",
				Description: "Kitchen lighting",
				Category:    "control",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "kitchen lights", Weight: 2.5},
					{Keyword: "kitchen light", Weight: 2.5},
					{Keyword: "cooking area lights", Weight: 2.0},
					{Keyword: "kitchen", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Control kitchen LED",
					FunctionName:        "control_kitchen_led",
					RiskLevel:           "low",
					Topic:               "home/kitchen/lights/cmd",
					PayloadTemplate:     "{led_state}",
					TransportCompatible: true,
					Parameters:          ledParams("kitchen", "10"),
				}},
			},
			{
				Name:        "bathroom_lights",
				Description: "Bathroom lighting",
				Category:    "control",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "bathroom lights", Weight: 2.5},
					{Keyword: "bathroom light", Weight: 2.5},
					{Keyword: "toilet lights", Weight: 2.0},
					{Keyword: "bathroom", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Control bathroom LED",
					FunctionName:        "control_bathroom_led",
					RiskLevel:           "low",
					Topic:               "home/bathroom/lights/cmd",
					PayloadTemplate:     "{led_state}",
					TransportCompatible: true,
					Parameters:          ledParams("bathroom", "11"),
				}},
			},
			{
				Name:        "temperature_monitoring",
				Description: "Room climate questions and thermostat changes",
				Category:    "environment",
				Threshold:   0.7,
				Keywords: []catalog.Keyword{
					{Keyword: "temperature", Weight: 2.0},
					{Keyword: "degrees", Weight: 2.0},
					{Keyword: "too hot", Weight: 1.5},
					{Keyword: "too cold", Weight: 1.5},
					{Keyword: "warmer", Weight: 1.5},
					{Keyword: "cooler", Weight: 1.5},
					{Keyword: "humidity", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:                "Set thermostat target",
					FunctionName:        "set_thermostat",
					RiskLevel:           "medium",
					Topic:               "home/thermostat/set",
					PayloadTemplate:     "{target_temperature}",
					TransportCompatible: true,
					Parameters: []catalog.Parameter{
						{Name: "target_temperature", Type: "integer", Default: "22", Required: true},
					},
				}},
			},
			{
				Name:        "health_concern",
				Description: "Non-urgent health complaints worth relaying to caregivers",
				Category:    "wellbeing",
				Threshold:   0.8,
				Keywords: []catalog.Keyword{
					{Keyword: "dizzy", Weight: 2.0},
					{Keyword: "medication", Weight: 2.0},
					{Keyword: "pills", Weight: 2.0},
					{Keyword: "not feeling well", Weight: 2.0},
					{Keyword: "tired", Weight: 1.0},
					{Keyword: "pain", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:         "Assess health concern",
					FunctionName: "assess_health_concern",
					RiskLevel:    "medium",
				}},
			},
			{
				Name:        "loneliness",
				Description: "Resident expresses isolation",
				Category:    "wellbeing",
				Threshold:   0.6,
				Keywords: []catalog.Keyword{
					{Keyword: "lonely", Weight: 2.0},
					{Keyword: "alone", Weight: 1.5},
					{Keyword: "nobody visits", Weight: 2.0},
					{Keyword: "miss my family", Weight: 2.0},
				},
				Actions: []catalog.Action{{
					Name:         "Provide companionship",
					FunctionName: "provide_companionship",
					RiskLevel:    "low",
				}},
			},
			{
				Name:        "conversation",
				Description: "Small talk fallback",
				Category:    "social",
				Threshold:   0.5,
				Keywords: []catalog.Keyword{
					{Keyword: "good morning", Weight: 2.0},
					{Keyword: "good night", Weight: 2.0},
					{Keyword: "hello", Weight: 1.5},
					{Keyword: "how are you", Weight: 1.5},
					{Keyword: "thank you", Weight: 1.5},
				},
				Actions: []catalog.Action{{
					Name:         "General conversation",
					FunctionName: "general_conversation",
					RiskLevel:    "low",
				}},
			},
		},
		Devices: []catalog.Device{
			{
				Name: "Living Room Lights", Category: "lighting", Room: "living_room",
				Topic: "home/living_room/lights", DeviceType: "light",
				Keywords: lightKeywords("living room"),
				Actions:  lightActions(),
			},
			{
				Name: "Bedroom Lights", Category: "lighting", Room: "bedroom",
				Topic: "home/bedroom/lights", DeviceType: "light",
				Keywords: lightKeywords("bedroom"),
				Actions:  lightActions(),
			},
			{
				Name: "Kitchen Lights", Category: "lighting", Room: "kitchen",
				Topic: "home/kitchen/lights", DeviceType: "light",
				Keywords: lightKeywords("kitchen"),
				Actions:  lightActions(),
			},
			{
				Name: "Living Room TV", Category: "entertainment", Room: "living_room",
				Topic: "home/living_room/tv", DeviceType: "tv",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "television"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "turn_on", Command: "power", Payload: "ON"},
					{Name: "turn_off", Command: "power", Payload: "OFF"},
					{Name: "volume_up", Command: "volume", Payload: "+5"},
					{Name: "volume_down", Command: "volume", Payload: "-5"},
				},
			},
			{
				Name: "Living Room AC", Category: "climate", Room: "living_room",
				Topic: "home/living_room/ac", DeviceType: "ac",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "air conditioner"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "turn_on", Command: "power", Payload: "ON"},
					{Name: "turn_off", Command: "power", Payload: "OFF"},
					{Name: "set_temperature", Command: "target", Payload: "24"},
				},
			},
			{
				Name: "Bedroom Fan", Category: "climate", Room: "bedroom",
				Topic: "home/bedroom/fan", DeviceType: "fan",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "bedroom fan"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "turn_on", Command: "power", Payload: "ON"},
					{Name: "turn_off", Command: "power", Payload: "OFF"},
				},
			},
			{
				Name: "Kitchen Exhaust", Category: "climate", Room: "kitchen",
				Topic: "home/kitchen/exhaust", DeviceType: "fan",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "exhaust"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "turn_on", Command: "power", Payload: "ON"},
					{Name: "turn_off", Command: "power", Payload: "OFF"},
				},
			},
			{
				Name: "Main Thermostat", Category: "climate", Room: "living_room",
				Topic: "home/thermostat", DeviceType: "thermostat",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "thermostat"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "set_temperature", Command: "target", Payload: "22"},
				},
			},
			{
				Name: "Security System", Category: "security", Room: "",
				Topic: "home/security", DeviceType: "alarm",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "security system"},
					{Keyword: "alarm"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "arm", Command: "mode", Payload: "ARMED"},
					{Name: "disarm", Command: "mode", Payload: "DISARMED"},
				},
			},
			{
				Name: "Front Door Lock", Category: "security", Room: "",
				Topic: "home/door/front", DeviceType: "lock",
				Keywords: []catalog.DeviceKeyword{
					{Keyword: "front door"},
					{Keyword: "door lock"},
				},
				Actions: []catalog.DeviceAction{
					{Name: "lock", Command: "latch", Payload: "LOCKED"},
					{Name: "unlock", Command: "latch", Payload: "UNLOCKED"},
				},
			},
		},
	}
}
