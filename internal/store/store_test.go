package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return New(db, createTestLogger(t)), mock, func() { db.Close() }
}

// ==========================
// Intent Taxonomy Tests
// ==========================

func TestStore_ListActiveIntents(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{
		"id", "intent_name", "description", "category", "confidence_threshold", "is_active",
	}).AddRow(
		1, "emergency", "Cries for urgent help", "safety", 0.9, true,
	).AddRow(
		2, "smart_home", "General device control", "control", 0.7, true,
	)
	mock.ExpectQuery(`SELECT id, intent_name, COALESCE\(description, ''\), category, confidence_threshold, is_active\s+FROM intents\s+WHERE is_active = true\s+ORDER BY id`).
		WillReturnRows(rows)

	intents, err := s.ListActiveIntents(context.Background())

	assert.NoError(t, err)
	require.Len(t, intents, 2)
	assert.Equal(t, "emergency", intents[0].Name)
	assert.Equal(t, 0.9, intents[0].Threshold)
	assert.Equal(t, "control", intents[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_IntentKeywordRows(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{
		"id", "intent_name", "description", "category", "confidence_threshold",
		"keyword", "weight", "context",
	}).AddRow(
		1, "emergency", "", "safety", 0.9, "911", 2.5, "medical",
	).AddRow(
		1, "emergency", "", "safety", 0.9, "help", 2.0, "",
	).AddRow(
		2, "smart_home", "", "control", 0.7, "turn on", 1.5, "",
	)
	mock.ExpectQuery(`FROM intents i\s+JOIN intent_keywords ik ON i.id = ik.intent_id`).
		WillReturnRows(rows)

	out, err := s.IntentKeywordRows(context.Background())

	assert.NoError(t, err)
	require.Len(t, out, 3)
	// weight-ordered join feeds the classifier
	assert.Equal(t, "911", out[0].Keyword)
	assert.Equal(t, 2.5, out[0].Weight)
	assert.Equal(t, int64(2), out[2].IntentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_IntentKeywordRows_QueryError(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`FROM intents i`).
		WillReturnError(errors.New("connection reset"))

	out, err := s.IntentKeywordRows(context.Background())

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "intent keyword rows")
}

func TestStore_ActionsForIntentName(t *testing.T) {
	tests := []struct {
		name          string
		transportOnly bool
		rows          *sqlmock.Rows
		wantCount     int
	}{
		{
			name:          "all active actions",
			transportOnly: false,
			rows: sqlmock.NewRows([]string{
				"id", "intent_id", "action_name", "function_name", "description",
				"confirmation_required", "risk_level", "transport_topic",
				"payload_template", "transport_compatible", "is_active",
			}).AddRow(
				10, 2, "Turn something on", "device_on", "", false, "low",
				"home/living_room/lights/cmd", "ON", true, true,
			).AddRow(
				11, 2, "Check status", "device_status", "", false, "low",
				"", "", false, true,
			),
			wantCount: 2,
		},
		{
			name:          "transport compatible only",
			transportOnly: true,
			rows: sqlmock.NewRows([]string{
				"id", "intent_id", "action_name", "function_name", "description",
				"confirmation_required", "risk_level", "transport_topic",
				"payload_template", "transport_compatible", "is_active",
			}).AddRow(
				10, 2, "Turn something on", "device_on", "", false, "low",
				"home/living_room/lights/cmd", "ON", true, true,
			),
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock, done := newTestStore(t)
			defer done()

			expect := `JOIN intent_actions ia ON i.id = ia.intent_id\s+WHERE i.intent_name = \$1 AND ia.is_active = true`
			if tt.transportOnly {
				expect += `\s+AND ia.transport_compatible = true`
			}
			mock.ExpectQuery(expect).WithArgs("smart_home").WillReturnRows(tt.rows)

			actions, err := s.ActionsForIntentName(context.Background(), "smart_home", tt.transportOnly)

			assert.NoError(t, err)
			assert.Len(t, actions, tt.wantCount)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ActionByFunctionName_NotFound(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`WHERE function_name = \$1 AND is_active = true`).
		WithArgs("no_such_function").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "intent_id", "action_name", "function_name", "description",
			"confirmation_required", "risk_level", "transport_topic",
			"payload_template", "transport_compatible", "is_active",
		}))

	action, err := s.ActionByFunctionName(context.Background(), "no_such_function")

	assert.NoError(t, err)
	assert.Nil(t, action)
}

func TestStore_ListParameters(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{
		"action_id", "parameter_name", "parameter_type", "default_value",
		"description", "is_required", "validation_rule",
	}).AddRow(
		42, "room_name", "string", "living_room", "", true, "",
	).AddRow(
		42, "led_state", "string", "ON", "", true, "^(ON|OFF)$",
	).AddRow(
		42, "arduino_pin", "integer", "", "", false, "",
	)
	mock.ExpectQuery(`FROM action_parameters\s+WHERE action_id = \$1\s+ORDER BY id`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	params, err := s.ListParameters(context.Background(), 42)

	assert.NoError(t, err)
	require.Len(t, params, 3)
	assert.Equal(t, "room_name", params[0].Name)
	assert.Equal(t, "living_room", params[0].DefaultValue)
	assert.False(t, params[2].Required)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Device Catalog Tests
// ==========================

func TestStore_FindDevicesByKeyword(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	// longest keyword first so the matcher keeps the strongest hit
	rows := sqlmock.NewRows([]string{
		"id", "name", "category", "room", "transport_topic", "device_type",
		"description", "is_active", "keyword", "context",
	}).AddRow(
		1, "Bedroom Lights", "lighting", "bedroom", "home/bedroom/lights", "light",
		"", true, "bedroom lights", "",
	).AddRow(
		1, "Bedroom Lights", "lighting", "bedroom", "home/bedroom/lights", "light",
		"", true, "lights", "",
	)
	mock.ExpectQuery(`POSITION\(LOWER\(dk.keyword\) IN LOWER\(\$1\)\) > 0\s+ORDER BY LENGTH\(dk.keyword\) DESC`).
		WithArgs("turn off the bedroom lights").
		WillReturnRows(rows)

	matches, err := s.FindDevicesByKeyword(context.Background(), "turn off the bedroom lights")

	assert.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "bedroom lights", matches[0].MatchedKeyword)
	assert.Equal(t, "home/bedroom/lights", matches[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeviceByID_NotFound(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`FROM devices\s+WHERE id = \$1 AND is_active = true`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "category", "room", "transport_topic", "device_type",
			"description", "is_active",
		}))

	d, err := s.DeviceByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestStore_ListDeviceActions(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	rows := sqlmock.NewRows([]string{
		"id", "device_id", "action_name", "action_command", "payload", "description",
	}).AddRow(
		1, 7, "turn_on", "power", "ON", "",
	).AddRow(
		2, 7, "turn_off", "power", "OFF", "",
	).AddRow(
		3, 7, "dim", "brightness", "30", "",
	)
	mock.ExpectQuery(`FROM device_actions\s+WHERE device_id = \$1\s+ORDER BY id`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	actions, err := s.ListDeviceActions(context.Background(), 7)

	assert.NoError(t, err)
	require.Len(t, actions, 3)
	// first row is the device's default action
	assert.Equal(t, "turn_on", actions[0].ActionName)
	assert.Equal(t, "30", actions[2].Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeviceAction_ScanError(t *testing.T) {
	s, mock, done := newTestStore(t)
	defer done()

	mock.ExpectQuery(`FROM device_actions\s+WHERE device_id = \$1 AND action_name = \$2`).
		WithArgs(int64(7), "turn_on").
		WillReturnError(errors.New("database is closing"))

	a, err := s.DeviceAction(context.Background(), 7, "turn_on")

	assert.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), `device action "turn_on"`)
}
