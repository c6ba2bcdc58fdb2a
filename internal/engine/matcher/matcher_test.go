package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type stubCatalog struct {
	matches []models.DeviceMatch
	actions map[int64][]models.DeviceAction
	err     error
}

func (s *stubCatalog) FindDevicesByKeyword(ctx context.Context, text string) ([]models.DeviceMatch, error) {
	return s.matches, s.err
}

func (s *stubCatalog) ListDeviceActions(ctx context.Context, deviceID int64) ([]models.DeviceAction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.actions[deviceID], nil
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func lampDevice() *models.Device {
	return &models.Device{
		ID:       1,
		Name:     "Bedroom Lights",
		Category: "lighting",
		Room:     "bedroom",
		Topic:    "home/bedroom/lights",
	}
}

func lightActions() []models.DeviceAction {
	return []models.DeviceAction{
		{ID: 1, DeviceID: 1, ActionName: "turn_on", ActionCommand: "power", Payload: "ON"},
		{ID: 2, DeviceID: 1, ActionName: "turn_off", ActionCommand: "power", Payload: "OFF"},
		{ID: 3, DeviceID: 1, ActionName: "dim", ActionCommand: "brightness", Payload: "30"},
		{ID: 4, DeviceID: 1, ActionName: "brighten", ActionCommand: "brightness", Payload: "80"},
	}
}

// ==========================
// Device Lookup Tests
// ==========================

func TestMatcher_FindDevices_DedupKeepsLongestMatch(t *testing.T) {
	catalog := &stubCatalog{
		matches: []models.DeviceMatch{
			{Device: models.Device{ID: 1, Name: "Bedroom Lights"}, MatchedKeyword: "bedroom lights"},
			{Device: models.Device{ID: 2, Name: "Living Room Lights"}, MatchedKeyword: "lights"},
			{Device: models.Device{ID: 1, Name: "Bedroom Lights"}, MatchedKeyword: "lights"},
		},
	}
	m := New(catalog, createTestLogger(t))

	devices, err := m.FindDevices(context.Background(), "turn off the bedroom lights")

	assert.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, int64(1), devices[0].ID)
	assert.Equal(t, "bedroom lights", devices[0].MatchedKeyword)
	assert.Equal(t, int64(2), devices[1].ID)
}

func TestMatcher_FindDevices_Error(t *testing.T) {
	m := New(&stubCatalog{err: errors.New("db down")}, createTestLogger(t))

	devices, err := m.FindDevices(context.Background(), "lights")

	assert.Error(t, err)
	assert.Nil(t, devices)
}

// ==========================
// Action Resolution Tests
// ==========================

func TestMatcher_FindBestAction(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAction string
	}{
		{
			name:       "exact action name spoken",
			text:       "turn off the bedroom lights",
			wantAction: "turn_off",
		},
		{
			name:       "synonym switch on",
			text:       "please switch on the lamp",
			wantAction: "turn_on",
		},
		{
			name:       "synonym stop maps to turn off",
			text:       "stop the bedroom lights",
			wantAction: "turn_off",
		},
		{
			name:       "bare on resolves on word boundary",
			text:       "lights on please",
			wantAction: "turn_on",
		},
		{
			name:       "dim request",
			text:       "lower the bedroom lights a bit",
			wantAction: "dim",
		},
		{
			name:       "brighten request",
			text:       "make it bright in here",
			wantAction: "brighten",
		},
		{
			name:       "no verb falls back to default action",
			text:       "the bedroom lights",
			wantAction: "turn_on",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &stubCatalog{actions: map[int64][]models.DeviceAction{1: lightActions()}}
			m := New(catalog, createTestLogger(t))

			action, err := m.FindBestAction(context.Background(), lampDevice(), tt.text)

			assert.NoError(t, err)
			require.NotNil(t, action)
			assert.Equal(t, tt.wantAction, action.ActionName)
		})
	}
}

func TestMatcher_FindBestAction_WordBoundary(t *testing.T) {
	// "monitor" contains "on"; it must not trigger turn_on over the default
	actions := []models.DeviceAction{
		{ID: 9, DeviceID: 3, ActionName: "arm", ActionCommand: "mode", Payload: "ARMED"},
		{ID: 10, DeviceID: 3, ActionName: "turn_on", ActionCommand: "power", Payload: "ON"},
	}
	catalog := &stubCatalog{actions: map[int64][]models.DeviceAction{3: actions}}
	m := New(catalog, createTestLogger(t))

	device := &models.Device{ID: 3, Name: "Security System"}
	action, err := m.FindBestAction(context.Background(), device, "monitor the house")

	assert.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, "arm", action.ActionName)
}

func TestMatcher_FindBestAction_UnlockBeforeLock(t *testing.T) {
	actions := []models.DeviceAction{
		{ID: 20, DeviceID: 5, ActionName: "lock", ActionCommand: "latch", Payload: "LOCKED"},
		{ID: 21, DeviceID: 5, ActionName: "unlock", ActionCommand: "latch", Payload: "UNLOCKED"},
	}
	catalog := &stubCatalog{actions: map[int64][]models.DeviceAction{5: actions}}
	m := New(catalog, createTestLogger(t))

	device := &models.Device{ID: 5, Name: "Front Door Lock"}
	action, err := m.FindBestAction(context.Background(), device, "unlock the front door")

	assert.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, "unlock", action.ActionName)
}

func TestMatcher_FindBestAction_NoActions(t *testing.T) {
	catalog := &stubCatalog{actions: map[int64][]models.DeviceAction{}}
	m := New(catalog, createTestLogger(t))

	action, err := m.FindBestAction(context.Background(), lampDevice(), "turn on")

	assert.NoError(t, err)
	assert.Nil(t, action)
}
