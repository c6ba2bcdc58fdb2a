// Package matcher finds devices mentioned in free text and resolves the
// action the text asks for.
package matcher

import (
	"context"
	"strings"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// CatalogSource is the device-catalog slice of the store the matcher needs.
type CatalogSource interface {
	FindDevicesByKeyword(ctx context.Context, text string) ([]models.DeviceMatch, error)
	ListDeviceActions(ctx context.Context, deviceID int64) ([]models.DeviceAction, error)
}

// actionSynonyms maps spoken phrasing onto canonical action names. Longer
// phrases are listed under their canonical action so a scan over this table
// must check phrase containment, not equality.
var actionSynonyms = map[string][]string{
	"turn_on":         {"turn on", "switch on", "activate", "start", "on"},
	"turn_off":        {"turn off", "switch off", "deactivate", "stop", "off"},
	"dim":             {"dim", "lower"},
	"brighten":        {"brighten", "bright"},
	"set_temperature": {"temperature", "degrees", "temp"},
	"volume_up":       {"volume up", "louder"},
	"volume_down":     {"volume down", "quieter"},
	"lock":            {"lock"},
	"unlock":          {"unlock"},
	"arm":             {"arm"},
	"disarm":          {"disarm"},
}

// synonymOrder fixes the scan order over actionSynonyms so resolution is
// deterministic. unlock and disarm come before their substrings lock and arm.
var synonymOrder = []string{
	"turn_on", "turn_off", "dim", "brighten", "set_temperature",
	"volume_up", "volume_down", "unlock", "lock", "disarm", "arm",
}

type Matcher struct {
	source CatalogSource
	logger logger.Logger
}

func New(source CatalogSource, log logger.Logger) *Matcher {
	return &Matcher{source: source, logger: log}
}

// FindDevices returns the devices implicated by the text, strongest keyword
// first, each device appearing once. The catalog query orders hits by
// keyword length so the first occurrence of a device is its longest match.
func (m *Matcher) FindDevices(ctx context.Context, text string) ([]models.DeviceMatch, error) {
	hits, err := m.source.FindDevicesByKeyword(ctx, text)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(hits))
	var devices []models.DeviceMatch
	for _, h := range hits {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		devices = append(devices, h)
	}
	return devices, nil
}

// FindBestAction resolves the action the text asks a device to perform.
// Resolution order: an action name appearing verbatim in the text, then the
// synonym table, then the device's first catalog action as its default.
// Returns nil when the device offers no actions at all.
func (m *Matcher) FindBestAction(ctx context.Context, device *models.Device, text string) (*models.DeviceAction, error) {
	actions, err := m.source.ListDeviceActions(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, nil
	}

	lowered := strings.ToLower(text)

	// exact action name spoken, with underscores read as spaces
	for i := range actions {
		spoken := strings.ReplaceAll(actions[i].ActionName, "_", " ")
		if containsPhrase(lowered, spoken) {
			return &actions[i], nil
		}
	}

	for _, canonical := range synonymOrder {
		for _, phrase := range actionSynonyms[canonical] {
			if !containsPhrase(lowered, phrase) {
				continue
			}
			for i := range actions {
				if actions[i].ActionName == canonical {
					return &actions[i], nil
				}
			}
		}
	}

	m.logger.Debug("no action phrase matched, using device default", map[string]interface{}{
		"device": device.Name,
		"action": actions[0].ActionName,
	})
	return &actions[0], nil
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
// Plain substring containment would let "on" match inside "monitor".
func containsPhrase(text, phrase string) bool {
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
