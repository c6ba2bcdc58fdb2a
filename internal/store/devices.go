// internal/store/devices.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bumperr/gPBL-G8/internal/models"
)

// ListActiveDevices returns every active device grouped by category and room.
func (s *Store) ListActiveDevices(ctx context.Context) ([]models.Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, COALESCE(room, ''), transport_topic, device_type,
		       COALESCE(description, ''), is_active
		FROM devices
		WHERE is_active = true
		ORDER BY category, room, name`)
	if err != nil {
		return nil, fmt.Errorf("list active devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var d models.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.Room, &d.Topic,
			&d.DeviceType, &d.Description, &d.Active); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// DeviceByID returns one active device or nil when it does not exist.
func (s *Store) DeviceByID(ctx context.Context, deviceID int64) (*models.Device, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, COALESCE(room, ''), transport_topic, device_type,
		       COALESCE(description, ''), is_active
		FROM devices
		WHERE id = $1 AND is_active = true`, deviceID)

	var d models.Device
	err := row.Scan(&d.ID, &d.Name, &d.Category, &d.Room, &d.Topic,
		&d.DeviceType, &d.Description, &d.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("device by id %d: %w", deviceID, err)
	}
	return &d, nil
}

// FindDevicesByKeyword returns devices whose keywords appear inside the text,
// longest keyword first. Duplicate devices are not collapsed here; the
// matcher de-duplicates keeping first occurrence so the longest match wins.
func (s *Store) FindDevicesByKeyword(ctx context.Context, text string) ([]models.DeviceMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.category, COALESCE(d.room, ''), d.transport_topic, d.device_type,
		       COALESCE(d.description, ''), d.is_active, dk.keyword, COALESCE(dk.context, '')
		FROM devices d
		JOIN device_keywords dk ON d.id = dk.device_id
		WHERE d.is_active = true AND POSITION(LOWER(dk.keyword) IN LOWER($1)) > 0
		ORDER BY LENGTH(dk.keyword) DESC`, text)
	if err != nil {
		return nil, fmt.Errorf("find devices by keyword: %w", err)
	}
	defer rows.Close()

	var matches []models.DeviceMatch
	for rows.Next() {
		var m models.DeviceMatch
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Room, &m.Topic, &m.DeviceType,
			&m.Description, &m.Active, &m.MatchedKeyword, &m.MatchContext); err != nil {
			return nil, fmt.Errorf("scan device match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ListDeviceActions returns every action a device offers, in catalog order.
// The first row doubles as the device's default action.
func (s *Store) ListDeviceActions(ctx context.Context, deviceID int64) ([]models.DeviceAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device_id, action_name, action_command, COALESCE(payload, ''),
		       COALESCE(description, '')
		FROM device_actions
		WHERE device_id = $1
		ORDER BY id`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list device actions: %w", err)
	}
	defer rows.Close()

	var actions []models.DeviceAction
	for rows.Next() {
		var a models.DeviceAction
		if err := rows.Scan(&a.ID, &a.DeviceID, &a.ActionName, &a.ActionCommand,
			&a.Payload, &a.Description); err != nil {
			return nil, fmt.Errorf("scan device action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// DeviceAction returns one named action of a device, or nil.
func (s *Store) DeviceAction(ctx context.Context, deviceID int64, actionName string) (*models.DeviceAction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, device_id, action_name, action_command, COALESCE(payload, ''),
		       COALESCE(description, '')
		FROM device_actions
		WHERE device_id = $1 AND action_name = $2`, deviceID, actionName)

	var a models.DeviceAction
	err := row.Scan(&a.ID, &a.DeviceID, &a.ActionName, &a.ActionCommand, &a.Payload, &a.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("device action %q: %w", actionName, err)
	}
	return &a, nil
}
