// cmd/tools/taxonomy-seeder/main.go
//
// Creates the taxonomy schema and loads the intent and device catalog into
// Postgres. With no flags it seeds the built-in default catalog; -catalog
// loads a JSON catalog file instead, validated before anything is written.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/pkg/catalog"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS intents (
		id SERIAL PRIMARY KEY,
		intent_name TEXT NOT NULL UNIQUE,
		description TEXT,
		category TEXT NOT NULL,
		confidence_threshold DOUBLE PRECISION NOT NULL DEFAULT 0.7,
		is_active BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS intent_keywords (
		id SERIAL PRIMARY KEY,
		intent_id INTEGER NOT NULL REFERENCES intents(id) ON DELETE CASCADE,
		keyword TEXT NOT NULL,
		weight DOUBLE PRECISION NOT NULL DEFAULT 1.0,
		context TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS intent_actions (
		id SERIAL PRIMARY KEY,
		intent_id INTEGER NOT NULL REFERENCES intents(id) ON DELETE CASCADE,
		action_name TEXT NOT NULL,
		function_name TEXT NOT NULL,
		description TEXT,
		confirmation_required BOOLEAN NOT NULL DEFAULT false,
		risk_level TEXT NOT NULL DEFAULT 'low',
		transport_topic TEXT,
		payload_template TEXT,
		transport_compatible BOOLEAN NOT NULL DEFAULT false,
		is_active BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS action_parameters (
		id SERIAL PRIMARY KEY,
		action_id INTEGER NOT NULL REFERENCES intent_actions(id) ON DELETE CASCADE,
		parameter_name TEXT NOT NULL,
		parameter_type TEXT NOT NULL DEFAULT 'string',
		default_value TEXT,
		description TEXT,
		is_required BOOLEAN NOT NULL DEFAULT false,
		validation_rule TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS devices (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		room TEXT,
		transport_topic TEXT NOT NULL,
		device_type TEXT NOT NULL,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS device_keywords (
		id SERIAL PRIMARY KEY,
		device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
		keyword TEXT NOT NULL,
		context TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS device_actions (
		id SERIAL PRIMARY KEY,
		device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
		action_name TEXT NOT NULL,
		action_command TEXT NOT NULL,
		payload TEXT,
		description TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_intent_keywords_intent ON intent_keywords(intent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_intent_actions_intent ON intent_actions(intent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_device_keywords_device ON device_keywords(device_id)`,
}

func main() {
	catalogPath := flag.String("catalog", "", "JSON catalog file to seed from (default: built-in catalog)")
	reset := flag.Bool("reset", false, "delete existing taxonomy rows before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("config load failed: %v", err)
	}

	cat := defaultCatalog()
	if *catalogPath != "" {
		cat, err = catalog.Load(*catalogPath)
		if err != nil {
			fatal("catalog load failed: %v", err)
		}
		fmt.Printf("Loaded catalog %s (version %s)\n", *catalogPath, cat.Version)
	}

	db, err := sql.Open("postgres", cfg.Database.Postgres.GetDSN())
	if err != nil {
		fatal("postgres open failed: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		fatal("postgres ping failed: %v", err)
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			fatal("ddl failed: %v", err)
		}
	}
	fmt.Println("Schema ready.")

	tx, err := db.Begin()
	if err != nil {
		fatal("begin failed: %v", err)
	}
	defer tx.Rollback()

	if *reset {
		for _, table := range []string{"device_actions", "device_keywords", "devices",
			"action_parameters", "intent_actions", "intent_keywords", "intents"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				fatal("reset %s failed: %v", table, err)
			}
		}
		fmt.Println("Existing taxonomy cleared.")
	}

	if err := seedIntents(tx, cat.Intents); err != nil {
		fatal("seed intents failed: %v", err)
	}
	if err := seedDevices(tx, cat.Devices); err != nil {
		fatal("seed devices failed: %v", err)
	}

	if err := tx.Commit(); err != nil {
		fatal("commit failed: %v", err)
	}
	fmt.Printf("Seeded %d intents and %d devices.\n", len(cat.Intents), len(cat.Devices))
}

func seedIntents(tx *sql.Tx, intents []catalog.Intent) error {
	for _, in := range intents {
		var intentID int64
		err := tx.QueryRow(`
			INSERT INTO intents (intent_name, description, category, confidence_threshold)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (intent_name) DO UPDATE
			SET description = EXCLUDED.description,
			    category = EXCLUDED.category,
			    confidence_threshold = EXCLUDED.confidence_threshold,
			    is_active = true
			RETURNING id`,
			in.Name, in.Description, in.Category, in.Threshold,
		).Scan(&intentID)
		if err != nil {
			return fmt.Errorf("intent %q: %w", in.Name, err)
		}

		// keywords and actions are replaced wholesale on re-seed
		if _, err := tx.Exec(`DELETE FROM intent_keywords WHERE intent_id = $1`, intentID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM intent_actions WHERE intent_id = $1`, intentID); err != nil {
			return err
		}

		for _, kw := range in.Keywords {
			if _, err := tx.Exec(`
				INSERT INTO intent_keywords (intent_id, keyword, weight, context)
				VALUES ($1, $2, $3, $4)`,
				intentID, kw.Keyword, kw.Weight, kw.Context); err != nil {
				return fmt.Errorf("keyword %q: %w", kw.Keyword, err)
			}
		}

		for _, a := range in.Actions {
			var actionID int64
			err := tx.QueryRow(`
				INSERT INTO intent_actions (intent_id, action_name, function_name, description,
					confirmation_required, risk_level, transport_topic, payload_template,
					transport_compatible)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id`,
				intentID, a.Name, a.FunctionName, a.Description,
				a.ConfirmationRequired, a.RiskLevel, a.Topic, a.PayloadTemplate,
				a.TransportCompatible,
			).Scan(&actionID)
			if err != nil {
				return fmt.Errorf("action %q: %w", a.FunctionName, err)
			}

			for _, p := range a.Parameters {
				if _, err := tx.Exec(`
					INSERT INTO action_parameters (action_id, parameter_name, parameter_type,
						default_value, description, is_required, validation_rule)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					actionID, p.Name, p.Type, p.Default, p.Description, p.Required, p.ValidationRule); err != nil {
					return fmt.Errorf("parameter %q: %w", p.Name, err)
				}
			}
		}
	}
	return nil
}

func seedDevices(tx *sql.Tx, devices []catalog.Device) error {
	for _, d := range devices {
		// device names are not unique in the schema; re-seeding replaces by name
		if _, err := tx.Exec(`DELETE FROM devices WHERE name = $1`, d.Name); err != nil {
			return err
		}

		var deviceID int64
		err := tx.QueryRow(`
			INSERT INTO devices (name, category, room, transport_topic, device_type, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			d.Name, d.Category, d.Room, d.Topic, d.DeviceType, d.Description,
		).Scan(&deviceID)
		if err != nil {
			return fmt.Errorf("device %q: %w", d.Name, err)
		}

		for _, kw := range d.Keywords {
			if _, err := tx.Exec(`
				INSERT INTO device_keywords (device_id, keyword, context)
				VALUES ($1, $2, $3)`, deviceID, kw.Keyword, kw.Context); err != nil {
				return fmt.Errorf("device keyword %q: %w", kw.Keyword, err)
			}
		}
		for _, a := range d.Actions {
			if _, err := tx.Exec(`
				INSERT INTO device_actions (device_id, action_name, action_command, payload, description)
				VALUES ($1, $2, $3, $4, $5)`,
				deviceID, a.Name, a.Command, a.Payload, a.Description); err != nil {
				return fmt.Errorf("device action %q: %w", a.Name, err)
			}
		}
	}
	return nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
