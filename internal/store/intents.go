// internal/store/intents.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bumperr/gPBL-G8/internal/models"
)

// ListActiveIntents returns every active intent in the taxonomy.
func (s *Store) ListActiveIntents(ctx context.Context) ([]models.Intent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, intent_name, COALESCE(description, ''), category, confidence_threshold, is_active
		FROM intents
		WHERE is_active = true
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active intents: %w", err)
	}
	defer rows.Close()

	var intents []models.Intent
	for rows.Next() {
		var in models.Intent
		if err := rows.Scan(&in.ID, &in.Name, &in.Description, &in.Category, &in.Threshold, &in.Active); err != nil {
			return nil, fmt.Errorf("scan intent: %w", err)
		}
		intents = append(intents, in)
	}
	return intents, rows.Err()
}

// ListKeywords returns the weighted keywords of one intent, heaviest first.
func (s *Store) ListKeywords(ctx context.Context, intentID int64) ([]models.IntentKeyword, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT intent_id, keyword, weight, COALESCE(context, '')
		FROM intent_keywords
		WHERE intent_id = $1
		ORDER BY weight DESC`, intentID)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()

	var kws []models.IntentKeyword
	for rows.Next() {
		var kw models.IntentKeyword
		if err := rows.Scan(&kw.IntentID, &kw.Keyword, &kw.Weight, &kw.Context); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		kws = append(kws, kw)
	}
	return kws, rows.Err()
}

// IntentKeywordRows returns the active intent/keyword join the classifier
// scores against. Rows are weight-ordered so equal-score ties resolve the
// same way on every run.
func (s *Store) IntentKeywordRows(ctx context.Context) ([]models.IntentKeywordRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.intent_name, COALESCE(i.description, ''), i.category, i.confidence_threshold,
		       ik.keyword, ik.weight, COALESCE(ik.context, '')
		FROM intents i
		JOIN intent_keywords ik ON i.id = ik.intent_id
		WHERE i.is_active = true
		ORDER BY ik.weight DESC, i.id`)
	if err != nil {
		return nil, fmt.Errorf("intent keyword rows: %w", err)
	}
	defer rows.Close()

	var out []models.IntentKeywordRow
	for rows.Next() {
		var r models.IntentKeywordRow
		if err := rows.Scan(&r.IntentID, &r.IntentName, &r.Description, &r.Category, &r.Threshold,
			&r.Keyword, &r.Weight, &r.Context); err != nil {
			return nil, fmt.Errorf("scan intent keyword row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListActions returns the active actions of one intent in catalog order.
func (s *Store) ListActions(ctx context.Context, intentID int64) ([]models.IntentAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, intent_id, action_name, function_name, COALESCE(description, ''),
		       confirmation_required, risk_level, COALESCE(transport_topic, ''),
		       COALESCE(payload_template, ''), transport_compatible, is_active
		FROM intent_actions
		WHERE intent_id = $1 AND is_active = true
		ORDER BY id`, intentID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	return scanIntentActions(rows)
}

// ActionsForIntentName returns the active actions of a named intent,
// optionally restricted to transport-compatible ones.
func (s *Store) ActionsForIntentName(ctx context.Context, intentName string, transportOnly bool) ([]models.IntentAction, error) {
	query := `
		SELECT ia.id, ia.intent_id, ia.action_name, ia.function_name, COALESCE(ia.description, ''),
		       ia.confirmation_required, ia.risk_level, COALESCE(ia.transport_topic, ''),
		       COALESCE(ia.payload_template, ''), ia.transport_compatible, ia.is_active
		FROM intents i
		JOIN intent_actions ia ON i.id = ia.intent_id
		WHERE i.intent_name = $1 AND ia.is_active = true`
	if transportOnly {
		query += ` AND ia.transport_compatible = true`
	}
	query += ` ORDER BY ia.id`

	rows, err := s.db.QueryContext(ctx, query, intentName)
	if err != nil {
		return nil, fmt.Errorf("actions for intent %q: %w", intentName, err)
	}
	defer rows.Close()

	return scanIntentActions(rows)
}

// ActionByFunctionName returns the first active action registered under a
// function name, or nil when none exists.
func (s *Store) ActionByFunctionName(ctx context.Context, functionName string) (*models.IntentAction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, intent_id, action_name, function_name, COALESCE(description, ''),
		       confirmation_required, risk_level, COALESCE(transport_topic, ''),
		       COALESCE(payload_template, ''), transport_compatible, is_active
		FROM intent_actions
		WHERE function_name = $1 AND is_active = true
		ORDER BY id
		LIMIT 1`, functionName)

	var a models.IntentAction
	err := row.Scan(&a.ID, &a.IntentID, &a.ActionName, &a.FunctionName, &a.Description,
		&a.ConfirmationRequired, &a.RiskLevel, &a.Topic, &a.PayloadTemplate,
		&a.TransportCompatible, &a.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("action by function name %q: %w", functionName, err)
	}
	return &a, nil
}

// ListParameters returns the declared parameters of one action in catalog
// order. Catalog order matters: downstream synthesis resolves parameters in
// this order.
func (s *Store) ListParameters(ctx context.Context, actionID int64) ([]models.ActionParameter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action_id, parameter_name, parameter_type, COALESCE(default_value, ''),
		       COALESCE(description, ''), is_required, COALESCE(validation_rule, '')
		FROM action_parameters
		WHERE action_id = $1
		ORDER BY id`, actionID)
	if err != nil {
		return nil, fmt.Errorf("list parameters: %w", err)
	}
	defer rows.Close()

	var params []models.ActionParameter
	for rows.Next() {
		var p models.ActionParameter
		if err := rows.Scan(&p.ActionID, &p.Name, &p.Type, &p.DefaultValue,
			&p.Description, &p.Required, &p.ValidationRule); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

func scanIntentActions(rows *sql.Rows) ([]models.IntentAction, error) {
	var actions []models.IntentAction
	for rows.Next() {
		var a models.IntentAction
		if err := rows.Scan(&a.ID, &a.IntentID, &a.ActionName, &a.FunctionName, &a.Description,
			&a.ConfirmationRequired, &a.RiskLevel, &a.Topic, &a.PayloadTemplate,
			&a.TransportCompatible, &a.Active); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
