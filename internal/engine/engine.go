// Package engine resolves free text into a device command and dispatches it.
// Intent classification runs first; when no intent clears its threshold the
// device matcher takes over; when neither lands the resolution is returned
// unresolved so the caller can fall back to conversation.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/common/metrics"
	"github.com/bumperr/gPBL-G8/internal/common/observability"
	"github.com/bumperr/gPBL-G8/internal/engine/classifier"
	"github.com/bumperr/gPBL-G8/internal/engine/matcher"
	"github.com/bumperr/gPBL-G8/internal/engine/params"
	"github.com/bumperr/gPBL-G8/internal/models"
	"github.com/bumperr/gPBL-G8/internal/transport"
)

// TaxonomyStore is the slice of the store the engine reads directly.
// *store.Store satisfies it.
type TaxonomyStore interface {
	ActionsForIntentName(ctx context.Context, intentName string, transportOnly bool) ([]models.IntentAction, error)
	ListParameters(ctx context.Context, actionID int64) ([]models.ActionParameter, error)
}

// Publisher dispatches rendered commands. *transport.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic, payload string) transport.PublishResult
}

// AuditRecorder persists resolutions best effort.
type AuditRecorder interface {
	Record(ctx context.Context, res *models.Resolution)
}

// EmergencyNotifier escalates safety-category resolutions to caregivers.
type EmergencyNotifier interface {
	EscalateEmergency(ctx context.Context, res *models.Resolution, caller *models.CallerContext)
}

type Engine struct {
	store      TaxonomyStore
	classifier *classifier.Classifier
	matcher    *matcher.Matcher
	params     *params.Synthesizer
	publisher  Publisher
	recorder   AuditRecorder
	notifier   EmergencyNotifier
	obs        *observability.Observability
	logger     logger.Logger
}

func New(
	store TaxonomyStore,
	cls *classifier.Classifier,
	m *matcher.Matcher,
	syn *params.Synthesizer,
	publisher Publisher,
	recorder AuditRecorder,
	notifier EmergencyNotifier,
	obs *observability.Observability,
	log logger.Logger,
) *Engine {
	return &Engine{
		store:      store,
		classifier: cls,
		matcher:    m,
		params:     syn,
		publisher:  publisher,
		recorder:   recorder,
		notifier:   notifier,
		obs:        obs,
		logger:     log,
	}
}

// ResolveAndDispatch turns one utterance into a resolution. The returned
// resolution always carries a request id and a source, even when nothing
// matched. Errors are returned for taxonomy lookups failing and for payload
// templates that cannot render; dispatch and audit problems are recorded on
// the resolution instead.
func (e *Engine) ResolveAndDispatch(ctx context.Context, text string, caller *models.CallerContext) (*models.Resolution, error) {
	start := time.Now()

	res := &models.Resolution{
		RequestID: uuid.New().String(),
		Text:      text,
		Source:    "none",
		Timestamp: start.UTC(),
	}

	outcome, err := e.resolve(ctx, res, text, caller)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(res.Source, "error").Inc()
		return nil, err
	}

	metrics.ResolutionsTotal.WithLabelValues(res.Source, outcome).Inc()
	metrics.ResolutionDuration.WithLabelValues(res.Source).Observe(time.Since(start).Seconds())
	if e.obs != nil {
		e.obs.RecordResolution(ctx, outcome)
		e.obs.RecordResolutionDuration(ctx, time.Since(start), outcome)
	}

	if e.recorder != nil {
		e.recorder.Record(ctx, res)
	}
	return res, nil
}

func (e *Engine) resolve(ctx context.Context, res *models.Resolution, text string, caller *models.CallerContext) (string, error) {
	clsResult, err := e.classifier.Classify(ctx, text)
	if err != nil {
		return "", errors.NewTaxonomyQueryFailedError("intent_keywords", err)
	}

	if clsResult != nil {
		res.Source = "intent"
		res.Intent = clsResult.Intent
		res.Category = clsResult.Category
		res.Confidence = clsResult.Confidence
		res.MatchedKeywords = clsResult.MatchedKeywords
		return e.dispatchIntent(ctx, res, text, caller)
	}

	devices, err := e.matcher.FindDevices(ctx, text)
	if err != nil {
		return "", errors.NewTaxonomyQueryFailedError("device_keywords", err)
	}
	if len(devices) > 0 {
		res.Source = "device"
		return e.dispatchDevice(ctx, res, &devices[0], text)
	}

	e.logger.Debug("utterance unresolved", map[string]interface{}{
		"request_id": res.RequestID,
	})
	return "unresolved", nil
}

func (e *Engine) dispatchIntent(ctx context.Context, res *models.Resolution, text string, caller *models.CallerContext) (string, error) {
	if res.Category == "safety" && e.notifier != nil {
		e.notifier.EscalateEmergency(ctx, res, caller)
	}

	actions, err := e.store.ActionsForIntentName(ctx, res.Intent, true)
	if err != nil {
		return "", errors.NewTaxonomyQueryFailedError("intent_actions", err)
	}
	if len(actions) == 0 {
		// a recognized intent with no transport action still resolves;
		// conversation and contact intents end here
		return "resolved", nil
	}

	action := actions[0]
	res.Action = action.FunctionName

	declared, err := e.store.ListParameters(ctx, action.ID)
	if err != nil {
		return "", errors.NewTaxonomyQueryFailedError("action_parameters", err)
	}
	res.Parameters = e.params.Synthesize(declared, text, caller)

	payload, renderErr := renderTemplate(action.PayloadTemplate, res.Parameters)
	if renderErr != nil {
		e.logger.WithError(renderErr).Error("payload render failed", map[string]interface{}{
			"request_id": res.RequestID,
			"action":     action.FunctionName,
		})
		// a broken template is a local defect, not a degraded dependency;
		// it aborts the request instead of producing a half-rendered command
		return "", renderErr
	}

	res.Topic = action.Topic
	res.Payload = payload
	return e.publish(ctx, res), nil
}

func (e *Engine) dispatchDevice(ctx context.Context, res *models.Resolution, device *models.DeviceMatch, text string) (string, error) {
	res.Device = device.Name

	action, err := e.matcher.FindBestAction(ctx, &device.Device, text)
	if err != nil {
		return "", errors.NewTaxonomyQueryFailedError("device_actions", err)
	}
	if action == nil {
		return "resolved", nil
	}

	res.Action = action.ActionName
	res.Topic = device.Topic + "/cmd"
	res.Payload = action.Payload
	return e.publish(ctx, res), nil
}

func (e *Engine) publish(ctx context.Context, res *models.Resolution) string {
	if res.Topic == "" {
		return "resolved"
	}
	result := e.publisher.Publish(ctx, res.Topic, res.Payload)
	res.Dispatched = result.OK
	res.Simulated = result.Simulated
	if !result.OK {
		return "publish_failed"
	}
	return "dispatched"
}

// renderTemplate substitutes {name} placeholders. A placeholder with no
// value is an error rather than a silently broken command.
func renderTemplate(template string, values map[string]string) (string, error) {
	if template == "" {
		return "", nil
	}
	out := template
	for name, value := range values {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	if i := strings.Index(out, "{"); i >= 0 {
		if j := strings.Index(out[i:], "}"); j > 0 {
			return "", errors.NewPayloadRenderFailedError(template,
				fmt.Errorf("unresolved placeholder %s", out[i:i+j+1]))
		}
	}
	return out, nil
}
