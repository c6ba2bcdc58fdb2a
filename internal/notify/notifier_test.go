package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
	"github.com/bumperr/gPBL-G8/internal/transport"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

type fakeSMS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSMS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

type fakeEmail struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmail) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

type fakeAlerts struct {
	topics   []string
	payloads []string
}

func (f *fakeAlerts) Publish(ctx context.Context, topic, payload string) transport.PublishResult {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return transport.PublishResult{OK: true}
}

func notifyConfig() config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.Email.Enabled = true
	cfg.Email.FromEmail = "assist@example.com"
	cfg.Email.Caregiver = "caregiver@example.com"
	cfg.SMS.Enabled = true
	cfg.SMS.SenderID = "HOMEASSIST"
	cfg.SMS.FamilyPhone = "+60110000000"
	return cfg
}

func emergencyResolution() *models.Resolution {
	return &models.Resolution{
		RequestID:  "req-9",
		Text:       "help me I have fallen",
		Source:     "intent",
		Intent:     "emergency",
		Category:   "safety",
		Confidence: 1.0,
	}
}

// ==========================
// Escalation Tests
// ==========================

func TestNotifier_EscalateEmergency_AllChannels(t *testing.T) {
	sms := &fakeSMS{}
	email := &fakeEmail{}
	alerts := &fakeAlerts{}
	n := New(notifyConfig(), "emergency/alert", sms, email, alerts, createTestLogger(t))

	caller := &models.CallerContext{Name: "Ahmad", Location: "bathroom", FamilyPhone: "+60123456789"}
	n.EscalateEmergency(context.Background(), emergencyResolution(), caller)

	require.Len(t, alerts.topics, 1)
	assert.Equal(t, "emergency/alert", alerts.topics[0])
	assert.Contains(t, alerts.payloads[0], "Ahmad")
	assert.Contains(t, alerts.payloads[0], "bathroom")

	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+60123456789", *sms.inputs[0].PhoneNumber)
	assert.Contains(t, *sms.inputs[0].Message, "EMERGENCY")
	require.Contains(t, sms.inputs[0].MessageAttributes, "AWS.SNS.SMS.SenderID")
	assert.Equal(t, "HOMEASSIST", *sms.inputs[0].MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)

	require.Len(t, email.inputs, 1)
	assert.Equal(t, "assist@example.com", *email.inputs[0].Source)
	assert.Equal(t, []string{"caregiver@example.com"}, email.inputs[0].Destination.ToAddresses)
	assert.Contains(t, *email.inputs[0].Message.Body.Text.Data, "help me I have fallen")
}

func TestNotifier_CallerPhoneOverridesConfigured(t *testing.T) {
	sms := &fakeSMS{}
	n := New(notifyConfig(), "", sms, nil, nil, createTestLogger(t))

	n.EscalateEmergency(context.Background(), emergencyResolution(), &models.CallerContext{FamilyPhone: "+60199999999"})

	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+60199999999", *sms.inputs[0].PhoneNumber)
}

func TestNotifier_ConfiguredPhoneUsedWithoutCaller(t *testing.T) {
	sms := &fakeSMS{}
	n := New(notifyConfig(), "", sms, nil, nil, createTestLogger(t))

	n.EscalateEmergency(context.Background(), emergencyResolution(), nil)

	require.Len(t, sms.inputs, 1)
	assert.Equal(t, "+60110000000", *sms.inputs[0].PhoneNumber)
}

func TestNotifier_SMSFailureDoesNotStopEmail(t *testing.T) {
	sms := &fakeSMS{err: errors.New("sns throttled")}
	email := &fakeEmail{}
	n := New(notifyConfig(), "", sms, email, nil, createTestLogger(t))

	n.EscalateEmergency(context.Background(), emergencyResolution(), nil)

	assert.Len(t, email.inputs, 1)
}

func TestNotifier_DisabledChannelsSkipped(t *testing.T) {
	cfg := notifyConfig()
	cfg.SMS.Enabled = false
	cfg.Email.Enabled = false
	sms := &fakeSMS{}
	email := &fakeEmail{}
	n := New(cfg, "emergency/alert", sms, email, &fakeAlerts{}, createTestLogger(t))

	n.EscalateEmergency(context.Background(), emergencyResolution(), nil)

	assert.Empty(t, sms.inputs)
	assert.Empty(t, email.inputs)
}
