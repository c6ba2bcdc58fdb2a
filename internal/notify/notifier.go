// Package notify escalates emergencies to caregivers over SMS and email and
// raises the in-home alert topic. Every channel is best effort and failures
// in one never stop the others.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
	"github.com/bumperr/gPBL-G8/internal/transport"
)

// SMSSender is satisfied by *aws.SNSClient.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// EmailSender is satisfied by *aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// AlertPublisher raises the in-home alert topic. *transport.Client satisfies it.
type AlertPublisher interface {
	Publish(ctx context.Context, topic, payload string) transport.PublishResult
}

type Notifier struct {
	cfg        config.NotificationConfig
	alertTopic string
	sms        SMSSender
	email      EmailSender
	alerts     AlertPublisher
	logger     logger.Logger
}

func New(cfg config.NotificationConfig, alertTopic string, sms SMSSender, email EmailSender, alerts AlertPublisher, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:        cfg,
		alertTopic: alertTopic,
		sms:        sms,
		email:      email,
		alerts:     alerts,
		logger:     log,
	}
}

// EscalateEmergency fans an emergency resolution out to every configured
// channel. The in-home alert goes first so nearby helpers hear it even when
// the uplink is down.
func (n *Notifier) EscalateEmergency(ctx context.Context, res *models.Resolution, caller *models.CallerContext) {
	message := emergencyMessage(res, caller)

	if n.alerts != nil && n.alertTopic != "" {
		result := n.alerts.Publish(ctx, n.alertTopic, message)
		n.logger.Info("emergency alert raised", map[string]interface{}{
			"topic":     n.alertTopic,
			"simulated": result.Simulated,
		})
	}

	if err := n.sendSMS(ctx, message, caller); err != nil {
		n.logger.WithError(err).Error("emergency sms failed", map[string]interface{}{
			"request_id": res.RequestID,
		})
	}
	if err := n.sendEmail(ctx, message, res); err != nil {
		n.logger.WithError(err).Error("emergency email failed", map[string]interface{}{
			"request_id": res.RequestID,
		})
	}
}

func (n *Notifier) sendSMS(ctx context.Context, message string, caller *models.CallerContext) error {
	if !n.cfg.SMS.Enabled || n.sms == nil {
		return nil
	}

	phone := n.cfg.SMS.FamilyPhone
	if caller != nil && caller.FamilyPhone != "" {
		phone = caller.FamilyPhone
	}
	if phone == "" {
		return errors.NewNotificationSendFailedError("sms", fmt.Errorf("no family phone configured"))
	}

	input := &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phone),
	}
	if n.cfg.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.cfg.SMS.SenderID),
			},
		}
	}

	if _, err := n.sms.Publish(ctx, input); err != nil {
		return errors.NewNotificationSendFailedError("sms", err)
	}
	return nil
}

func (n *Notifier) sendEmail(ctx context.Context, message string, res *models.Resolution) error {
	if !n.cfg.Email.Enabled || n.email == nil {
		return nil
	}
	if n.cfg.Email.Caregiver == "" {
		return errors.NewNotificationSendFailedError("email", fmt.Errorf("no caregiver address configured"))
	}

	subject := fmt.Sprintf("Emergency alert (%s)", res.Intent)
	body := fmt.Sprintf("%s\n\nHeard: %q\nConfidence: %.2f\nRequest: %s",
		message, res.Text, res.Confidence, res.RequestID)

	input := &ses.SendEmailInput{
		Source: aws.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.Email.Caregiver},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := n.email.SendEmail(ctx, input); err != nil {
		return errors.NewNotificationSendFailedError("email", err)
	}
	return nil
}

func emergencyMessage(res *models.Resolution, caller *models.CallerContext) string {
	who := "the resident"
	if caller != nil && caller.Name != "" {
		who = caller.Name
	}
	where := ""
	if caller != nil && caller.Location != "" {
		where = fmt.Sprintf(" in the %s", caller.Location)
	}
	return fmt.Sprintf("EMERGENCY: %s%s needs help. Heard: %q", who, where, res.Text)
}
