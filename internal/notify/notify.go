// internal/notify/notify.go

// Package notify delivers submission lifecycle notifications over SES
// email and SNS SMS. Every attempt is recorded for the activity view,
// and delivery failures are reported in the receipt rather than as
// errors so a notification outage never blocks the intake flow.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"acord-intake/internal/common/config"
	apperrors "acord-intake/internal/common/errors"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/metrics"
	"acord-intake/internal/models"
	"acord-intake/internal/repository"
)

// Notification types
const (
	TypeSubmissionReceived = "submission_received"
	TypeFormsGenerated     = "forms_generated"
	TypeSubmissionDeclined = "submission_declined"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeCustomer = "customer"
	RecipientTypeProducer = "producer"
)

const PriorityHigh = "high"

var ErrUnknownNotificationType = errors.New("UNKNOWN_NOTIFICATION_TYPE")

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Request describes one notification to deliver.
type Request struct {
	RecipientID   string                 `json:"recipientId"`
	RecipientType string                 `json:"recipientType"`
	Email         string                 `json:"email,omitempty"`
	Phone         string                 `json:"phone,omitempty"`
	EventType     string                 `json:"eventType"`
	Priority      string                 `json:"priority,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// Receipt reports what happened to a notification attempt.
type Receipt struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

type Notifier struct {
	config    *config.NotificationConfig
	sesClient SESService
	snsClient SNSService
	records   *repository.NotificationRepository
	logger    logger.Logger
	templates map[string]models.NotificationTemplate
}

func NewNotifier(ctx context.Context, cfg *config.NotificationConfig, records *repository.NotificationRepository, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Notifier{
		config:    cfg,
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
		records:   records,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		templates: defaultTemplates(),
	}, nil
}

// Send renders the template for the event and delivers it over the
// enabled channels. SMS only goes out for high priority events.
func (n *Notifier) Send(ctx context.Context, req *Request) (*Receipt, error) {
	tmpl, ok := n.templates[req.EventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNotificationType, req.EventType)
	}

	subject := renderTemplate(tmpl.Subject, req.Data)
	body := renderTemplate(tmpl.Body, req.Data)

	receipt := &Receipt{
		NotificationID: uuid.New().String(),
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	emailSent := false
	smsSent := false

	if n.config.Email.Enabled && req.Email != "" {
		if err := n.sendEmail(ctx, req.Email, subject, body); err != nil {
			n.logger.Error("email send failed", map[string]interface{}{
				"error": apperrors.NewNotificationSendFailedError("email", err),
				"email": req.Email,
			})
			metrics.NotificationsSent.WithLabelValues("email", StatusFailed).Inc()
			n.record(ctx, req, "email", StatusFailed, subject, receipt.SentAt)
			receipt.Status = StatusFailed
			return receipt, nil
		}
		metrics.NotificationsSent.WithLabelValues("email", StatusSent).Inc()
		n.record(ctx, req, "email", StatusSent, subject, receipt.SentAt)
		emailSent = true
	}

	if n.config.SMS.Enabled && req.Phone != "" && req.Priority == PriorityHigh {
		if err := n.sendSMS(ctx, req.Phone, body); err != nil {
			n.logger.Error("SMS send failed", map[string]interface{}{
				"error": apperrors.NewNotificationSendFailedError("sms", err),
				"phone": req.Phone,
			})
			metrics.NotificationsSent.WithLabelValues("sms", StatusFailed).Inc()
			n.record(ctx, req, "sms", StatusFailed, subject, receipt.SentAt)
			receipt.Status = StatusFailed
			return receipt, nil
		}
		metrics.NotificationsSent.WithLabelValues("sms", StatusSent).Inc()
		n.record(ctx, req, "sms", StatusSent, subject, receipt.SentAt)
		smsSent = true
	}

	receipt.Status = StatusDisabled
	if emailSent || smsSent {
		receipt.Status = StatusSent
	}

	return receipt, nil
}

// SubmissionReceived confirms intake to the customer contact.
func (n *Notifier) SubmissionReceived(ctx context.Context, sub *models.Submission) (*Receipt, error) {
	return n.Send(ctx, &Request{
		RecipientID:   sub.ID,
		RecipientType: RecipientTypeCustomer,
		Email:         sub.Contact.Email,
		Phone:         sub.Contact.Phone,
		EventType:     TypeSubmissionReceived,
		Data: map[string]interface{}{
			"contactFirstName": sub.Contact.FirstName,
			"businessName":     sub.Business.LegalName,
			"submissionId":     sub.ID,
		},
	})
}

// FormsGenerated tells the owning producer their ACORD forms are ready.
func (n *Notifier) FormsGenerated(ctx context.Context, sub *models.Submission, producer *models.User, formTypes []string) (*Receipt, error) {
	return n.Send(ctx, &Request{
		RecipientID:   producer.ID,
		RecipientType: RecipientTypeProducer,
		Email:         producer.Email,
		EventType:     TypeFormsGenerated,
		Data: map[string]interface{}{
			"producerName": strings.TrimSpace(producer.FirstName + " " + producer.LastName),
			"businessName": sub.Business.LegalName,
			"submissionId": sub.ID,
			"formCount":    len(formTypes),
			"formList":     strings.Join(formTypes, ", "),
		},
	})
}

// SubmissionDeclined informs the customer contact, at high priority so
// the SMS channel fires when enabled.
func (n *Notifier) SubmissionDeclined(ctx context.Context, sub *models.Submission, reason string) (*Receipt, error) {
	return n.Send(ctx, &Request{
		RecipientID:   sub.ID,
		RecipientType: RecipientTypeCustomer,
		Email:         sub.Contact.Email,
		Phone:         sub.Contact.Phone,
		EventType:     TypeSubmissionDeclined,
		Priority:      PriorityHigh,
		Data: map[string]interface{}{
			"contactFirstName": sub.Contact.FirstName,
			"businessName":     sub.Business.LegalName,
			"submissionId":     sub.ID,
			"reason":           reason,
		},
	})
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.config.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}

// record stores the attempt. Recording is non-critical; a failure is
// logged and the notification outcome stands.
func (n *Notifier) record(ctx context.Context, req *Request, channel, status, subject, sentAt string) {
	if n.records == nil {
		return
	}

	payload := map[string]interface{}{
		"subject": subject,
	}
	for k, v := range req.Data {
		payload[k] = v
	}

	err := n.records.Record(ctx, &models.Notification{
		RecipientID:   req.RecipientID,
		RecipientType: req.RecipientType,
		Type:          req.EventType,
		Channel:       channel,
		Status:        status,
		Payload:       payload,
		SentAt:        sentAt,
	})
	if err != nil {
		n.logger.Warn("failed to record notification", map[string]interface{}{
			"error":      err,
			"event_type": req.EventType,
			"channel":    channel,
		})
	}
}

// renderTemplate substitutes {{key}} placeholders and strips any that
// have no value so recipients never see raw template syntax.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		var value string
		switch t := v.(type) {
		case string:
			value = t
		case int:
			value = strconv.Itoa(t)
		case float64:
			value = strconv.FormatFloat(t, 'f', -1, 64)
		case nil:
		default:
			value = fmt.Sprintf("%v", t)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}

	return result
}

func defaultTemplates() map[string]models.NotificationTemplate {
	return map[string]models.NotificationTemplate{
		TypeSubmissionReceived: {
			Subject: "We received your insurance application",
			Body:    "Hello {{contactFirstName}}, your application for {{businessName}} has been received. Reference: {{submissionId}}. Your agent will follow up shortly.",
		},
		TypeFormsGenerated: {
			Subject: "ACORD forms ready for {{businessName}}",
			Body:    "Hello {{producerName}}, {{formCount}} ACORD form(s) are ready for submission {{submissionId}}: {{formList}}.",
		},
		TypeSubmissionDeclined: {
			Subject: "Update on your insurance application",
			Body:    "Hello {{contactFirstName}}, we are unable to proceed with the application for {{businessName}} (reference {{submissionId}}). {{reason}}",
		},
	}
}
