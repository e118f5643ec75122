// internal/models/notification.go
package models

// Notification is one recorded delivery attempt in the notification log.
// Status mirrors the notify package's receipt states.
type Notification struct {
	ID            string                 `json:"id"`
	RecipientID   string                 `json:"recipientId"`
	RecipientType string                 `json:"recipientType"` // "producer" or "customer"
	Type          string                 `json:"type"`          // "submission_received", "forms_generated"
	Channel       string                 `json:"channel"`       // "email", "sms"
	Status        string                 `json:"status"`        // "sent", "failed", "disabled"
	Payload       map[string]interface{} `json:"payload"`
	SentAt        string                 `json:"sentAt"`
	CreatedAt     string                 `json:"createdAt"`
}

// NotificationTemplate is one renderable message. Subject and Body may
// carry {{placeholder}} tokens that are substituted from event data.
type NotificationTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
