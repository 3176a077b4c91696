package models

import "strings"

// Notification record fields and sources
const (
	NotificationSourceAPI = "api"
	NotificationSourceSNS = "sns"

	DefaultSNSRecipient = "unknown"
	DefaultSNSType      = "sns"
	DefaultSNSSubject   = "No Subject"
	DefaultEmailSubject = "Notification"
)

// NotificationRequest is the body accepted by the notify endpoint
type NotificationRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Subject   string `json:"subject,omitempty"`
}

// Normalize trims surrounding whitespace from every field
func (r *NotificationRequest) Normalize() {
	r.Recipient = strings.TrimSpace(r.Recipient)
	r.Message = strings.TrimSpace(r.Message)
	r.Type = strings.TrimSpace(r.Type)
	r.Subject = strings.TrimSpace(r.Subject)
}

// Validate checks required fields, the type enum and the recipient format for that type
func (r *NotificationRequest) Validate() error {
	if err := ValidateStruct(r); err != nil {
		return err
	}
	if err := ValidateEnum(r.Type, "type", "type", NotificationTypes); err != nil {
		return err
	}
	if r.Type == NotificationTypeSMS {
		return ValidatePhone(r.Recipient, "recipient")
	}
	return ValidateEmail(r.Recipient, "recipient")
}

// RecordType returns the record discriminator for an API notification of this type
func (r *NotificationRequest) RecordType() string {
	return r.Type + "_notification"
}

// NotificationView is the canonical notification shape returned to API callers
type NotificationView struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Type      string `json:"type"`
	Status    Status `json:"status"`
	Subject   string `json:"subject,omitempty"`
}
