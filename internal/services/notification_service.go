package services

import (
	"context"
	"encoding/json"
	"fmt"

	"event-handlers-api/internal/adapters/messaging"
	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	repo      repositories.RecordRepository
	publisher messaging.Publisher
	topicARN  string
	deps      *Dependencies
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(repo repositories.RecordRepository, publisher messaging.Publisher, topicARN string, deps *Dependencies) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		topicARN:  topicARN,
		deps:      deps.withDefaults(),
	}
}

// SendNotification publishes the notification and writes a single record with the final status
func (s *notificationService) SendNotification(ctx context.Context, req *models.NotificationRequest) (*models.NotificationView, error) {
	if req == nil {
		return nil, models.NewValidationError(models.InvalidBody, "", "Request body is required")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := s.deps.NewID()
	now := s.deps.Now()

	messageID, sendErr := s.publish(ctx, req)

	next := models.StatusSent
	if sendErr != nil {
		next = models.StatusFailed
	}
	status, err := models.StatusQueued.Transition(next)
	if err != nil {
		return nil, err
	}

	logger := s.deps.Logger.WithFields(logrus.Fields{
		"notification_id":   id,
		"notification_type": req.Type,
		"status":            status,
	})
	if sendErr != nil {
		logger.WithError(sendErr).Error("Error sending notification")
	}

	record := models.NewRecord(id, req.RecordType(), status, now)
	record["source"] = models.NotificationSourceAPI
	record["recipient"] = req.Recipient
	record["message"] = req.Message
	record["notification_type"] = req.Type
	if req.Subject != "" {
		record["subject"] = req.Subject
	}
	if sendErr != nil {
		record["error"] = sendErr.Error()
	} else if messageID != "" {
		record["message_id"] = messageID
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return nil, models.NewDependencyError("put notification", err)
	}

	s.deps.Metrics.RecordNotification(req.Type, string(status))
	logger.Info("Notification recorded")

	return &models.NotificationView{
		ID:        id,
		Recipient: req.Recipient,
		Type:      req.Type,
		Status:    status,
		Subject:   req.Subject,
	}, nil
}

// publish sends email and SMS the same way; only email carries a subject
func (s *notificationService) publish(ctx context.Context, req *models.NotificationRequest) (string, error) {
	msg := messaging.Message{
		TopicARN: s.topicARN,
		Body:     req.Message,
		Attributes: map[string]string{
			"notification_type": req.Type,
			"recipient":         req.Recipient,
		},
	}
	if req.Type == models.NotificationTypeEmail {
		msg.Subject = req.Subject
		if msg.Subject == "" {
			msg.Subject = models.DefaultEmailSubject
		}
	}
	return s.publisher.Publish(ctx, msg)
}

// ProcessMessages records each message independently
func (s *notificationService) ProcessMessages(ctx context.Context, records []events.SNSEventRecord) []lambda.Outcome[string] {
	return lambda.Fold(records, func(index int, record events.SNSEventRecord) (string, error) {
		id, err := s.processMessage(ctx, record)
		if err != nil {
			s.deps.Logger.WithFields(logrus.Fields{
				"record_index":   index,
				"sns_message_id": record.SNS.MessageID,
			}).WithError(err).Error("Error processing pub/sub record")
		}
		return id, err
	})
}

func (s *notificationService) processMessage(ctx context.Context, record events.SNSEventRecord) (string, error) {
	msg := record.SNS
	subject := msg.Subject
	if subject == "" {
		subject = models.DefaultSNSSubject
	}
	recipient, notificationType := parseMessageHints(msg.Message)

	s.deps.Logger.WithField("topic_arn", msg.TopicArn).Info("Processing pub/sub message")

	id := s.deps.NewID()
	notification := models.NewRecord(id, notificationType, models.StatusReceived, s.deps.Now())
	notification["source"] = models.NotificationSourceSNS
	notification["topic_arn"] = msg.TopicArn
	notification["recipient"] = recipient
	notification["subject"] = subject
	notification["message"] = msg.Message
	notification["sns_message_id"] = msg.MessageID

	if err := s.repo.Put(ctx, notification); err != nil {
		return "", models.NewDependencyError("put received notification", err)
	}

	status, err := models.StatusReceived.Transition(models.StatusProcessed)
	if err != nil {
		return id, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		models.FieldStatus: string(status),
		"processed_at":     models.FormatTimestamp(s.deps.Now()),
	}); err != nil {
		return id, models.NewDependencyError("mark notification processed", err)
	}

	return id, nil
}

// parseMessageHints recovers recipient and type from a JSON message body,
// falling back to defaults when the body is not a JSON object
func parseMessageHints(body string) (recipient, notificationType string) {
	recipient, notificationType = models.DefaultSNSRecipient, models.DefaultSNSType

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed == nil {
		return recipient, notificationType
	}
	if v, ok := parsed["recipient"]; ok && v != nil {
		recipient = fmt.Sprint(v)
	}
	if v, ok := parsed["type"]; ok && v != nil {
		notificationType = fmt.Sprint(v)
	}
	return recipient, notificationType
}
