package messaging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client used by SNSPublisher
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes messages to an SNS topic
type SNSPublisher struct {
	client SNSAPI
}

// NewSNSPublisher creates a publisher backed by client
func NewSNSPublisher(client SNSAPI) *SNSPublisher {
	return &SNSPublisher{client: client}
}

// Publish implements Publisher.Publish. Attributes are sent as String message attributes.
func (p *SNSPublisher) Publish(ctx context.Context, msg Message) (string, error) {
	if msg.Body == "" {
		return "", &PublishError{Topic: msg.TopicARN, Err: ErrEmptyMessage}
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(msg.TopicARN),
		Message:  aws.String(msg.Body),
	}
	if msg.Subject != "" {
		input.Subject = aws.String(msg.Subject)
	}
	if len(msg.Attributes) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(msg.Attributes))
		for name, value := range msg.Attributes {
			input.MessageAttributes[name] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(value),
			}
		}
	}

	out, err := p.client.Publish(ctx, input)
	if err != nil {
		return "", &PublishError{Topic: msg.TopicARN, Err: err}
	}
	return aws.ToString(out.MessageId), nil
}
