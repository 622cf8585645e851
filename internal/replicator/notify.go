package replicator

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

// Notifier abstracts the notification publish call. Publish returns the
// delivery message ID reported by the channel for traceability.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) (string, error)
	Target() string
}

// SNSNotifier implements Notifier on an Amazon SNS topic
type SNSNotifier struct {
	client   snsiface.SNSAPI
	topicARN string
}

// NewSNSNotifier creates a new SNSNotifier using the default credential chain
func NewSNSNotifier(config *Config) (*SNSNotifier, error) {
	if config == nil {
		return nil, NewConfigurationError("notification configuration is required", nil)
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.Region),
	})
	if err != nil {
		return nil, NewStorageError("failed to create AWS session", err)
	}

	return &SNSNotifier{
		client:   sns.New(sess),
		topicARN: config.TopicARN,
	}, nil
}

// NewSNSNotifierWithClient creates an SNSNotifier around an existing client,
// letting tests substitute a fake
func NewSNSNotifierWithClient(client snsiface.SNSAPI, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   client,
		topicARN: topicARN,
	}
}

// Publish sends one message to the configured topic
func (n *SNSNotifier) Publish(ctx context.Context, subject, message string) (string, error) {
	output, err := n.client.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", NewStorageError("failed to publish notification", err)
	}

	messageID := ""
	if output.MessageId != nil {
		messageID = *output.MessageId
	}
	return messageID, nil
}

// Target returns the topic the notifier publishes to
func (n *SNSNotifier) Target() string {
	return n.topicARN
}
