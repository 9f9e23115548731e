package notification

import (
	"context"
	"fmt"

	"storefront/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// messageSender is the part of the FCM client the notifier uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseService struct {
	client messageSender
	topic  string
}

// NewFirebaseService creates an operator notifier that sends to an FCM topic.
// Operator devices subscribe to the topic from the client app.
func NewFirebaseService(ctx context.Context, credentialsPath, projectID, topic string) (service.OperatorNotifier, error) {
	if topic == "" {
		return nil, fmt.Errorf("operator topic is required")
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return newFirebaseService(client, topic), nil
}

func newFirebaseService(client messageSender, topic string) *firebaseService {
	return &firebaseService{
		client: client,
		topic:  topic,
	}
}

// NotifyOperators sends a push notification to every device subscribed to the operator topic
func (s *firebaseService) NotifyOperators(ctx context.Context, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send operator notification: %w", err)
	}

	return nil
}
