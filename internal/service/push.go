package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
)

// messageSender is the part of the FCM client the push service uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type pushService struct {
	client messageSender
}

// NewPushService builds the driver push notifier on Firebase Cloud Messaging.
// With no credentials file push is disabled and every send is a no-op.
func NewPushService(ctx context.Context, credentialsFile string) (PushService, error) {
	if credentialsFile == "" {
		logger.WithService("push").Warn("Firebase credentials not configured, driver push notifications disabled")
		return newPushService(nil), nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return newPushService(client), nil
}

func newPushService(client messageSender) *pushService {
	return &pushService{client: client}
}

func (s *pushService) NotifyDriverDispatched(ctx context.Context, driver *domain.Staff, b *domain.Booking) error {
	if s.client == nil {
		return nil
	}
	if driver.PushToken == "" {
		logger.WithService("push").Info("driver has no registered device, skipping push", "driverID", driver.ID, "bookingID", b.ID)
		return nil
	}

	msg := &messaging.Message{
		Token: driver.PushToken,
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("Delivery #%d assigned", b.ID),
			Body:  fmt.Sprintf("Deliver to %s by %s", b.DeliveryAddress, b.StartAt.Format("Jan 2 3:04 PM")),
		},
		Data: map[string]string{
			"booking_id": fmt.Sprintf("%d", b.ID),
			"type":       "delivery_dispatched",
		},
	}

	logger.ExternalServiceCall("fcm", "Send", "driverID", driver.ID, "bookingID", b.ID)
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err, "driverID", driver.ID, "bookingID", b.ID)
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}
	return nil
}
