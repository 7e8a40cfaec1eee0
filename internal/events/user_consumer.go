package events

import (
	"context"

	"github.com/gearshare/service-rental/internal/platform/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// HostProfileSyncer propagates a user's current profile into the
// denormalized host fields on their items. Implemented by the item service.
type HostProfileSyncer interface {
	SyncHostProfile(ctx context.Context, hostID uuid.UUID, name, avatarURL string) error
}

// UserEventConsumer listens to user events and keeps denormalized host
// fields on items in sync with profile edits.
type UserEventConsumer struct {
	consumer *kafka.Consumer
	syncer   HostProfileSyncer
	logger   *zap.Logger
}

// NewUserEventConsumer creates a new UserEventConsumer.
func NewUserEventConsumer(
	brokers []string,
	groupID string,
	syncer HostProfileSyncer,
	logger *zap.Logger,
) *UserEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicUserEvents, logger)
	return &UserEventConsumer{
		consumer: consumer,
		syncer:   syncer,
		logger:   logger,
	}
}

// Start begins consuming user events. This blocks until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case UserProfileUpdated:
		return c.handleProfileUpdated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled user event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *UserEventConsumer) handleProfileUpdated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt UserProfileUpdatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse UserProfileUpdatedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	if err := c.syncer.SyncHostProfile(ctx, evt.UserID, evt.Name, evt.AvatarURL); err != nil {
		c.logger.Error("failed to sync host profile onto items",
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("host profile synced onto items",
		zap.String("user_id", evt.UserID.String()),
	)
	return nil
}
