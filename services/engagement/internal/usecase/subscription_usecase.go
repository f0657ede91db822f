package usecase

import (
	"context"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/repo/persistent"
)

// Notifier publishes out-of-band notification payloads. Satisfied by
// pkg/queue.Client.
type Notifier interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type SubscriberList struct {
	ChannelID   string              `json:"channel_id"`
	Count       int64               `json:"count"`
	Subscribers []entity.Subscriber `json:"subscribers,omitempty"`
}

type SubscriptionUseCase interface {
	// Subscribe creates the subscription; created is false when the caller
	// was already subscribed, which is not an error.
	Subscribe(ctx context.Context, subscriberID, channelID string) (bool, error)
	Unsubscribe(ctx context.Context, subscriberID, channelID string) error
	ListMySubscriptions(ctx context.Context, subscriberID string) ([]entity.Subscription, error)
	GetSubscribers(ctx context.Context, channelID string, onlyCount bool) (*SubscriberList, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	notifier         Notifier
	logger           *logger.Logger
}

func NewSubscriptionUseCase(subscriptionRepo persistent.SubscriptionRepository, notifier Notifier, logger *logger.Logger) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *subscriptionUseCase) Subscribe(ctx context.Context, subscriberID, channelID string) (bool, error) {
	channel, err := uc.subscriptionRepo.GetChannel(channelID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return false, apperr.NotFound("channel")
		}
		return false, apperr.Internal(err)
	}

	if channel.UserID == subscriberID {
		return false, apperr.Validation("you cannot subscribe to your own channel")
	}

	exists, err := uc.subscriptionRepo.Exists(subscriberID, channelID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if exists {
		return false, nil
	}

	if _, err := uc.subscriptionRepo.Subscribe(subscriberID, channelID); err != nil {
		// A concurrent request may have created the row between the Exists
		// check and the insert; that caller is simply already subscribed.
		if persistent.IsDuplicate(err) {
			return false, nil
		}
		return false, apperr.Internal(err)
	}

	uc.notifyNewSubscriber(channel, subscriberID)
	return true, nil
}

func (uc *subscriptionUseCase) Unsubscribe(ctx context.Context, subscriberID, channelID string) error {
	if err := uc.subscriptionRepo.Unsubscribe(subscriberID, channelID); err != nil {
		if persistent.IsNotFound(err) {
			return apperr.NotFound("subscription")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (uc *subscriptionUseCase) ListMySubscriptions(ctx context.Context, subscriberID string) ([]entity.Subscription, error) {
	subs, err := uc.subscriptionRepo.ListBySubscriber(subscriberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return subs, nil
}

func (uc *subscriptionUseCase) GetSubscribers(ctx context.Context, channelID string, onlyCount bool) (*SubscriberList, error) {
	if _, err := uc.subscriptionRepo.GetChannel(channelID); err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("channel")
		}
		return nil, apperr.Internal(err)
	}

	count, err := uc.subscriptionRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	list := &SubscriberList{ChannelID: channelID, Count: count}
	if onlyCount {
		return list, nil
	}

	subscribers, err := uc.subscriptionRepo.ListSubscribers(channelID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	list.Subscribers = subscribers
	return list, nil
}

func (uc *subscriptionUseCase) notifyNewSubscriber(channel *entity.Channel, subscriberID string) {
	if uc.notifier == nil {
		return
	}
	go func() {
		err := uc.notifier.PublishNotificationTask(map[string]interface{}{
			"type":          "new_subscriber",
			"channel_id":    channel.ID,
			"channel_owner": channel.UserID,
			"subscriber_id": subscriberID,
		})
		if err != nil {
			uc.logger.Error("[NOTIFY] Failed to publish new-subscriber task: %v", err)
		}
	}()
}
