package persistent

import (
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	GetChannel(channelID string) (*entity.Channel, error)
	Exists(subscriberID, channelID string) (bool, error)
	// Subscribe inserts the subscription row and bumps the channel's
	// subscriber counter in one transaction.
	Subscribe(subscriberID, channelID string) (*entity.Subscription, error)
	// Unsubscribe deletes the row and decrements the counter (never below
	// zero) in one transaction. Returns gorm.ErrRecordNotFound when no
	// subscription exists.
	Unsubscribe(subscriberID, channelID string) error
	ListBySubscriber(subscriberID string) ([]entity.Subscription, error)
	ListSubscribers(channelID string) ([]entity.Subscriber, error)
	CountSubscribers(channelID string) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetChannel(channelID string) (*entity.Channel, error) {
	var m model.ProfileRef
	if err := r.db.Where("id = ?", channelID).First(&m).Error; err != nil {
		return nil, err
	}
	return toChannelEntity(&m), nil
}

func (r *subscriptionRepository) Exists(subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) Subscribe(subscriberID, channelID string) (*entity.Subscription, error) {
	m := &model.SubscriptionModel{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&model.ProfileRef{}).
			Where("id = ?", channelID).
			UpdateColumn("total_subscribers", gorm.Expr("total_subscribers + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return toSubscriptionEntity(m), nil
}

func (r *subscriptionRepository) Unsubscribe(subscriberID, channelID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&model.SubscriptionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.ProfileRef{}).
			Where("id = ?", channelID).
			UpdateColumn("total_subscribers", gorm.Expr("GREATEST(total_subscribers - 1, 0)")).Error
	})
}

func (r *subscriptionRepository) ListBySubscriber(subscriberID string) ([]entity.Subscription, error) {
	var ms []model.SubscriptionModel
	if err := r.db.Where("subscriber_id = ?", subscriberID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	subs := make([]entity.Subscription, 0, len(ms))
	for i := range ms {
		sub := toSubscriptionEntity(&ms[i])
		var channel model.ProfileRef
		if err := r.db.Where("id = ?", sub.ChannelID).First(&channel).Error; err == nil {
			sub.ChannelTitle = channel.Title
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (r *subscriptionRepository) ListSubscribers(channelID string) ([]entity.Subscriber, error) {
	var ms []model.SubscriptionModel
	if err := r.db.Where("channel_id = ?", channelID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	subscribers := make([]entity.Subscriber, 0, len(ms))
	for i := range ms {
		subscribers = append(subscribers, entity.Subscriber{
			SubscriberID: ms[i].SubscriberID,
			SubscribedAt: ms[i].CreatedAt,
		})
	}
	return subscribers, nil
}

func (r *subscriptionRepository) CountSubscribers(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}
