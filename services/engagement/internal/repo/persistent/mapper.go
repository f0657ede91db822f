package persistent

import (
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/model"
)

func toLikeEntity(m *model.LikeModel) *entity.Like {
	return &entity.Like{
		ID:        m.ID,
		VideoID:   m.VideoID,
		UserID:    m.UserID,
		Status:    entity.LikeStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}

func toChannelEntity(m *model.ProfileRef) *entity.Channel {
	return &entity.Channel{
		ID:               m.ID,
		UserID:           m.UserID,
		Title:            m.Title,
		TotalSubscribers: m.TotalSubscribers,
	}
}

func toCommentEntity(m *model.CommentModel) *entity.Comment {
	replies := make([]entity.Reply, 0, len(m.Replies))
	for _, r := range m.Replies {
		replies = append(replies, entity.Reply{UserID: r.UserID, Text: r.Text})
	}
	return &entity.Comment{
		ID:          m.ID,
		VideoID:     m.VideoID,
		UserID:      m.UserID,
		CommentText: m.CommentText,
		Replies:     replies,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toReplyDocs(replies []entity.Reply) []model.ReplyDoc {
	docs := make([]model.ReplyDoc, 0, len(replies))
	for _, r := range replies {
		docs = append(docs, model.ReplyDoc{UserID: r.UserID, Text: r.Text})
	}
	return docs
}
