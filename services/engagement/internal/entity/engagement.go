package entity

import "time"

type LikeStatus string

const (
	StatusLike    LikeStatus = "like"
	StatusDislike LikeStatus = "dislike"
)

type Like struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"video_id"`
	UserID    string     `json:"user_id"`
	Status    LikeStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type LikeCount struct {
	VideoID  string `json:"video_id"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Channel is the slice of a profile the engagement service needs: enough to
// verify existence, detect self-subscription and report the counter.
type Channel struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	Title            string `json:"title"`
	TotalSubscribers int    `json:"total_subscribers"`
}

type Subscriber struct {
	SubscriberID string    `json:"subscriber_id"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type Reply struct {
	UserID string `json:"user_id,omitempty"`
	Text   string `json:"text"`
}

type Comment struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	UserID      string    `json:"user_id"`
	CommentText string    `json:"comment_text"`
	Replies     []Reply   `json:"replies"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
