package entity

import "time"

type EngagementType string

const (
	EngagementPause  EngagementType = "pause"
	EngagementResume EngagementType = "resume"
	EngagementSeek   EngagementType = "seek"
	EngagementHover  EngagementType = "hover"
)

type WatchEvent struct {
	ID              string    `json:"id"`
	VideoID         string    `json:"video_id"`
	UserID          *string   `json:"user_id"`
	DurationSeconds int       `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
}

type EngagementEvent struct {
	ID        string                 `json:"id"`
	VideoID   string                 `json:"video_id"`
	UserID    *string                `json:"user_id"`
	EventType EngagementType         `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details"`
}

// VideoSummary is the aggregated analytics view for one video. Views come
// from the counter row, likes/dislikes are counted live, and the average
// watch time is computed over all recorded watch events.
type VideoSummary struct {
	VideoID          string  `json:"video_id"`
	VideoTitle       string  `json:"video_title,omitempty"`
	Views            int64   `json:"views"`
	Likes            int64   `json:"likes"`
	Dislikes         int64   `json:"dislikes"`
	AverageWatchTime float64 `json:"average_watch_time"`
}

type TrendingVideo struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Views   int64  `json:"views"`
}

type AdminOverview struct {
	TotalViews     int64           `json:"total_views"`
	TotalWatchTime int64           `json:"total_watch_time"`
	TotalLikes     int64           `json:"total_likes"`
	TotalDislikes  int64           `json:"total_dislikes"`
	Trending       []TrendingVideo `json:"trending"`
}
