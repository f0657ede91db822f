package entity

import "time"

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

type DurationBucket string

const (
	DurationShort    DurationBucket = "short"
	DurationMedium   DurationBucket = "medium"
	DurationLong     DurationBucket = "long"
	DurationVeryLong DurationBucket = "very_long"
)

type Video struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Visibility   Visibility     `json:"visibility"`
	Duration     DurationBucket `json:"duration"`
	VideoURL     string         `json:"video_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
