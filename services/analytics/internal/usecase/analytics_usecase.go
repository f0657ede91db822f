package usecase

import (
	"context"
	"time"

	"streamlane/pkg/apperr"
	"streamlane/services/analytics/internal/entity"
	"streamlane/services/analytics/internal/repo/persistent"
)

const trendingLimit = 5

type ViewTrack struct {
	VideoID         string
	DurationSeconds int
	Timestamp       time.Time
}

type EngagementTrack struct {
	VideoID   string
	EventType entity.EngagementType
	Timestamp time.Time
	Details   map[string]interface{}
}

type AnalyticsUseCase interface {
	// TrackView records every call as a fresh view; there is no dedup, a
	// refresh counts again. userID is nil for anonymous viewers.
	TrackView(ctx context.Context, userID *string, track ViewTrack) error
	TrackEngagement(ctx context.Context, userID *string, track EngagementTrack) error
	GetVideoAnalytics(ctx context.Context, videoID string) (*entity.VideoSummary, error)
	GetUserAnalytics(ctx context.Context, userID string) ([]entity.VideoSummary, error)
	GetAdminOverview(ctx context.Context) (*entity.AdminOverview, error)
}

type analyticsUseCase struct {
	analyticsRepo persistent.AnalyticsRepository
}

func NewAnalyticsUseCase(analyticsRepo persistent.AnalyticsRepository) AnalyticsUseCase {
	return &analyticsUseCase{analyticsRepo: analyticsRepo}
}

func (uc *analyticsUseCase) TrackView(ctx context.Context, userID *string, track ViewTrack) error {
	if track.DurationSeconds < 0 {
		return apperr.Validation("duration must not be negative")
	}

	exists, err := uc.analyticsRepo.VideoExists(track.VideoID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFound("video")
	}

	event := &entity.WatchEvent{
		VideoID:         track.VideoID,
		UserID:          userID,
		DurationSeconds: track.DurationSeconds,
		Timestamp:       track.Timestamp,
	}
	if err := uc.analyticsRepo.RecordView(event); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (uc *analyticsUseCase) TrackEngagement(ctx context.Context, userID *string, track EngagementTrack) error {
	switch track.EventType {
	case entity.EngagementPause, entity.EngagementResume, entity.EngagementSeek, entity.EngagementHover:
	default:
		return apperr.Validation("event_type must be one of pause, resume, seek, hover")
	}

	exists, err := uc.analyticsRepo.VideoExists(track.VideoID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFound("video")
	}

	event := &entity.EngagementEvent{
		VideoID:   track.VideoID,
		UserID:    userID,
		EventType: track.EventType,
		Timestamp: track.Timestamp,
		Details:   track.Details,
	}
	if err := uc.analyticsRepo.RecordEngagement(event); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (uc *analyticsUseCase) GetVideoAnalytics(ctx context.Context, videoID string) (*entity.VideoSummary, error) {
	exists, err := uc.analyticsRepo.VideoExists(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("video")
	}

	return uc.summarize(videoID, "")
}

// GetUserAnalytics returns a summary for every video the user owns; videos
// with no recorded events come back zero-filled rather than omitted.
func (uc *analyticsUseCase) GetUserAnalytics(ctx context.Context, userID string) ([]entity.VideoSummary, error) {
	videos, err := uc.analyticsRepo.ListUserVideos(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	summaries := make([]entity.VideoSummary, 0, len(videos))
	for _, video := range videos {
		summary, err := uc.summarize(video.ID, video.Title)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (uc *analyticsUseCase) GetAdminOverview(ctx context.Context) (*entity.AdminOverview, error) {
	totalViews, err := uc.analyticsRepo.TotalViews()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	totalWatchTime, err := uc.analyticsRepo.TotalWatchTime()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	totalLikes, totalDislikes, err := uc.analyticsRepo.TotalLikes()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	trending, err := uc.analyticsRepo.Trending(trendingLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &entity.AdminOverview{
		TotalViews:     totalViews,
		TotalWatchTime: totalWatchTime,
		TotalLikes:     totalLikes,
		TotalDislikes:  totalDislikes,
		Trending:       trending,
	}, nil
}

func (uc *analyticsUseCase) summarize(videoID, title string) (*entity.VideoSummary, error) {
	views, err := uc.analyticsRepo.GetViews(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	likes, dislikes, err := uc.analyticsRepo.CountLikes(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	avg, err := uc.analyticsRepo.AverageWatchTime(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &entity.VideoSummary{
		VideoID:          videoID,
		VideoTitle:       title,
		Views:            views,
		Likes:            likes,
		Dislikes:         dislikes,
		AverageWatchTime: avg,
	}, nil
}
