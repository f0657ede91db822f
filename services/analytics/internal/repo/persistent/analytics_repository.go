package persistent

import (
	"errors"
	"time"

	"streamlane/services/analytics/internal/entity"
	"streamlane/services/analytics/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VideoInfo struct {
	ID    string
	Title string
}

type AnalyticsRepository interface {
	VideoExists(videoID string) (bool, error)
	// RecordView bumps the per-video view counter (creating the row at 1 on
	// first sight) and appends a watch event, both in one transaction.
	RecordView(event *entity.WatchEvent) error
	RecordEngagement(event *entity.EngagementEvent) error
	GetViews(videoID string) (int64, error)
	AverageWatchTime(videoID string) (float64, error)
	CountLikes(videoID string) (likes, dislikes int64, err error)
	ListUserVideos(userID string) ([]VideoInfo, error)
	TotalViews() (int64, error)
	TotalWatchTime() (int64, error)
	TotalLikes() (likes, dislikes int64, err error)
	Trending(limit int) ([]entity.TrendingVideo, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *analyticsRepository) VideoExists(videoID string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.VideoRef{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *analyticsRepository) RecordView(event *entity.WatchEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.VideoAnalyticsModel{}).
			Where("video_id = ?", event.VideoID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(&model.VideoAnalyticsModel{
				VideoID: event.VideoID,
				Views:   1,
			}).Error; err != nil {
				return err
			}
		}

		m := &model.WatchEventModel{
			VideoID:         event.VideoID,
			UserID:          event.UserID,
			DurationSeconds: event.DurationSeconds,
			Timestamp:       event.Timestamp,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		event.ID = m.ID
		return nil
	})
}

func (r *analyticsRepository) RecordEngagement(event *entity.EngagementEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	m := &model.EngagementEventModel{
		VideoID:   event.VideoID,
		UserID:    event.UserID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
		Details:   datatypes.JSONMap(event.Details),
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	return nil
}

func (r *analyticsRepository) GetViews(videoID string) (int64, error) {
	var m model.VideoAnalyticsModel
	err := r.db.Where("video_id = ?", videoID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m.Views, nil
}

func (r *analyticsRepository) AverageWatchTime(videoID string) (float64, error) {
	var avg float64
	err := r.db.Model(&model.WatchEventModel{}).
		Where("video_id = ?", videoID).
		Select("COALESCE(AVG(duration_seconds), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *analyticsRepository) CountLikes(videoID string) (int64, int64, error) {
	var likes, dislikes int64
	if err := r.db.Model(&model.LikeRef{}).
		Where("video_id = ? AND status = ?", videoID, "like").
		Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.LikeRef{}).
		Where("video_id = ? AND status = ?", videoID, "dislike").
		Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func (r *analyticsRepository) ListUserVideos(userID string) ([]VideoInfo, error) {
	var refs []model.VideoRef
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&refs).Error; err != nil {
		return nil, err
	}
	videos := make([]VideoInfo, 0, len(refs))
	for _, ref := range refs {
		videos = append(videos, VideoInfo{ID: ref.ID, Title: ref.Title})
	}
	return videos, nil
}

func (r *analyticsRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&model.VideoAnalyticsModel{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) TotalWatchTime() (int64, error) {
	var total int64
	err := r.db.Model(&model.WatchEventModel{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) TotalLikes() (int64, int64, error) {
	var likes, dislikes int64
	if err := r.db.Model(&model.LikeRef{}).Where("status = ?", "like").Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.LikeRef{}).Where("status = ?", "dislike").Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

// Trending ranks by view count; ties go to the newer video.
func (r *analyticsRepository) Trending(limit int) ([]entity.TrendingVideo, error) {
	var rows []entity.TrendingVideo
	err := r.db.Model(&model.VideoAnalyticsModel{}).
		Select("video_analytics.video_id, videos.title, video_analytics.views").
		Joins("JOIN videos ON videos.id = video_analytics.video_id").
		Where("videos.deleted_at IS NULL").
		Order("video_analytics.views DESC, videos.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
