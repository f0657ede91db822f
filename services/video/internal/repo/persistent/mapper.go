package persistent

import (
	"streamlane/services/video/internal/entity"
	"streamlane/services/video/internal/model"
)

func toVideoEntity(m *model.VideoModel) *entity.Video {
	return &entity.Video{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		Visibility:   entity.Visibility(m.Visibility),
		Duration:     entity.DurationBucket(m.Duration),
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toVideoModel(e *entity.Video) *model.VideoModel {
	return &model.VideoModel{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		Visibility:   string(e.Visibility),
		Duration:     string(e.Duration),
		VideoURL:     e.VideoURL,
		ThumbnailURL: e.ThumbnailURL,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
