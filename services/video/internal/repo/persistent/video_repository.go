package persistent

import (
	"errors"

	"streamlane/services/video/internal/entity"
	"streamlane/services/video/internal/model"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	ListByUserID(userID string) ([]entity.Video, error)
	Update(video *entity.Video) error
	Delete(id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (r *videoRepository) Create(video *entity.Video) error {
	m := toVideoModel(video)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*video = *toVideoEntity(m)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var m model.VideoModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toVideoEntity(&m), nil
}

func (r *videoRepository) ListByUserID(userID string) ([]entity.Video, error) {
	var ms []model.VideoModel
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	videos := make([]entity.Video, 0, len(ms))
	for i := range ms {
		videos = append(videos, *toVideoEntity(&ms[i]))
	}
	return videos, nil
}

func (r *videoRepository) Update(video *entity.Video) error {
	m := toVideoModel(video)
	if err := r.db.Save(m).Error; err != nil {
		return err
	}
	*video = *toVideoEntity(m)
	return nil
}

func (r *videoRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.VideoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
