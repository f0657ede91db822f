package persistent

import (
	"errors"

	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	VideoExists(videoID string) (bool, error)
	GetByVideoAndUser(videoID, userID string) (*entity.Like, error)
	Create(like *entity.Like) error
	UpdateStatus(id string, status entity.LikeStatus) error
	CountByVideo(videoID string) (likes, dislikes int64, err error)
	ListByUser(userID string) ([]entity.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports a unique-constraint violation, which concurrent
// check-then-create paths treat as losing a harmless race.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *likeRepository) VideoExists(videoID string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.VideoRef{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) GetByVideoAndUser(videoID, userID string) (*entity.Like, error) {
	var m model.LikeModel
	if err := r.db.Where("video_id = ? AND user_id = ?", videoID, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return toLikeEntity(&m), nil
}

func (r *likeRepository) Create(like *entity.Like) error {
	m := &model.LikeModel{
		ID:      like.ID,
		VideoID: like.VideoID,
		UserID:  like.UserID,
		Status:  string(like.Status),
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*like = *toLikeEntity(m)
	return nil
}

func (r *likeRepository) UpdateStatus(id string, status entity.LikeStatus) error {
	return r.db.Model(&model.LikeModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *likeRepository) CountByVideo(videoID string) (int64, int64, error) {
	var likes, dislikes int64
	if err := r.db.Model(&model.LikeModel{}).
		Where("video_id = ? AND status = ?", videoID, string(entity.StatusLike)).
		Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.LikeModel{}).
		Where("video_id = ? AND status = ?", videoID, string(entity.StatusDislike)).
		Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func (r *likeRepository) ListByUser(userID string) ([]entity.Like, error) {
	var ms []model.LikeModel
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	likes := make([]entity.Like, 0, len(ms))
	for i := range ms {
		likes = append(likes, *toLikeEntity(&ms[i]))
	}
	return likes, nil
}
