package persistent

import (
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	List(videoID string) ([]entity.Comment, error)
	Update(comment *entity.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	m := &model.CommentModel{
		ID:          comment.ID,
		VideoID:     comment.VideoID,
		UserID:      comment.UserID,
		CommentText: comment.CommentText,
		Replies:     toReplyDocs(comment.Replies),
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*comment = *toCommentEntity(m)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var m model.CommentModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toCommentEntity(&m), nil
}

// List returns all comments, newest first; videoID narrows to one video.
func (r *commentRepository) List(videoID string) ([]entity.Comment, error) {
	query := r.db.Model(&model.CommentModel{}).Order("created_at DESC")
	if videoID != "" {
		query = query.Where("video_id = ?", videoID)
	}

	var ms []model.CommentModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	comments := make([]entity.Comment, 0, len(ms))
	for i := range ms {
		comments = append(comments, *toCommentEntity(&ms[i]))
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *entity.Comment) error {
	m := &model.CommentModel{
		ID:          comment.ID,
		VideoID:     comment.VideoID,
		UserID:      comment.UserID,
		CommentText: comment.CommentText,
		Replies:     toReplyDocs(comment.Replies),
		CreatedAt:   comment.CreatedAt,
	}
	if err := r.db.Save(m).Error; err != nil {
		return err
	}
	*comment = *toCommentEntity(m)
	return nil
}

func (r *commentRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&model.CommentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
