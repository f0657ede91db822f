package usecase

import (
	"context"

	"streamlane/pkg/apperr"
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/repo/persistent"
)

type CommentCreate struct {
	VideoID     string
	CommentText string
	Replies     []entity.Reply
}

type CommentUpdate struct {
	CommentText *string
	Replies     []entity.Reply
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID string, create CommentCreate) (*entity.Comment, error)
	GetComment(ctx context.Context, commentID string) (*entity.Comment, error)
	ListComments(ctx context.Context, videoID string) ([]entity.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID string, update CommentUpdate) (*entity.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	likeRepo    persistent.LikeRepository
}

func NewCommentUseCase(commentRepo persistent.CommentRepository, likeRepo persistent.LikeRepository) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, userID string, create CommentCreate) (*entity.Comment, error) {
	exists, err := uc.likeRepo.VideoExists(create.VideoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("video")
	}

	comment := &entity.Comment{
		VideoID:     create.VideoID,
		UserID:      userID,
		CommentText: create.CommentText,
		Replies:     create.Replies,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (uc *commentUseCase) GetComment(ctx context.Context, commentID string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, videoID string) ([]entity.Comment, error) {
	comments, err := uc.commentRepo.List(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, userID, commentID string, update CommentUpdate) (*entity.Comment, error) {
	comment, err := uc.authoredComment(userID, commentID)
	if err != nil {
		return nil, err
	}

	if update.CommentText != nil {
		comment.CommentText = *update.CommentText
	}
	if update.Replies != nil {
		comment.Replies = update.Replies
	}

	if err := uc.commentRepo.Update(comment); err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	if _, err := uc.authoredComment(userID, commentID); err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(commentID); err != nil {
		if persistent.IsNotFound(err) {
			return apperr.NotFound("comment")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (uc *commentUseCase) authoredComment(userID, commentID string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}
	if comment.UserID != userID {
		return nil, apperr.Forbidden("you are not the author of this comment")
	}
	return comment, nil
}
