package usecase

import (
	"context"

	"streamlane/pkg/apperr"
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/repo/persistent"
)

type LikeUseCase interface {
	// RateVideo upserts the caller's single rating for a video. The created
	// flag distinguishes a first rating from a changed one.
	RateVideo(ctx context.Context, userID, videoID string, isLike bool) (*entity.Like, bool, error)
	GetLikeCount(ctx context.Context, videoID string) (*entity.LikeCount, error)
	ListUserLikes(ctx context.Context, userID string) ([]entity.Like, error)
}

type likeUseCase struct {
	likeRepo persistent.LikeRepository
}

func NewLikeUseCase(likeRepo persistent.LikeRepository) LikeUseCase {
	return &likeUseCase{likeRepo: likeRepo}
}

func (uc *likeUseCase) RateVideo(ctx context.Context, userID, videoID string, isLike bool) (*entity.Like, bool, error) {
	exists, err := uc.likeRepo.VideoExists(videoID)
	if err != nil {
		return nil, false, apperr.Internal(err)
	}
	if !exists {
		return nil, false, apperr.NotFound("video")
	}

	status := entity.StatusDislike
	if isLike {
		status = entity.StatusLike
	}

	existing, err := uc.likeRepo.GetByVideoAndUser(videoID, userID)
	if err != nil {
		if !persistent.IsNotFound(err) {
			return nil, false, apperr.Internal(err)
		}

		like := &entity.Like{
			VideoID: videoID,
			UserID:  userID,
			Status:  status,
		}
		if err := uc.likeRepo.Create(like); err != nil {
			// A concurrent request rated first; fall through to the update
			// path against the row it created.
			if persistent.IsDuplicate(err) {
				return uc.updateExisting(videoID, userID, status)
			}
			return nil, false, apperr.Internal(err)
		}
		return like, true, nil
	}

	if existing.Status != status {
		if err := uc.likeRepo.UpdateStatus(existing.ID, status); err != nil {
			return nil, false, apperr.Internal(err)
		}
		existing.Status = status
	}
	return existing, false, nil
}

func (uc *likeUseCase) updateExisting(videoID, userID string, status entity.LikeStatus) (*entity.Like, bool, error) {
	existing, err := uc.likeRepo.GetByVideoAndUser(videoID, userID)
	if err != nil {
		return nil, false, apperr.Internal(err)
	}
	if existing.Status != status {
		if err := uc.likeRepo.UpdateStatus(existing.ID, status); err != nil {
			return nil, false, apperr.Internal(err)
		}
		existing.Status = status
	}
	return existing, false, nil
}

func (uc *likeUseCase) GetLikeCount(ctx context.Context, videoID string) (*entity.LikeCount, error) {
	exists, err := uc.likeRepo.VideoExists(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.NotFound("video")
	}

	likes, dislikes, err := uc.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &entity.LikeCount{VideoID: videoID, Likes: likes, Dislikes: dislikes}, nil
}

func (uc *likeUseCase) ListUserLikes(ctx context.Context, userID string) ([]entity.Like, error) {
	likes, err := uc.likeRepo.ListByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return likes, nil
}
