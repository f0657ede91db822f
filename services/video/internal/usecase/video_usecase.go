package usecase

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/video/internal/entity"
	"streamlane/services/video/internal/repo/persistent"

	"github.com/google/uuid"
)

// MediaStore is the slice of the object storage client the video service
// needs. Satisfied by pkg/s3.Client.
type MediaStore interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type VideoCreate struct {
	Title       string
	Description string
	Visibility  entity.Visibility
	Duration    entity.DurationBucket
}

type VideoUpdate struct {
	Title       *string
	Description *string
	Visibility  *entity.Visibility
	Duration    *entity.DurationBucket
}

type MediaUpload struct {
	File        io.Reader
	Filename    string
	ContentType string
}

type VideoUseCase interface {
	CreateVideo(ctx context.Context, userID string, create VideoCreate) (*entity.Video, error)
	GetVideo(ctx context.Context, viewerID, videoID string) (*entity.Video, error)
	ListUserVideos(ctx context.Context, userID string) ([]entity.Video, error)
	UpdateVideo(ctx context.Context, userID, videoID string, update VideoUpdate) (*entity.Video, error)
	DeleteVideo(ctx context.Context, userID, videoID string) error
	UploadMedia(ctx context.Context, userID, videoID string, video, thumbnail *MediaUpload) (*entity.Video, error)
}

type videoUseCase struct {
	videoRepo  persistent.VideoRepository
	mediaStore MediaStore
	logger     *logger.Logger
}

func NewVideoUseCase(videoRepo persistent.VideoRepository, mediaStore MediaStore, logger *logger.Logger) VideoUseCase {
	return &videoUseCase{
		videoRepo:  videoRepo,
		mediaStore: mediaStore,
		logger:     logger,
	}
}

func (uc *videoUseCase) CreateVideo(ctx context.Context, userID string, create VideoCreate) (*entity.Video, error) {
	video := &entity.Video{
		UserID:      userID,
		Title:       create.Title,
		Description: create.Description,
		Visibility:  create.Visibility,
		Duration:    create.Duration,
	}
	if video.Visibility == "" {
		video.Visibility = entity.VisibilityPublic
	}
	if video.Duration == "" {
		video.Duration = entity.DurationShort
	}

	if err := uc.videoRepo.Create(video); err != nil {
		return nil, apperr.Internal(err)
	}
	return video, nil
}

func (uc *videoUseCase) GetVideo(ctx context.Context, viewerID, videoID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("video")
		}
		return nil, apperr.Internal(err)
	}

	if video.Visibility == entity.VisibilityPrivate && video.UserID != viewerID {
		return nil, apperr.Forbidden("this video is private")
	}
	return video, nil
}

func (uc *videoUseCase) ListUserVideos(ctx context.Context, userID string) ([]entity.Video, error) {
	videos, err := uc.videoRepo.ListByUserID(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return videos, nil
}

func (uc *videoUseCase) UpdateVideo(ctx context.Context, userID, videoID string, update VideoUpdate) (*entity.Video, error) {
	video, err := uc.ownedVideo(userID, videoID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		video.Title = *update.Title
	}
	if update.Description != nil {
		video.Description = *update.Description
	}
	if update.Visibility != nil {
		video.Visibility = *update.Visibility
	}
	if update.Duration != nil {
		video.Duration = *update.Duration
	}

	if err := uc.videoRepo.Update(video); err != nil {
		return nil, apperr.Internal(err)
	}
	return video, nil
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, userID, videoID string) error {
	video, err := uc.ownedVideo(userID, videoID)
	if err != nil {
		return err
	}

	if err := uc.videoRepo.Delete(videoID); err != nil {
		if persistent.IsNotFound(err) {
			return apperr.NotFound("video")
		}
		return apperr.Internal(err)
	}

	// Stored media cleanup is best-effort; the row is already gone.
	uc.deleteMediaObject(video.VideoURL)
	uc.deleteMediaObject(video.ThumbnailURL)
	return nil
}

func (uc *videoUseCase) UploadMedia(ctx context.Context, userID, videoID string, video, thumbnail *MediaUpload) (*entity.Video, error) {
	if video == nil && thumbnail == nil {
		return nil, apperr.Validation("no video or thumbnail file provided")
	}
	if uc.mediaStore == nil {
		return nil, apperr.Internal(fmt.Errorf("media storage is not configured"))
	}

	owned, err := uc.ownedVideo(userID, videoID)
	if err != nil {
		return nil, err
	}

	if video != nil {
		key := mediaKey(videoID, "video", video.Filename)
		videoURL, err := uc.mediaStore.UploadFile(key, video.File, video.ContentType)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		uc.deleteMediaObject(owned.VideoURL)
		owned.VideoURL = videoURL
	}

	if thumbnail != nil {
		key := mediaKey(videoID, "thumbnail", thumbnail.Filename)
		thumbnailURL, err := uc.mediaStore.UploadFile(key, thumbnail.File, thumbnail.ContentType)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		uc.deleteMediaObject(owned.ThumbnailURL)
		owned.ThumbnailURL = thumbnailURL
	}

	if err := uc.videoRepo.Update(owned); err != nil {
		return nil, apperr.Internal(err)
	}
	return owned, nil
}

func (uc *videoUseCase) ownedVideo(userID, videoID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("video")
		}
		return nil, apperr.Internal(err)
	}
	if video.UserID != userID {
		return nil, apperr.Forbidden("you do not own this video")
	}
	return video, nil
}

func (uc *videoUseCase) deleteMediaObject(mediaURL string) {
	if uc.mediaStore == nil || mediaURL == "" {
		return
	}
	key := keyFromURL(mediaURL)
	if key == "" {
		return
	}
	if err := uc.mediaStore.DeleteFile(key); err != nil {
		uc.logger.Warn("Failed to delete media object %s: %v", key, err)
	}
}

func mediaKey(videoID, kind, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("videos/%s/%s-%s%s", videoID, kind, uuid.New().String(), ext)
}

// keyFromURL recovers the object key from a stored media URL. Keys always
// start with the "videos/" prefix.
func keyFromURL(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return ""
	}
	idx := strings.Index(u.Path, "/videos/")
	if idx < 0 {
		return ""
	}
	return u.Path[idx+1:]
}
