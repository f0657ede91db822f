package http

import (
	"net/http"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/video/internal/entity"
	"streamlane/services/video/internal/usecase"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		logger:       logger,
	}
}

func (h *VideoHandler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("video: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=public private unlisted"`
	Duration    string `json:"duration" binding:"omitempty,oneof=short medium long very_long"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility" binding:"omitempty,oneof=public private unlisted"`
	Duration    *string `json:"duration" binding:"omitempty,oneof=short medium long very_long"`
}

// CreateVideo godoc
// @Summary      Create video metadata
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateVideoRequest true "Video metadata"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Router       /videos/video-metadata [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videoUseCase.CreateVideo(c.Request.Context(), c.GetString("user_id"), usecase.VideoCreate{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  entity.Visibility(req.Visibility),
		Duration:    entity.DurationBucket(req.Duration),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetVideo godoc
// @Summary      Get video metadata by ID
// @Description  Private videos are only visible to their owner
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200  {object}  entity.Video
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/video-metadata/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoUseCase.GetVideo(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// ListMyVideos godoc
// @Summary      List the caller's videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Video
// @Router       /videos/video-metadata [get]
func (h *VideoHandler) ListMyVideos(c *gin.Context) {
	videos, err := h.videoUseCase.ListUserVideos(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// UpdateVideo godoc
// @Summary      Update video metadata
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Param        request body UpdateVideoRequest true "Fields to update"
// @Success      200  {object}  entity.Video
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/video-metadata/{id} [put]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := usecase.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Visibility != nil {
		v := entity.Visibility(*req.Visibility)
		update.Visibility = &v
	}
	if req.Duration != nil {
		d := entity.DurationBucket(*req.Duration)
		update.Duration = &d
	}

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), c.GetString("user_id"), c.Param("id"), update)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a video and its stored media
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/video-metadata/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	if err := h.videoUseCase.DeleteVideo(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}

// UploadMedia godoc
// @Summary      Upload video and/or thumbnail files
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Param        video formData file false "Video file"
// @Param        thumbnail formData file false "Thumbnail image"
// @Success      200  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /videos/video-metadata/{id}/upload [post]
func (h *VideoHandler) UploadMedia(c *gin.Context) {
	var videoUpload, thumbnailUpload *usecase.MediaUpload

	if fileHeader, err := c.FormFile("video"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read video file"})
			return
		}
		defer file.Close()
		videoUpload = &usecase.MediaUpload{
			File:        file,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	if fileHeader, err := c.FormFile("thumbnail"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumbnail file"})
			return
		}
		defer file.Close()
		thumbnailUpload = &usecase.MediaUpload{
			File:        file,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	video, err := h.videoUseCase.UploadMedia(c.Request.Context(), c.GetString("user_id"), c.Param("id"), videoUpload, thumbnailUpload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}
