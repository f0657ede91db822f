package main

import (
	"fmt"
	"time"

	"streamlane/pkg/config"
	"streamlane/pkg/database"
	"streamlane/pkg/logger"
	"streamlane/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		password string
		role     models.UserRole
	}{
		{"admin@streamlane.dev", "admin", "password123", models.RoleAdmin},
		{"alice@streamlane.dev", "alice_films", "password123", models.RoleUser},
		{"bob@streamlane.dev", "bob_vlogs", "password123", models.RoleUser},
		{"charlie@streamlane.dev", "charlie_howto", "password123", models.RoleUser},
	}

	userIDs := make([]string, 0, len(testUsers))
	channelIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:    userData.email,
			Username: userData.username,
			Password: string(hashedPassword),
			Role:     userData.role,
			IsActive: true,
		}

		var existing models.User
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			user.ID = existing.ID
		} else {
			if err := db.Create(user).Error; err != nil {
				return fmt.Errorf("failed to create user %s: %w", user.Username, err)
			}
			log.Info("Created user %s", user.Username)
		}
		userIDs = append(userIDs, user.ID)

		profile := &models.Profile{
			UserID: user.ID,
			Title:  user.Username,
			Image:  "default_profile_image_url",
		}
		var existingProfile models.Profile
		if err := db.Where("user_id = ?", user.ID).First(&existingProfile).Error; err == nil {
			profile.ID = existingProfile.ID
		} else if err := db.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", user.Username, err)
		}
		channelIDs = append(channelIDs, profile.ID)
	}

	testVideos := []struct {
		ownerIdx    int
		title       string
		description string
		visibility  models.Visibility
		duration    models.DurationBucket
	}{
		{1, "City timelapse at dusk", "Shot over three evenings downtown", models.VisibilityPublic, models.DurationShort},
		{1, "Behind the timelapse", "Gear and settings walkthrough", models.VisibilityUnlisted, models.DurationMedium},
		{2, "Weekly vlog #12", "Trip to the coast", models.VisibilityPublic, models.DurationMedium},
		{2, "Unedited footage", "Raw cut, not for the public yet", models.VisibilityPrivate, models.DurationLong},
		{3, "Sourdough from scratch", "Full process, start to finish", models.VisibilityPublic, models.DurationVeryLong},
	}

	videoIDs := make([]string, 0, len(testVideos))
	for _, videoData := range testVideos {
		video := &models.Video{
			UserID:      userIDs[videoData.ownerIdx],
			Title:       videoData.title,
			Description: videoData.description,
			Visibility:  videoData.visibility,
			Duration:    videoData.duration,
		}

		var existing models.Video
		result := db.Where("user_id = ? AND title = ?", video.UserID, video.Title).First(&existing)
		if result.Error == nil {
			videoIDs = append(videoIDs, existing.ID)
			continue
		}
		if err := db.Create(video).Error; err != nil {
			return fmt.Errorf("failed to create video %q: %w", video.Title, err)
		}
		log.Info("Created video %q", video.Title)
		videoIDs = append(videoIDs, video.ID)
	}

	// Ratings: everyone likes the timelapse, opinions split on the vlog.
	seedLikes := []struct {
		videoIdx int
		userIdx  int
		status   models.LikeStatus
	}{
		{0, 2, models.StatusLike},
		{0, 3, models.StatusLike},
		{2, 1, models.StatusLike},
		{2, 3, models.StatusDislike},
		{4, 1, models.StatusLike},
	}
	for _, likeData := range seedLikes {
		like := &models.Like{
			VideoID: videoIDs[likeData.videoIdx],
			UserID:  userIDs[likeData.userIdx],
			Status:  likeData.status,
		}
		var existing models.Like
		if err := db.Where("video_id = ? AND user_id = ?", like.VideoID, like.UserID).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(like).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
	}

	// Subscriptions keep the profile counters in sync.
	seedSubs := []struct {
		subscriberIdx int
		channelIdx    int
	}{
		{2, 1},
		{3, 1},
		{1, 2},
	}
	for _, subData := range seedSubs {
		sub := &models.Subscription{
			SubscriberID: userIDs[subData.subscriberIdx],
			ChannelID:    channelIDs[subData.channelIdx],
		}
		var existing models.Subscription
		if err := db.Where("subscriber_id = ? AND channel_id = ?", sub.SubscriberID, sub.ChannelID).First(&existing).Error; err == nil {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(sub).Error; err != nil {
				return err
			}
			return tx.Model(&models.Profile{}).
				Where("id = ?", sub.ChannelID).
				UpdateColumn("total_subscribers", gorm.Expr("total_subscribers + 1")).Error
		})
		if err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
	}

	comment := &models.Comment{
		VideoID:     videoIDs[0],
		UserID:      userIDs[2],
		CommentText: "The light in the last ten seconds is unreal",
		Replies: []models.Reply{
			{UserID: userIDs[1], Text: "Thanks! Waited an hour for that"},
		},
	}
	var existingComment models.Comment
	if err := db.Where("video_id = ? AND user_id = ?", comment.VideoID, comment.UserID).First(&existingComment).Error; err != nil {
		if err := db.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}

	// A little viewing history so the analytics endpoints have data.
	for i, views := range []int64{48, 7, 23} {
		analytics := &models.VideoAnalytics{VideoID: videoIDs[i], Views: views}
		var existing models.VideoAnalytics
		if err := db.Where("video_id = ?", analytics.VideoID).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(analytics).Error; err != nil {
			return fmt.Errorf("failed to create analytics row: %w", err)
		}

		event := &models.WatchEvent{
			VideoID:         videoIDs[i],
			UserID:          &userIDs[3],
			DurationSeconds: 45 + i*30,
			Timestamp:       time.Now().Add(-time.Duration(i) * time.Hour),
		}
		if err := db.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create watch event: %w", err)
		}
	}

	return nil
}
