package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) VideoExists(videoID string) (bool, error) {
	args := m.Called(videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) GetByVideoAndUser(videoID, userID string) (*entity.Like, error) {
	args := m.Called(videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Like), args.Error(1)
}

func (m *MockLikeRepository) Create(like *entity.Like) error {
	args := m.Called(like)
	if like.ID == "" {
		like.ID = "like-new"
	}
	return args.Error(0)
}

func (m *MockLikeRepository) UpdateStatus(id string, status entity.LikeStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockLikeRepository) CountByVideo(videoID string) (int64, int64, error) {
	args := m.Called(videoID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) ListByUser(userID string) ([]entity.Like, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Like), args.Error(1)
}

var _ persistent.LikeRepository = (*MockLikeRepository)(nil)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetChannel(channelID string) (*entity.Channel, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockSubscriptionRepository) Exists(subscriberID, channelID string) (bool, error) {
	args := m.Called(subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) Subscribe(subscriberID, channelID string) (*entity.Subscription, error) {
	args := m.Called(subscriberID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Unsubscribe(subscriberID, channelID string) error {
	args := m.Called(subscriberID, channelID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListBySubscriber(subscriberID string) ([]entity.Subscription, error) {
	args := m.Called(subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscribers(channelID string) ([]entity.Subscriber, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscriber), args.Error(1)
}

func (m *MockSubscriptionRepository) CountSubscribers(channelID string) (int64, error) {
	args := m.Called(channelID)
	return args.Get(0).(int64), args.Error(1)
}

var _ persistent.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	if comment.ID == "" {
		comment.ID = "comment-new"
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(videoID string) ([]entity.Comment, error) {
	args := m.Called(videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

type recordingNotifier struct {
	mu    sync.Mutex
	tasks []map[string]interface{}
	done  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 1)}
}

func (n *recordingNotifier) PublishNotificationTask(task map[string]interface{}) error {
	n.mu.Lock()
	n.tasks = append(n.tasks, task)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func TestRateVideo_FirstRatingCreates(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "video-1").Return(true, nil)
	repo.On("GetByVideoAndUser", "video-1", "user-1").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.MatchedBy(func(l *entity.Like) bool {
		return l.Status == entity.StatusLike
	})).Return(nil)

	like, created, err := uc.RateVideo(context.Background(), "user-1", "video-1", true)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.StatusLike, like.Status)
}

func TestRateVideo_RepeatUpdatesInPlace(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "video-1").Return(true, nil)
	repo.On("GetByVideoAndUser", "video-1", "user-1").Return(&entity.Like{
		ID:      "like-1",
		VideoID: "video-1",
		UserID:  "user-1",
		Status:  entity.StatusLike,
	}, nil)
	repo.On("UpdateStatus", "like-1", entity.StatusDislike).Return(nil)

	like, created, err := uc.RateVideo(context.Background(), "user-1", "video-1", false)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entity.StatusDislike, like.Status)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRateVideo_SameStatusIsNoop(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "video-1").Return(true, nil)
	repo.On("GetByVideoAndUser", "video-1", "user-1").Return(&entity.Like{
		ID:     "like-1",
		Status: entity.StatusLike,
	}, nil)

	_, created, err := uc.RateVideo(context.Background(), "user-1", "video-1", true)
	assert.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestRateVideo_LostCreateRaceFallsBackToUpdate(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "video-1").Return(true, nil)
	repo.On("GetByVideoAndUser", "video-1", "user-1").Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)
	repo.On("GetByVideoAndUser", "video-1", "user-1").Return(&entity.Like{
		ID:      "like-1",
		VideoID: "video-1",
		UserID:  "user-1",
		Status:  entity.StatusDislike,
	}, nil).Once()
	repo.On("UpdateStatus", "like-1", entity.StatusLike).Return(nil)

	like, created, err := uc.RateVideo(context.Background(), "user-1", "video-1", true)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entity.StatusLike, like.Status)
	repo.AssertExpectations(t)
}

func TestRateVideo_MissingVideo(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "missing").Return(false, nil)

	_, _, err := uc.RateVideo(context.Background(), "user-1", "missing", true)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetLikeCount(t *testing.T) {
	repo := new(MockLikeRepository)
	uc := NewLikeUseCase(repo)

	repo.On("VideoExists", "video-1").Return(true, nil)
	repo.On("CountByVideo", "video-1").Return(int64(7), int64(2), nil)

	count, err := uc.GetLikeCount(context.Background(), "video-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count.Likes)
	assert.Equal(t, int64(2), count.Dislikes)
}

func TestSubscribe_ChannelNotFound(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("GetChannel", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Subscribe(context.Background(), "user-1", "missing")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSubscribe_OwnChannelRejected(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("GetChannel", "channel-1").Return(&entity.Channel{ID: "channel-1", UserID: "user-1"}, nil)

	_, err := uc.Subscribe(context.Background(), "user-1", "channel-1")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestSubscribe_DuplicateIsBenign(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("GetChannel", "channel-1").Return(&entity.Channel{ID: "channel-1", UserID: "owner"}, nil)
	repo.On("Exists", "user-1", "channel-1").Return(true, nil)

	created, err := uc.Subscribe(context.Background(), "user-1", "channel-1")
	assert.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestSubscribe_LostInsertRaceIsBenign(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("GetChannel", "channel-1").Return(&entity.Channel{ID: "channel-1", UserID: "owner"}, nil)
	repo.On("Exists", "user-1", "channel-1").Return(false, nil)
	repo.On("Subscribe", "user-1", "channel-1").Return(nil, gorm.ErrDuplicatedKey)

	created, err := uc.Subscribe(context.Background(), "user-1", "channel-1")
	assert.NoError(t, err)
	assert.False(t, created)
}

func TestSubscribe_CreatesAndNotifies(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	notifier := newRecordingNotifier()
	uc := NewSubscriptionUseCase(repo, notifier, logger.New())

	repo.On("GetChannel", "channel-1").Return(&entity.Channel{ID: "channel-1", UserID: "owner"}, nil)
	repo.On("Exists", "user-1", "channel-1").Return(false, nil)
	repo.On("Subscribe", "user-1", "channel-1").Return(&entity.Subscription{ID: "sub-1"}, nil)

	created, err := uc.Subscribe(context.Background(), "user-1", "channel-1")
	assert.NoError(t, err)
	assert.True(t, created)

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("notification was not published")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "new_subscriber", notifier.tasks[0]["type"])
	assert.Equal(t, "owner", notifier.tasks[0]["channel_owner"])
}

func TestUnsubscribe_NotSubscribed(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("Unsubscribe", "user-1", "channel-1").Return(gorm.ErrRecordNotFound)

	err := uc.Unsubscribe(context.Background(), "user-1", "channel-1")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetSubscribers_CountOnly(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(repo, nil, logger.New())

	repo.On("GetChannel", "channel-1").Return(&entity.Channel{ID: "channel-1"}, nil)
	repo.On("CountSubscribers", "channel-1").Return(int64(42), nil)

	list, err := uc.GetSubscribers(context.Background(), "channel-1", true)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), list.Count)
	assert.Nil(t, list.Subscribers)
	repo.AssertNotCalled(t, "ListSubscribers", mock.Anything)
}

func TestCreateComment_MissingVideo(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	uc := NewCommentUseCase(commentRepo, likeRepo)

	likeRepo.On("VideoExists", "missing").Return(false, nil)

	_, err := uc.CreateComment(context.Background(), "user-1", CommentCreate{VideoID: "missing", CommentText: "hi"})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateComment_WithReplies(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	uc := NewCommentUseCase(commentRepo, likeRepo)

	likeRepo.On("VideoExists", "video-1").Return(true, nil)
	commentRepo.On("Create", mock.MatchedBy(func(c *entity.Comment) bool {
		return len(c.Replies) == 1 && c.Replies[0].Text == "agreed"
	})).Return(nil)

	comment, err := uc.CreateComment(context.Background(), "user-1", CommentCreate{
		VideoID:     "video-1",
		CommentText: "great video",
		Replies:     []entity.Reply{{UserID: "user-2", Text: "agreed"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", comment.UserID)
}

func TestUpdateComment_NonAuthorForbidden(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	uc := NewCommentUseCase(commentRepo, likeRepo)

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", UserID: "author"}, nil)

	newText := "edited"
	_, err := uc.UpdateComment(context.Background(), "attacker", "comment-1", CommentUpdate{CommentText: &newText})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	commentRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	uc := NewCommentUseCase(commentRepo, likeRepo)

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", UserID: "author"}, nil)
	commentRepo.On("Delete", "comment-1").Return(nil)

	assert.NoError(t, uc.DeleteComment(context.Background(), "author", "comment-1"))

	err := uc.DeleteComment(context.Background(), "someone-else", "comment-1")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestDeleteComment_NotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	uc := NewCommentUseCase(commentRepo, likeRepo)

	commentRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := uc.DeleteComment(context.Background(), "user-1", "missing")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
