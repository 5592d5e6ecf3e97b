package service

import (
	"context"

	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository mocks repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockReviewRepository mocks repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review, tags []string) error {
	args := m.Called(ctx, review, tags)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindOwnedByID(ctx context.Context, id, authorID uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindPublished(ctx context.Context, tag string, offset, limit int) ([]*model.Review, int64, error) {
	args := m.Called(ctx, tag, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindPublishedBySlugAndDay(ctx context.Context, day, slug string) (*model.Review, error) {
	args := m.Called(ctx, day, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) MostCommented(ctx context.Context, limit int) ([]*model.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *MockReviewRepository) HighestRated(ctx context.Context, limit int) ([]*model.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsBySlugAndDay(ctx context.Context, slug, day string) (bool, error) {
	args := m.Called(ctx, slug, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ReplaceTags(ctx context.Context, reviewID uuid.UUID, tags []string) error {
	args := m.Called(ctx, reviewID, tags)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockCommentRepository mocks repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindActiveByReview(ctx context.Context, reviewID uuid.UUID) ([]*model.Comment, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSearchService mocks SearchService
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) IndexReview(review *model.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockSearchService) DeleteReview(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSearchService) SearchReviews(query string, limit int) ([]uuid.UUID, error) {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
