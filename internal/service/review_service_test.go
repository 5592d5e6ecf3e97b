package service

import (
	"context"
	"testing"

	"github.com/Lloyd952/horror-haven/internal/dto"
	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/Lloyd952/horror-haven/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newReviewService(reviewRepo *MockReviewRepository, commentRepo *MockCommentRepository, searchSvc *MockSearchService) ReviewService {
	return NewReviewService(reviewRepo, commentRepo, searchSvc)
}

func publishedReview(id uuid.UUID, rating int) *model.Review {
	return &model.Review{
		ID:        id,
		Title:     "Some Review",
		Slug:      "some-film-2020",
		FilmTitle: "Some Film",
		Year:      2020,
		Director:  "Someone",
		Rating:    rating,
		Body:      "body",
		Status:    model.StatusPublished,
	}
}

func TestCreateReview_DefaultsAndSlug(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	searchSvc := new(MockSearchService)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), searchSvc)

	createdID := uuid.New()
	reviewRepo.On("ExistsBySlugAndDay", mock.Anything, "the-shining-1980", mock.AnythingOfType("string")).
		Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Review"), []string{"classic"}).
		Run(func(args mock.Arguments) {
			review := args.Get(1).(*model.Review)
			review.ID = createdID

			// Defaults applied before the write
			assert.Equal(t, model.StatusDraft, review.Status)
			assert.Equal(t, model.DefaultRating, review.Rating)
			assert.Equal(t, "the-shining-1980", review.Slug)
			assert.Equal(t, "The Shining", review.Title)
		}).
		Return(nil)
	reviewRepo.On("FindByID", mock.Anything, createdID).
		Return(&model.Review{ID: createdID, Slug: "the-shining-1980", Status: model.StatusDraft}, nil)

	resp, err := svc.CreateReview(context.Background(), uuid.New(), dto.CreateReviewRequest{
		FilmTitle: "The Shining",
		Year:      1980,
		Director:  "Stanley Kubrick",
		Body:      "A masterclass.",
		Tags:      []string{" Classic ", "classic"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "the-shining-1980", resp.Slug)
	// Drafts never hit the search index
	searchSvc.AssertNotCalled(t, "IndexReview", mock.Anything)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_SlugConflict(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	reviewRepo.On("ExistsBySlugAndDay", mock.Anything, "the-shining-1980", mock.AnythingOfType("string")).
		Return(true, nil)

	_, err := svc.CreateReview(context.Background(), uuid.New(), dto.CreateReviewRequest{
		FilmTitle: "The Shining",
		Year:      1980,
		Director:  "Stanley Kubrick",
		Body:      "Again.",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	svc := newReviewService(new(MockReviewRepository), new(MockCommentRepository), new(MockSearchService))

	_, err := svc.CreateReview(context.Background(), uuid.New(), dto.CreateReviewRequest{
		FilmTitle: "The Shining",
		Year:      1980,
		Director:  "Stanley Kubrick",
		Rating:    6,
		Body:      "Too good.",
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPublishReview_IndexesDocument(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	searchSvc := new(MockSearchService)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), searchSvc)

	authorID := uuid.New()
	reviewID := uuid.New()
	draft := publishedReview(reviewID, 4)
	draft.Status = model.StatusDraft

	reviewRepo.On("FindOwnedByID", mock.Anything, reviewID, authorID).Return(draft, nil)
	reviewRepo.On("UpdateStatus", mock.Anything, reviewID, model.StatusPublished).Return(nil)
	searchSvc.On("IndexReview", mock.AnythingOfType("*model.Review")).Return(nil)

	resp, err := svc.PublishReview(context.Background(), authorID, reviewID)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPublished, resp.Status)
	searchSvc.AssertExpectations(t)
}

func TestUnpublishReview_RemovesFromIndex(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	searchSvc := new(MockSearchService)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), searchSvc)

	authorID := uuid.New()
	reviewID := uuid.New()

	reviewRepo.On("FindOwnedByID", mock.Anything, reviewID, authorID).
		Return(publishedReview(reviewID, 4), nil)
	reviewRepo.On("UpdateStatus", mock.Anything, reviewID, model.StatusDraft).Return(nil)
	searchSvc.On("DeleteReview", reviewID.String()).Return(nil)

	resp, err := svc.UnpublishReview(context.Background(), authorID, reviewID)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusDraft, resp.Status)
	searchSvc.AssertExpectations(t)
}

func TestPublishReview_NotOwned(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	authorID := uuid.New()
	reviewID := uuid.New()

	reviewRepo.On("FindOwnedByID", mock.Anything, reviewID, authorID).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.PublishReview(context.Background(), authorID, reviewID)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	reviewRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestListPublished_FirstPage(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	page1 := []*model.Review{
		publishedReview(uuid.New(), 5),
		publishedReview(uuid.New(), 4),
		publishedReview(uuid.New(), 3),
	}

	reviewRepo.On("FindPublished", mock.Anything, "", 0, 1).Return([]*model.Review{page1[0]}, int64(5), nil)
	reviewRepo.On("FindPublished", mock.Anything, "", 0, 3).Return(page1, int64(5), nil)

	resp, err := svc.ListPublished(context.Background(), "", 1)

	assert.NoError(t, err)
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, 1, resp.Meta.CurrentPage)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	assert.Equal(t, int64(5), resp.Meta.TotalItems)
}

func TestListPublished_OutOfRangeClampsToLastPage(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	lastPage := []*model.Review{
		publishedReview(uuid.New(), 2),
		publishedReview(uuid.New(), 1),
	}

	reviewRepo.On("FindPublished", mock.Anything, "", 0, 1).Return([]*model.Review{lastPage[0]}, int64(5), nil)
	reviewRepo.On("FindPublished", mock.Anything, "", 3, 3).Return(lastPage, int64(5), nil)

	resp, err := svc.ListPublished(context.Background(), "", 99)

	assert.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
}

func TestListPublished_PageBelowOneClampsToFirst(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	reviewRepo.On("FindPublished", mock.Anything, "", 0, 1).Return([]*model.Review{}, int64(0), nil)
	reviewRepo.On("FindPublished", mock.Anything, "", 0, 3).Return([]*model.Review{}, int64(0), nil)

	resp, err := svc.ListPublished(context.Background(), "", -3)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Meta.CurrentPage)
	assert.Empty(t, resp.Data)
}

func TestListPublished_EmptySetReportsPageOne(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	reviewRepo.On("FindPublished", mock.Anything, "", 0, 1).Return([]*model.Review{}, int64(0), nil)
	reviewRepo.On("FindPublished", mock.Anything, "", 0, 3).Return([]*model.Review{}, int64(0), nil)

	resp, err := svc.ListPublished(context.Background(), "", 5)

	assert.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Meta.CurrentPage)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestMostCommented_PreservesRepositoryOrder(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	first := publishedReview(uuid.New(), 3)
	second := publishedReview(uuid.New(), 3)
	third := publishedReview(uuid.New(), 3)

	reviewRepo.On("MostCommented", mock.Anything, MostCommentedLimit).
		Return([]*model.Review{first, second, third}, nil)

	resp, err := svc.MostCommented(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID},
		[]uuid.UUID{resp[0].ID, resp[1].ID, resp[2].ID})
}

func TestGetPublishedBySlugAndDate_NotFound(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), new(MockSearchService))

	reviewRepo.On("FindPublishedBySlugAndDay", mock.Anything, "2024-01-01", "missing-slug").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetPublishedBySlugAndDate(context.Background(), 2024, 1, 1, "missing-slug")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPublishedBySlugAndDate_InvalidDate(t *testing.T) {
	svc := newReviewService(new(MockReviewRepository), new(MockCommentRepository), new(MockSearchService))

	_, err := svc.GetPublishedBySlugAndDate(context.Background(), 2024, 13, 1, "slug")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSearchPublished_DropsUnpublishedHits(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	searchSvc := new(MockSearchService)
	svc := newReviewService(reviewRepo, new(MockCommentRepository), searchSvc)

	publishedID := uuid.New()
	draftID := uuid.New()

	searchSvc.On("SearchReviews", "shining", SearchLimit).
		Return([]uuid.UUID{publishedID, draftID}, nil)
	reviewRepo.On("FindByID", mock.Anything, publishedID).Return(publishedReview(publishedID, 5), nil)

	draft := publishedReview(draftID, 2)
	draft.Status = model.StatusDraft
	reviewRepo.On("FindByID", mock.Anything, draftID).Return(draft, nil)

	resp, err := svc.SearchPublished(context.Background(), "shining")

	assert.NoError(t, err)
	assert.Len(t, resp.Hits, 1)
	assert.Equal(t, publishedID, resp.Hits[0].ID)
}
