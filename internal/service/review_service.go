package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Lloyd952/horror-haven/internal/dto"
	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/Lloyd952/horror-haven/internal/repository"
	"github.com/Lloyd952/horror-haven/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	// ListPageSize is the published-list page size.
	ListPageSize = 3
	// MostCommentedLimit and HighestRatedLimit size the ranking rails.
	MostCommentedLimit = 3
	HighestRatedLimit  = 5
	SearchLimit        = 10
)

type ReviewService interface {
	CreateReview(ctx context.Context, authorID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, authorID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	PublishReview(ctx context.Context, authorID, reviewID uuid.UUID) (*dto.ReviewResponse, error)
	UnpublishReview(ctx context.Context, authorID, reviewID uuid.UUID) (*dto.ReviewResponse, error)
	ListPublished(ctx context.Context, tag string, page int) (*dto.PaginatedReviewResponse, error)
	GetPublishedBySlugAndDate(ctx context.Context, year, month, day int, slug string) (*dto.ReviewDetailResponse, error)
	MostCommented(ctx context.Context) ([]dto.ReviewResponse, error)
	HighestRated(ctx context.Context) ([]dto.ReviewResponse, error)
	SearchPublished(ctx context.Context, query string) (*dto.SearchReviewResponse, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	commentRepo repository.CommentRepository
	searchSvc   SearchService
	sanitizer   *bluemonday.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, commentRepo repository.CommentRepository, searchSvc SearchService) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		searchSvc:   searchSvc,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, authorID uuid.UUID, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	rating := req.Rating
	if rating == 0 {
		rating = model.DefaultRating
	}
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	title := req.Title
	if title == "" {
		title = req.FilmTitle
	}

	slug := Slugify(req.FilmTitle, strconv.Itoa(req.Year))
	day := time.Now().Format("2006-01-02")

	exists, err := s.reviewRepo.ExistsBySlugAndDay(ctx, slug, day)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict(fmt.Sprintf("a review with slug %q already exists today", slug))
	}

	tags := NormalizeTags(req.Tags)

	review := &model.Review{
		Title:     title,
		Slug:      slug,
		AuthorID:  authorID,
		FilmTitle: req.FilmTitle,
		Year:      req.Year,
		Director:  req.Director,
		Rating:    rating,
		Body:      s.sanitizer.Sanitize(req.Body),
		Status:    status,
	}

	if err := s.reviewRepo.Create(ctx, review, tags); err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	if created.Status == model.StatusPublished {
		if err := s.searchSvc.IndexReview(created); err != nil {
			log.Printf("Failed to index review %s: %v", created.ID, err)
		}
	}

	resp := toReviewResponse(created)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, authorID, reviewID uuid.UUID, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindOwnedByID(ctx, reviewID, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Director != nil {
		review.Director = *req.Director
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperror.Validation("rating must be between 1 and 5")
		}
		review.Rating = *req.Rating
	}
	if req.Body != nil {
		review.Body = s.sanitizer.Sanitize(*req.Body)
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.reviewRepo.ReplaceTags(ctx, reviewID, NormalizeTags(req.Tags)); err != nil {
			return nil, err
		}
	}

	updated, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if updated.Status == model.StatusPublished {
		if err := s.searchSvc.IndexReview(updated); err != nil {
			log.Printf("Failed to index review %s: %v", updated.ID, err)
		}
	}

	resp := toReviewResponse(updated)
	return &resp, nil
}

func (s *reviewService) PublishReview(ctx context.Context, authorID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	return s.setStatus(ctx, authorID, reviewID, model.StatusPublished)
}

func (s *reviewService) UnpublishReview(ctx context.Context, authorID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	return s.setStatus(ctx, authorID, reviewID, model.StatusDraft)
}

func (s *reviewService) setStatus(ctx context.Context, authorID, reviewID uuid.UUID, status string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindOwnedByID(ctx, reviewID, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if review.Status != status {
		if err := s.reviewRepo.UpdateStatus(ctx, reviewID, status); err != nil {
			return nil, err
		}
		review.Status = status
	}

	if status == model.StatusPublished {
		if err := s.searchSvc.IndexReview(review); err != nil {
			log.Printf("Failed to index review %s: %v", review.ID, err)
		}
	} else {
		if err := s.searchSvc.DeleteReview(review.ID.String()); err != nil {
			log.Printf("Failed to deindex review %s: %v", review.ID, err)
		}
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

// ListPublished pages through published reviews, newest update first.
// Out-of-range pages clamp to the closest valid page instead of failing.
func (s *reviewService) ListPublished(ctx context.Context, tag string, page int) (*dto.PaginatedReviewResponse, error) {
	if page < 1 {
		page = 1
	}

	_, total, err := s.reviewRepo.FindPublished(ctx, tag, 0, 1)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / ListPageSize
	if int(total)%ListPageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * ListPageSize
	reviews, _, err := s.reviewRepo.FindPublished(ctx, tag, offset, ListPageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		data = append(data, toReviewResponse(review))
	}

	return &dto.PaginatedReviewResponse{
		Data: data,
		Meta: dto.PaginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       ListPageSize,
		},
	}, nil
}

func (s *reviewService) GetPublishedBySlugAndDate(ctx context.Context, year, month, day int, slug string) (*dto.ReviewDetailResponse, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, apperror.ErrNotFound
	}

	dayKey := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	review, err := s.reviewRepo.FindPublishedBySlugAndDay(ctx, dayKey, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.FindActiveByReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	mostCommented, err := s.MostCommented(ctx)
	if err != nil {
		return nil, err
	}
	highestRated, err := s.HighestRated(ctx)
	if err != nil {
		return nil, err
	}

	commentData := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentData = append(commentData, toCommentResponse(comment))
	}

	return &dto.ReviewDetailResponse{
		Review:        toReviewResponse(review),
		Comments:      commentData,
		MostCommented: mostCommented,
		HighestRated:  highestRated,
	}, nil
}

func (s *reviewService) MostCommented(ctx context.Context) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.MostCommented(ctx, MostCommentedLimit)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

func (s *reviewService) HighestRated(ctx context.Context) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.HighestRated(ctx, HighestRatedLimit)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

func (s *reviewService) SearchPublished(ctx context.Context, query string) (*dto.SearchReviewResponse, error) {
	ids, err := s.searchSvc.SearchReviews(query, SearchLimit)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.ReviewResponse, 0, len(ids))
	for _, id := range ids {
		review, err := s.reviewRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		// The index lags writes; drop anything unpublished since.
		if review.Status != model.StatusPublished {
			continue
		}
		hits = append(hits, toReviewResponse(review))
	}

	return &dto.SearchReviewResponse{Query: query, Hits: hits}, nil
}

func toReviewResponses(reviews []*model.Review) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	return out
}

func toReviewResponse(review *model.Review) dto.ReviewResponse {
	tags := make([]string, 0, len(review.Tags))
	for _, t := range review.Tags {
		tags = append(tags, t.Tag)
	}

	return dto.ReviewResponse{
		ID:    review.ID,
		Title: review.Title,
		Slug:  review.Slug,
		URL: fmt.Sprintf("/api/reviews/%d/%d/%d/%s",
			review.CreatedOn.Year(), review.CreatedOn.Month(), review.CreatedOn.Day(), review.Slug),
		Author: dto.AuthorResponse{
			Username:  review.Author.Username,
			FirstName: review.Author.FirstName,
			LastName:  review.Author.LastName,
		},
		FilmTitle: review.FilmTitle,
		Year:      review.Year,
		Director:  review.Director,
		Rating:    review.Rating,
		Body:      review.Body,
		Tags:      tags,
		Status:    review.Status,
		CreatedOn: review.CreatedOn.Format(time.RFC3339),
		UpdatedOn: review.UpdatedOn.Format(time.RFC3339),
	}
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:       comment.ID,
		ReviewID: comment.ReviewID,
		Author: dto.AuthorResponse{
			Username:  comment.User.Username,
			FirstName: comment.User.FirstName,
			LastName:  comment.User.LastName,
		},
		Body:      comment.Body,
		CreatedOn: comment.CreatedOn.Format(time.RFC3339),
		UpdatedOn: comment.UpdatedOn.Format(time.RFC3339),
	}
}
