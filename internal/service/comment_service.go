package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lloyd952/horror-haven/internal/dto"
	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/Lloyd952/horror-haven/internal/repository"
	"github.com/Lloyd952/horror-haven/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ctx context.Context, userID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	EditComment(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
	ListActiveForReview(ctx context.Context, reviewID uuid.UUID) ([]dto.CommentResponse, error)
	DeactivateComment(ctx context.Context, staffID, commentID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	redisClient *redis.Client
	rateLimit   time.Duration
	sanitizer   *bluemonday.Policy
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, redisClient *redis.Client, rateLimit time.Duration) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		redisClient: redisClient,
		rateLimit:   rateLimit,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *commentService) AddComment(ctx context.Context, userID, reviewID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// Drafts accept no comments and stay invisible: same 404 as a
	// review that does not exist.
	if review.Status != model.StatusPublished {
		return nil, apperror.ErrNotFound
	}

	body, err := s.validateBody(req.Body)
	if err != nil {
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "comment", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, userID, "comment")
		return nil, apperror.New(429,
			fmt.Sprintf("you are commenting too fast, try again in %.0f seconds", ttl.Seconds()),
			apperror.ErrRateLimitExceeded)
	}

	comment := &model.Comment{
		ReviewID: review.ID,
		UserID:   userID,
		Body:     body,
		IsActive: true,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// The write never happened, so give the rate-limit slot back.
		ReleaseRateLimit(ctx, s.redisClient, userID, "comment")
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		comment.User = *user
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) EditComment(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindOwnedByID(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	body, err := s.validateBody(req.Body)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err == nil {
		comment.User = *user
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	rows, err := s.commentRepo.DeleteOwned(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *commentService) ListActiveForReview(ctx context.Context, reviewID uuid.UUID) ([]dto.CommentResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if review.Status != model.StatusPublished {
		return nil, apperror.ErrNotFound
	}

	comments, err := s.commentRepo.FindActiveByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	return out, nil
}

// DeactivateComment is the moderation path: staff hide a comment
// without destroying it.
func (s *commentService) DeactivateComment(ctx context.Context, staffID, commentID uuid.UUID) error {
	staff, err := s.userRepo.FindByID(ctx, staffID)
	if err != nil {
		return apperror.ErrForbidden
	}
	if !staff.IsStaff && !staff.IsSuperuser {
		return apperror.ErrForbidden
	}

	rows, err := s.commentRepo.Deactivate(ctx, commentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *commentService) validateBody(body string) (string, error) {
	body = strings.TrimSpace(s.sanitizer.Sanitize(body))
	if body == "" {
		return "", apperror.Validation("comment body is required")
	}
	if len([]rune(body)) > model.MaxCommentLength {
		return "", apperror.Validation(fmt.Sprintf("comment body must be %d characters or fewer", model.MaxCommentLength))
	}
	return body, nil
}
