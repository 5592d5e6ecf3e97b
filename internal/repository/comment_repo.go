package repository

import (
	"context"

	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error)
	FindActiveByReview(ctx context.Context, reviewID uuid.UUID) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindOwnedByID uses ownership as part of the lookup predicate, so a
// comment owned by someone else is indistinguishable from a missing one.
func (r *commentRepository) FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindActiveByReview(ctx context.Context, reviewID uuid.UUID) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("review_id = ? AND is_active = ?", reviewID, true).
		Order("created_on ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
