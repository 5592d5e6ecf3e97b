package repository

import (
	"context"
	"fmt"

	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review, tags []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindOwnedByID(ctx context.Context, id, authorID uuid.UUID) (*model.Review, error)
	FindPublished(ctx context.Context, tag string, offset, limit int) ([]*model.Review, int64, error)
	FindPublishedBySlugAndDay(ctx context.Context, day, slug string) (*model.Review, error)
	MostCommented(ctx context.Context, limit int) ([]*model.Review, error)
	HighestRated(ctx context.Context, limit int) ([]*model.Review, error)
	ExistsBySlugAndDay(ctx context.Context, slug, day string) (bool, error)
	Update(ctx context.Context, review *model.Review) error
	ReplaceTags(ctx context.Context, reviewID uuid.UUID, tags []string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.Create(&model.ReviewTag{ReviewID: review.ID, Tag: tag}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindOwnedByID folds ownership into the lookup so a mismatch reads as
// record-not-found rather than forbidden.
func (r *reviewRepository) FindOwnedByID(ctx context.Context, id, authorID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindPublished(ctx context.Context, tag string, offset, limit int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("status = ?", model.StatusPublished)

	if tag != "" {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&model.ReviewTag{}).Select("review_id").Where("tag = ?", tag),
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Preload("Tags").
		Order("updated_on DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) FindPublishedBySlugAndDay(ctx context.Context, day, slug string) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("slug = ? AND created_day = ? AND status = ?", slug, day, model.StatusPublished).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// MostCommented ranks published reviews by total comment count, inactive
// comments included. Ties fall back to id so the order is reproducible.
func (r *reviewRepository) MostCommented(ctx context.Context, limit int) ([]*model.Review, error) {
	var ids []uuid.UUID

	query := `
		SELECT r.id
		FROM reviews r
		LEFT JOIN comments c ON c.review_id = r.id
		WHERE r.status = ?
		GROUP BY r.id
		ORDER BY COUNT(c.id) DESC, r.id ASC
		LIMIT ?
	`

	if err := r.db.WithContext(ctx).Raw(query, model.StatusPublished, limit).Scan(&ids).Error; err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Review{}, nil
	}

	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	// Reorder to match the ranking order
	reviewMap := make(map[uuid.UUID]*model.Review)
	for _, rev := range reviews {
		reviewMap[rev.ID] = rev
	}

	ordered := make([]*model.Review, 0, len(ids))
	for _, id := range ids {
		if rev, ok := reviewMap[id]; ok {
			ordered = append(ordered, rev)
		}
	}

	return ordered, nil
}

func (r *reviewRepository) HighestRated(ctx context.Context, limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("status = ?", model.StatusPublished).
		Order("rating DESC").
		Order("id ASC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsBySlugAndDay(ctx context.Context, slug, day string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("slug = ? AND created_day = ?", slug, day).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) ReplaceTags(ctx context.Context, reviewID uuid.UUID, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&model.ReviewTag{}).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.Create(&model.ReviewTag{ReviewID: reviewID, Tag: tag}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *reviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
