package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review status codes, stored as 2-char values.
const (
	StatusDraft     = "DF"
	StatusPublished = "PB"
)

const DefaultRating = 3

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Slug      string    `gorm:"size:210;not null;uniqueIndex:idx_reviews_slug_day" json:"slug"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	FilmTitle string    `gorm:"size:200;not null" json:"film_title"`
	Year      int       `gorm:"not null" json:"year"`
	Director  string    `gorm:"size:200;not null" json:"director"`
	Rating    int       `gorm:"default:3" json:"rating"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Tags      []ReviewTag `gorm:"foreignKey:ReviewID" json:"tags,omitempty"`
	// CreatedDay duplicates the date part of CreatedOn so the
	// slug-unique-per-day constraint can live in the schema.
	CreatedDay string    `gorm:"size:10;not null;uniqueIndex:idx_reviews_slug_day" json:"-"`
	CreatedOn  time.Time `gorm:"autoCreateTime;index:,sort:desc" json:"created_on"`
	UpdatedOn  time.Time `gorm:"autoUpdateTime;index:,sort:desc" json:"updated_on"`
	Status     string    `gorm:"size:2;default:DF;index" json:"status"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
		if err != nil {
			return err
		}
	}
	if r.CreatedOn.IsZero() {
		r.CreatedOn = time.Now()
	}
	if r.CreatedDay == "" {
		r.CreatedDay = r.CreatedOn.Format("2006-01-02")
	}
	return nil
}

// ReviewTag is one label on one review. The pair is unique so the same
// tag cannot be attached twice.
type ReviewTag struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_tags_pair" json:"-"`
	Tag      string    `gorm:"size:100;not null;uniqueIndex:idx_review_tags_pair;index" json:"tag"`
}
