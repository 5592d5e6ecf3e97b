package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCommentLength caps the comment body.
const MaxCommentLength = 800

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	Review    Review    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Body      string    `gorm:"size:800;not null" json:"body"`
	CreatedOn time.Time `gorm:"autoCreateTime;index" json:"created_on"`
	UpdatedOn time.Time `gorm:"autoUpdateTime" json:"updated_on"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
