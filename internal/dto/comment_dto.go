package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=800"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,max=800"`
}

type CommentResponse struct {
	ID        uuid.UUID      `json:"id"`
	ReviewID  uuid.UUID      `json:"review_id"`
	Author    AuthorResponse `json:"author"`
	Body      string         `json:"body"`
	CreatedOn string         `json:"created_on"`
	UpdatedOn string         `json:"updated_on"`
}
