package dto

import (
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Title     string   `json:"title"`
	FilmTitle string   `json:"film_title" binding:"required,max=200"`
	Year      int      `json:"year" binding:"required,min=1888,max=2100"`
	Director  string   `json:"director" binding:"required,max=200"`
	Rating    int      `json:"rating" binding:"omitempty,min=1,max=5"`
	Body      string   `json:"body" binding:"required"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status" binding:"omitempty,oneof=DF PB"`
}

type UpdateReviewRequest struct {
	Title    *string  `json:"title"`
	Director *string  `json:"director"`
	Rating   *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Body     *string  `json:"body"`
	Tags     []string `json:"tags"`
}

type ReviewResponse struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	URL       string         `json:"url"`
	Author    AuthorResponse `json:"author"`
	FilmTitle string         `json:"film_title"`
	Year      int            `json:"year"`
	Director  string         `json:"director"`
	Rating    int            `json:"rating"`
	Body      string         `json:"body"`
	Tags      []string       `json:"tags"`
	Status    string         `json:"status"`
	CreatedOn string         `json:"created_on"`
	UpdatedOn string         `json:"updated_on"`
}

type PaginatedReviewResponse struct {
	Data []ReviewResponse `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

type ReviewDetailResponse struct {
	Review        ReviewResponse    `json:"review"`
	Comments      []CommentResponse `json:"comments"`
	MostCommented []ReviewResponse  `json:"most_commented"`
	HighestRated  []ReviewResponse  `json:"highest_rated"`
}

type SearchReviewResponse struct {
	Query string           `json:"query"`
	Hits  []ReviewResponse `json:"hits"`
}
