package service

import (
	"html"
	"log"
	"strings"

	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const reviewIndex = "reviews"

// SearchService maintains the full-text index of published reviews.
// Drafts are never indexed; unpublishing removes the document.
type SearchService interface {
	IndexReview(review *model.Review) error
	DeleteReview(id string) error
	SearchReviews(query string, limit int) ([]uuid.UUID, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *searchService) initIndexes() {
	sortableAttrs := []string{"year", "rating"}
	if _, err := s.client.Index(reviewIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update reviews sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliReviewDoc struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	FilmTitle string   `json:"film_title"`
	Director  string   `json:"director"`
	Year      int      `json:"year"`
	Rating    int      `json:"rating"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
}

func (s *searchService) cleanBodyForIndex(body string) string {
	body = strings.ReplaceAll(body, "</p>", " ")
	body = strings.ReplaceAll(body, "<br>", " ")

	sanitized := s.sanitizer.Sanitize(body)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexReview(review *model.Review) error {
	if s.client == nil {
		return nil
	}

	tags := make([]string, 0, len(review.Tags))
	for _, t := range review.Tags {
		tags = append(tags, t.Tag)
	}

	doc := meiliReviewDoc{
		ID:        review.ID.String(),
		Title:     review.Title,
		Slug:      review.Slug,
		FilmTitle: review.FilmTitle,
		Director:  review.Director,
		Year:      review.Year,
		Rating:    review.Rating,
		Body:      s.cleanBodyForIndex(review.Body),
		Tags:      tags,
	}

	task, err := s.client.Index(reviewIndex).AddDocuments([]meiliReviewDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}

	log.Printf("Queued review %s for indexing (task %d)", doc.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteReview(id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(reviewIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchReviews(query string, limit int) ([]uuid.UUID, error) {
	if s.client == nil || strings.TrimSpace(query) == "" {
		return []uuid.UUID{}, nil
	}

	resp, err := s.client.Index(reviewIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var doc meiliReviewDoc
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
