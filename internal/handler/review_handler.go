package handler

import (
	"net/http"
	"strconv"

	"github.com/Lloyd952/horror-haven/internal/dto"
	"github.com/Lloyd952/horror-haven/internal/service"
	"github.com/Lloyd952/horror-haven/pkg/response"
	"github.com/Lloyd952/horror-haven/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.UpdateReview(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) PublishReview(c *gin.Context) {
	h.setStatus(c, true)
}

func (h *ReviewHandler) UnpublishReview(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *ReviewHandler) setStatus(c *gin.Context, publish bool) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var resp *dto.ReviewResponse
	if publish {
		resp, err = h.service.PublishReview(c.Request.Context(), userID, reviewID)
	} else {
		resp, err = h.service.UnpublishReview(c.Request.Context(), userID, reviewID)
	}
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPublished accepts any page value: non-numeric falls back to page 1
// and the service clamps out-of-range pages.
func (h *ReviewHandler) ListPublished(c *gin.Context) {
	page := parsePage(c.Query("page"))

	resp, err := h.service.ListPublished(c.Request.Context(), "", page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ListPublishedByTag(c *gin.Context) {
	page := parsePage(c.Query("page"))
	tag := c.Param("tag")

	resp, err := h.service.ListPublished(c.Request.Context(), tag, page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) GetReviewDetail(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	day, err3 := strconv.Atoi(c.Param("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}

	resp, err := h.service.GetPublishedBySlugAndDate(c.Request.Context(), year, month, day, c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) MostCommented(c *gin.Context) {
	resp, err := h.service.MostCommented(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *ReviewHandler) HighestRated(c *gin.Context) {
	resp, err := h.service.HighestRated(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *ReviewHandler) SearchReviews(c *gin.Context) {
	resp, err := h.service.SearchPublished(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
