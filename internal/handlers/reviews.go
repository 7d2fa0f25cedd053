package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/middlewares"
	"github.com/acmeweb/acme-api/internal/models"
)

// ItemRequest is the JSON body for creating or updating an item.
type ItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func itemCreateFields(req ItemRequest) map[string]any {
	return map[string]any{
		"id":          uuid.New(),
		"name":        req.Name,
		"description": req.Description,
	}
}

func itemUpdateFields(req ItemRequest) map[string]any {
	return map[string]any{
		"name":        req.Name,
		"description": req.Description,
	}
}

// ReviewRequest is the JSON body for creating or updating a review.
type ReviewRequest struct {
	ReviewText *string `json:"review_text"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
}

func reviewUpdateFields(req ReviewRequest) map[string]any {
	return map[string]any{
		"review_text": req.ReviewText,
		"rating":      req.Rating,
	}
}

// ItemReviewLister lists reviews for an item.
type ItemReviewLister interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemReview, error)
}

// UserReviewLister lists reviews written by a user.
type UserReviewLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserReview, error)
}

// NewItemReviewsListHandler returns GET /api/items/{id}/reviews.
func NewItemReviewsListHandler(repo ItemReviewLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		reviews, err := repo.ListByItem(r.Context(), itemID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

// NewUserReviewsListHandler returns GET /api/users/{id}/reviews.
func NewUserReviewsListHandler(repo UserReviewLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		reviews, err := repo.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

// NewItemReviewCreateHandler returns POST /api/items/{id}/reviews.
// The author is the authenticated user; reviewing the same item twice
// yields 409 from the pair uniqueness constraint.
func NewItemReviewCreateHandler(
	repo ResourceRepository[models.Review],
	validate *validator.Validate,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
			return
		}

		req, ok := decodeAndValidate[ReviewRequest](w, r, validate)
		if !ok {
			return
		}

		fields := map[string]any{
			"id":          uuid.New(),
			"user_id":     userID,
			"item_id":     itemID,
			"review_text": req.ReviewText,
			"rating":      req.Rating,
		}
		review, err := repo.Create(r.Context(), fields)
		if err != nil {
			writeError(w, err)
			return
		}

		publishFromFields(r.Context(), events, "reviews", "created", fields)
		writeJSON(w, http.StatusCreated, review)
	}
}

// CommentRequest is the JSON body for creating or updating a comment.
type CommentRequest struct {
	CommentText *string `json:"comment_text" validate:"required"`
}

func commentUpdateFields(req CommentRequest) map[string]any {
	return map[string]any{
		"comment_text": req.CommentText,
	}
}

// ReviewCommentLister lists comments on a review.
type ReviewCommentLister interface {
	ListByReview(ctx context.Context, reviewID uuid.UUID) ([]models.Comment, error)
}

// UserCommentLister lists comments written by a user.
type UserCommentLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Comment, error)
}

// NewReviewCommentsListHandler returns GET /api/reviews/{id}/comments.
func NewReviewCommentsListHandler(repo ReviewCommentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		comments, err := repo.ListByReview(r.Context(), reviewID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	}
}

// NewUserCommentsListHandler returns GET /api/users/{id}/comments.
func NewUserCommentsListHandler(repo UserCommentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		comments, err := repo.ListByUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	}
}

// NewReviewCommentCreateHandler returns POST /api/reviews/{id}/comments.
func NewReviewCommentCreateHandler(
	repo ResourceRepository[models.Comment],
	validate *validator.Validate,
	events EventPublisher,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized"})
			return
		}

		req, ok := decodeAndValidate[CommentRequest](w, r, validate)
		if !ok {
			return
		}

		fields := map[string]any{
			"id":           uuid.New(),
			"review_id":    reviewID,
			"user_id":      userID,
			"comment_text": req.CommentText,
		}
		comment, err := repo.Create(r.Context(), fields)
		if err != nil {
			writeError(w, err)
			return
		}

		publishFromFields(r.Context(), events, "comments", "created", fields)
		writeJSON(w, http.StatusCreated, comment)
	}
}
