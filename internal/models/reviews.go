package models

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a row in the items table.
type Item struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	AverageRating float64   `json:"average_rating" db:"average_rating"`
}

// Review is one user's review of one item. A user can review
// an item only once.
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	ItemID     uuid.UUID `json:"item_id" db:"item_id"`
	ReviewText *string   `json:"review_text" db:"review_text"`
	Rating     int       `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ItemReview is a review joined with the author's username,
// as returned when listing reviews for an item.
type ItemReview struct {
	Review
	Username string `json:"username" db:"username"`
}

// UserReview is a review joined with the reviewed item's name,
// as returned when listing a user's reviews.
type UserReview struct {
	Review
	ItemName string `json:"item_name" db:"item_name"`
}

// Comment is a comment on a review.
type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ReviewID    uuid.UUID `json:"review_id" db:"review_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CommentText *string   `json:"comment_text" db:"comment_text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
