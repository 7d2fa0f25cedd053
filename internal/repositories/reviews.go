package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

// ItemRepository handles the items table.
type ItemRepository struct {
	*resource.Repository[models.Item]
}

func NewItemRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ItemRepository {
	return &ItemRepository{
		Repository: resource.New[models.Item](db, txGetter, resource.Definition{
			Table:     "items",
			Columns:   []string{"id", "name", "description"},
			Updatable: []string{"name", "description"},
			OrderBy:   "name",
		}),
	}
}

// ReviewRepository handles the reviews table. A user may review an
// item only once; the store enforces the pair uniqueness at insert.
type ReviewRepository struct {
	*resource.Repository[models.Review]
}

func NewReviewRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ReviewRepository {
	return &ReviewRepository{
		Repository: resource.New[models.Review](db, txGetter, resource.Definition{
			Table:       "reviews",
			Columns:     []string{"id", "user_id", "item_id", "review_text", "rating"},
			Updatable:   []string{"review_text", "rating"},
			OrderBy:     "created_at",
			OwnerColumn: "user_id",
			Timestamps:  true,
		}),
	}
}

// ListByItem returns an item's reviews joined with the author's
// username, newest first.
func (r *ReviewRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]models.ItemReview, error) {
	const query = `
		SELECT r.*, u.username
		FROM reviews r
		LEFT JOIN users u ON r.user_id = u.id
		WHERE r.item_id = $1
		ORDER BY r.created_at DESC
	`

	out := make([]models.ItemReview, 0)
	err := r.DB().SelectContext(ctx, &out, query, itemID)
	logJoin("reviews", query, itemID, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return out, nil
}

// ListByUser returns a user's reviews joined with the reviewed
// item's name, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserReview, error) {
	const query = `
		SELECT r.*, i.name AS item_name
		FROM reviews r
		LEFT JOIN items i ON r.item_id = i.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	out := make([]models.UserReview, 0)
	err := r.DB().SelectContext(ctx, &out, query, userID)
	logJoin("reviews", query, userID, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return out, nil
}

// CommentRepository handles the comments table.
type CommentRepository struct {
	*resource.Repository[models.Comment]
}

func NewCommentRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CommentRepository {
	return &CommentRepository{
		Repository: resource.New[models.Comment](db, txGetter, resource.Definition{
			Table:       "comments",
			Columns:     []string{"id", "review_id", "user_id", "comment_text"},
			Updatable:   []string{"comment_text"},
			OrderBy:     "created_at",
			OwnerColumn: "user_id",
			Timestamps:  true,
		}),
	}
}

// ListByReview returns all comments on a review, oldest first.
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID uuid.UUID) ([]models.Comment, error) {
	return r.FetchBy(ctx, "review_id", reviewID)
}

// ListByUser returns all comments written by a user, oldest first.
func (r *CommentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	return r.FetchBy(ctx, "user_id", userID)
}

func logJoin(table, query string, arg any, err error) {
	logger.Log.Infow("query",
		"table", table,
		"statement", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"error", err,
	)
}
