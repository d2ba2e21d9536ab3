package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"sellerhub-backend/internal/models"
)

var (
	// ErrReviewNotFound is returned when a review does not exist or is
	// attached to another seller's product.
	ErrReviewNotFound = errors.New("review not found")

	// ErrAlreadyReplied is returned when a reply already exists. Replies
	// are set once and never edited.
	ErrAlreadyReplied = errors.New("review already has a reply")

	// ErrReplyRequired is returned when the reply text is blank.
	ErrReplyRequired = errors.New("reply text is required")
)

// ReviewService handles listing and replying to reviews of a seller's
// products.
type ReviewService struct {
	db *sql.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *sql.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListReviews returns all reviews of the seller's products, newest
// first, with the product name joined in.
func (s *ReviewService) ListReviews(sellerID string) ([]*models.Review, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.product_id, r.buyer_id, r.rating, r.comment, r.images,
			   r.seller_reply, r.replied_at, r.created_at, p.name
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE p.seller_id = ?
		ORDER BY r.created_at DESC`,
		sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var review models.Review
		var imagesJSON string
		if err := rows.Scan(
			&review.ID, &review.ProductID, &review.BuyerID, &review.Rating,
			&review.Comment, &imagesJSON, &review.SellerReply, &review.RepliedAt,
			&review.CreatedAt, &review.ProductName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if err := review.SetImagesFromJSON(imagesJSON); err != nil {
			return nil, fmt.Errorf("failed to parse review images: %w", err)
		}
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}

// Reply records the seller's reply on a review. The write is guarded so
// it only lands when no reply exists yet; a second attempt reports
// ErrAlreadyReplied.
func (s *ReviewService) Reply(reviewID, sellerID, reply string) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ErrReplyRequired
	}

	result, err := s.db.Exec(`
		UPDATE reviews SET seller_reply = ?, replied_at = ?
		WHERE id = ? AND seller_reply IS NULL
		  AND product_id IN (SELECT id FROM products WHERE seller_id = ?)`,
		reply, time.Now(), reviewID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to reply to review: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected > 0 {
		return nil
	}

	// Distinguish a missing review from one that already has a reply.
	var exists bool
	err = s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM reviews r
			JOIN products p ON p.id = r.product_id
			WHERE r.id = ? AND p.seller_id = ?
		)`,
		reviewID, sellerID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check review: %w", err)
	}
	if !exists {
		return ErrReviewNotFound
	}
	return ErrAlreadyReplied
}

// Summarize reduces a fetched review set to its summary statistics in
// memory. The average is rounded to one decimal place.
func Summarize(reviews []*models.Review) models.ReviewSummary {
	summary := models.ReviewSummary{TotalReviews: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
		if !review.HasReply() {
			summary.AwaitingReply++
		}
	}
	summary.AverageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	return summary
}
