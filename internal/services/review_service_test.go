package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub-backend/internal/models"
)

func TestListReviews(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)

	userA := insertUser(t, db, "a@example.com", "password123")
	sellerA := insertSeller(t, db, userA, "Store A", true)
	userB := insertUser(t, db, "b@example.com", "password123")
	sellerB := insertSeller(t, db, userB, "Store B", true)

	productA := insertProduct(t, db, sellerA, "Sneakers", 1299)
	productB := insertProduct(t, db, sellerB, "Backpack", 899)

	insertReview(t, db, productA, 5, nil)
	insertReview(t, db, productA, 3, strPtr("Thanks for the feedback"))
	insertReview(t, db, productB, 1, nil)

	reviews, err := service.ListReviews(sellerA)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		assert.Equal(t, "Sneakers", review.ProductName)
		assert.Equal(t, productA, review.ProductID)
	}
}

func TestReply(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)

	userID := insertUser(t, db, "shop@example.com", "password123")
	sellerID := insertSeller(t, db, userID, "Test Store", true)
	productID := insertProduct(t, db, sellerID, "Sneakers", 1299)
	reviewID := insertReview(t, db, productID, 4, nil)

	t.Run("blank reply is rejected", func(t *testing.T) {
		assert.ErrorIs(t, service.Reply(reviewID, sellerID, "  "), ErrReplyRequired)
	})

	t.Run("first reply lands", func(t *testing.T) {
		require.NoError(t, service.Reply(reviewID, sellerID, "Glad you liked them!"))

		var reply string
		require.NoError(t, db.QueryRow("SELECT seller_reply FROM reviews WHERE id = ?", reviewID).Scan(&reply))
		assert.Equal(t, "Glad you liked them!", reply)
	})

	t.Run("second reply is refused and the first survives", func(t *testing.T) {
		err := service.Reply(reviewID, sellerID, "Changed my mind")
		assert.ErrorIs(t, err, ErrAlreadyReplied)

		var reply string
		require.NoError(t, db.QueryRow("SELECT seller_reply FROM reviews WHERE id = ?", reviewID).Scan(&reply))
		assert.Equal(t, "Glad you liked them!", reply)
	})

	t.Run("unknown review", func(t *testing.T) {
		assert.ErrorIs(t, service.Reply("no-such-review", sellerID, "hello"), ErrReviewNotFound)
	})

	t.Run("another seller's review", func(t *testing.T) {
		otherUser := insertUser(t, db, "other@example.com", "password123")
		otherSeller := insertSeller(t, db, otherUser, "Other Store", true)
		fresh := insertReview(t, db, productID, 2, nil)

		assert.ErrorIs(t, service.Reply(fresh, otherSeller, "not yours"), ErrReviewNotFound)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		summary := Summarize(nil)
		assert.Equal(t, 0, summary.TotalReviews)
		assert.Equal(t, 0.0, summary.AverageRating)
		assert.Equal(t, 0, summary.AwaitingReply)
	})

	t.Run("average rounded to one decimal", func(t *testing.T) {
		reviews := []*models.Review{
			{Rating: 5, SellerReply: strPtr("thanks")},
			{Rating: 4},
			{Rating: 2},
		}
		summary := Summarize(reviews)
		assert.Equal(t, 3, summary.TotalReviews)
		assert.Equal(t, 3.7, summary.AverageRating)
		assert.Equal(t, 2, summary.AwaitingReply)
	})
}
