package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled"} {
		assert.True(t, IsValidStatus(status), status)
	}
	assert.False(t, IsValidStatus("teleported"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("Pending"))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusCancelled}).IsCancelled())
	assert.False(t, (&Order{Status: OrderStatusPending}).IsCancelled())
}

func TestReturnIsPending(t *testing.T) {
	assert.True(t, (&ReturnRequest{Status: ReturnStatusPending}).IsPending())
	assert.False(t, (&ReturnRequest{Status: ReturnStatusApproved}).IsPending())
}

func TestReviewHasReply(t *testing.T) {
	assert.False(t, (&Review{}).HasReply())

	empty := ""
	assert.False(t, (&Review{SellerReply: &empty}).HasReply())

	reply := "Thanks!"
	assert.True(t, (&Review{SellerReply: &reply}).HasReply())
}

func TestReviewIsValidRating(t *testing.T) {
	assert.True(t, (&Review{Rating: 1}).IsValidRating())
	assert.True(t, (&Review{Rating: 5}).IsValidRating())
	assert.False(t, (&Review{Rating: 0}).IsValidRating())
	assert.False(t, (&Review{Rating: 6}).IsValidRating())
}
