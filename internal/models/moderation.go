package models

import (
	"encoding/json"
	"time"
)

// ReturnStatus represents return request status
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

// ReturnRequest references an order item and, transitively through its
// product, the seller who moderates it.
type ReturnRequest struct {
	ID              string       `json:"id" db:"id"`
	OrderItemID     string       `json:"orderItemId" db:"order_item_id"`
	Reason          string       `json:"reason" db:"reason"`
	Status          ReturnStatus `json:"status" db:"status"`
	RejectionReason *string      `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`

	// Joined data (populated when listing)
	OrderID     string  `json:"orderId,omitempty"`
	OrderNumber string  `json:"orderNumber,omitempty"`
	ProductID   *string `json:"productId,omitempty"`
	ProductName string  `json:"productName,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
}

// IsPending checks if the return is still awaiting moderation
func (r *ReturnRequest) IsPending() bool {
	return r.Status == ReturnStatusPending
}

// Review references a product and may carry at most one seller reply,
// set once and immutable afterwards.
type Review struct {
	ID          string     `json:"id" db:"id"`
	ProductID   string     `json:"productId" db:"product_id"`
	BuyerID     string     `json:"buyerId" db:"buyer_id"`
	Rating      int        `json:"rating" db:"rating"`
	Comment     *string    `json:"comment,omitempty" db:"comment"`
	Images      []string   `json:"images" db:"images"`
	SellerReply *string    `json:"sellerReply,omitempty" db:"seller_reply"`
	RepliedAt   *time.Time `json:"repliedAt,omitempty" db:"replied_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	// Joined data (populated when listing)
	ProductName string `json:"productName,omitempty"`
}

// ReviewSummary holds statistics reduced in memory from a seller's
// fetched review set.
type ReviewSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	AwaitingReply int     `json:"awaitingReply"`
}

// IsValidRating checks if the rating is valid (1-5)
func (r *Review) IsValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// HasReply reports whether the seller has already replied.
func (r *Review) HasReply() bool {
	return r.SellerReply != nil && *r.SellerReply != ""
}

// GetImagesJSON returns review images as JSON string for database storage
func (r *Review) GetImagesJSON() (string, error) {
	if len(r.Images) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r.Images)
	return string(data), err
}

// SetImagesFromJSON sets review images from JSON string
func (r *Review) SetImagesFromJSON(s string) error {
	if s == "" {
		r.Images = []string{}
		return nil
	}
	return json.Unmarshal([]byte(s), &r.Images)
}
