package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sellerhub-backend/internal/models"
)

var (
	// ErrReturnNotFound is returned when a return request does not exist
	// or belongs to another seller's product.
	ErrReturnNotFound = errors.New("return request not found")

	// ErrRejectionReasonRequired is returned when a rejection carries no
	// reason. No write happens in that case.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
)

// ReturnService handles seller moderation of buyer return requests.
// Ownership is always enforced through the order item's product.
type ReturnService struct {
	db *sql.DB
}

// NewReturnService creates a new return service
func NewReturnService(db *sql.DB) *ReturnService {
	return &ReturnService{db: db}
}

// ListReturns returns the seller's return requests with order and item
// context joined in, newest first. An optional status narrows the list.
func (s *ReturnService) ListReturns(sellerID, status string) ([]*models.ReturnRequest, error) {
	query := `
		SELECT r.id, r.order_item_id, r.reason, r.status, r.rejection_reason,
			   r.created_at, r.updated_at,
			   oi.order_id, o.order_number, oi.product_id, oi.product_name,
			   oi.image_url, oi.quantity, oi.total_price
		FROM returns r
		JOIN order_items oi ON oi.id = r.order_item_id
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id IN (SELECT id FROM products WHERE seller_id = ?)`
	args := []interface{}{sellerID}

	if status != "" {
		query += " AND r.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch returns: %w", err)
	}
	defer rows.Close()

	var returns []*models.ReturnRequest
	for rows.Next() {
		var ret models.ReturnRequest
		if err := rows.Scan(
			&ret.ID, &ret.OrderItemID, &ret.Reason, &ret.Status, &ret.RejectionReason,
			&ret.CreatedAt, &ret.UpdatedAt,
			&ret.OrderID, &ret.OrderNumber, &ret.ProductID, &ret.ProductName,
			&ret.ImageURL, &ret.Quantity, &ret.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan return: %w", err)
		}
		returns = append(returns, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate returns: %w", err)
	}
	return returns, nil
}

// Approve marks the return request approved. Approving an already
// approved request succeeds and leaves the row unchanged.
func (s *ReturnService) Approve(returnID, sellerID string) error {
	result, err := s.db.Exec(`
		UPDATE returns SET status = ?, rejection_reason = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND order_item_id IN (
			SELECT oi.id FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE p.seller_id = ?
		)`,
		models.ReturnStatusApproved, returnID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to approve return: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrReturnNotFound
	}
	return nil
}

// Reject marks the return request rejected with the given reason. The
// reason is validated before any query runs; a blank reason rejects
// nothing.
func (s *ReturnService) Reject(returnID, sellerID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	result, err := s.db.Exec(`
		UPDATE returns SET status = ?, rejection_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND order_item_id IN (
			SELECT oi.id FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE p.seller_id = ?
		)`,
		models.ReturnStatusRejected, reason, returnID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to reject return: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrReturnNotFound
	}
	return nil
}
