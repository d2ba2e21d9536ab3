package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"sellerhub-backend/internal/models"
)

// ErrOrderItemNotFound is returned when an order item does not exist or
// does not belong to the requesting seller's catalog.
var ErrOrderItemNotFound = errors.New("order item not found")

// OrderService reconstructs the per-seller view of multi-vendor orders.
// Order items carry no seller id, so ownership is traced transitively:
// owned product ids first, then items by membership, then headers. The
// same two-stage id-set filter keeps the read path portable across
// storage engines.
type OrderService struct {
	db *sql.DB
}

// NewOrderService creates a new order service
func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderFilter narrows the aggregated result in memory
type OrderFilter struct {
	Search string
	Status string
}

// SellerOrders returns every order containing at least one of the
// seller's products, newest first, with only that seller's items and
// the seller's revenue share. A seller with no products yields an empty
// list without touching the order tables. Any fetch failure aborts the
// whole aggregation; partial results are never returned.
func (s *OrderService) SellerOrders(sellerID string, filter OrderFilter) ([]*models.SellerOrder, error) {
	productIDs, err := s.ownedProductIDs(sellerID)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []*models.SellerOrder{}, nil
	}

	items, err := s.itemsForProducts(productIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*models.SellerOrder{}, nil
	}

	orderIDs := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.OrderID] {
			seen[item.OrderID] = true
			orderIDs = append(orderIDs, item.OrderID)
		}
	}

	headers, err := s.ordersByID(orderIDs)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[string]*models.SellerOrder, len(headers))
	for id, header := range headers {
		byOrder[id] = &models.SellerOrder{Order: *header}
	}

	for _, item := range items {
		sellerOrder, ok := byOrder[item.OrderID]
		if !ok {
			// Item references a missing header; skip rather than invent one.
			continue
		}
		sellerOrder.Items = append(sellerOrder.Items, item)
		sellerOrder.SellerTotal += item.TotalPrice
	}

	result := make([]*models.SellerOrder, 0, len(byOrder))
	for _, sellerOrder := range byOrder {
		if len(sellerOrder.Items) == 0 {
			continue
		}
		if filter.Status != "" && string(sellerOrder.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(sellerOrder, filter.Search) {
			continue
		}
		result = append(result, sellerOrder)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// UpdateItemStatus advances the fulfilment status of one of the
// seller's own line items. Only the status column is touched; the
// snapshot fields are immutable.
func (s *OrderService) UpdateItemStatus(itemID, sellerID, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid status: %s", status)
	}

	result, err := s.db.Exec(`
		UPDATE order_items SET status = ?
		WHERE id = ? AND product_id IN (SELECT id FROM products WHERE seller_id = ?)`,
		status, itemID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}

// ownedProductIDs is the ownership stage of the filter chain.
func (s *OrderService) ownedProductIDs(sellerID string) ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM products WHERE seller_id = ?", sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product ids: %w", err)
	}
	return ids, nil
}

// itemsForProducts fetches the line items whose product id is in the
// owned set.
func (s *OrderService) itemsForProducts(productIDs []string) ([]models.OrderItem, error) {
	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, product_name, brand, image_url, variant,
			   quantity, unit_price, total_price, status, created_at
		FROM order_items
		WHERE product_id IN (%s)`, placeholders(len(productIDs)))

	rows, err := s.db.Query(query, toArgs(productIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Brand,
			&item.ImageURL, &item.Variant, &item.Quantity, &item.UnitPrice,
			&item.TotalPrice, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return items, nil
}

// ordersByID fetches the referenced order headers keyed by id.
func (s *OrderService) ordersByID(orderIDs []string) (map[string]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, order_number, buyer_id, status, delivery_name, delivery_phone,
			   address_line_1, address_line_2, city, state, postal_code,
			   subtotal, discount, delivery_charge, total_amount, created_at, updated_at
		FROM orders
		WHERE id IN (%s)`, placeholders(len(orderIDs)))

	rows, err := s.db.Query(query, toArgs(orderIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer rows.Close()

	headers := make(map[string]*models.Order, len(orderIDs))
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.BuyerID, &order.Status,
			&order.DeliveryName, &order.DeliveryPhone, &order.AddressLine1,
			&order.AddressLine2, &order.City, &order.State, &order.PostalCode,
			&order.Subtotal, &order.Discount, &order.DeliveryCharge,
			&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		headers[order.ID] = &order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return headers, nil
}

// matchesSearch matches the query against order number, delivery name
// and each item's product name, case-insensitively.
func matchesSearch(o *models.SellerOrder, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(o.OrderNumber), q) {
		return true
	}
	if strings.Contains(strings.ToLower(o.DeliveryName), q) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.ProductName), q) {
			return true
		}
	}
	return false
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
