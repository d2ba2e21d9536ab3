package models

import "time"

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an order header created once at checkout. The delivery
// fields and monetary totals are a frozen snapshot of the buyer's
// address and cart at that moment; they are never re-derived from the
// live addresses or products tables.
type Order struct {
	ID             string      `json:"id" db:"id"`
	OrderNumber    string      `json:"orderNumber" db:"order_number"`
	BuyerID        string      `json:"buyerId" db:"buyer_id"`
	Status         OrderStatus `json:"status" db:"status"`
	DeliveryName   string      `json:"deliveryName" db:"delivery_name"`
	DeliveryPhone  string      `json:"deliveryPhone" db:"delivery_phone"`
	AddressLine1   string      `json:"addressLine1" db:"address_line_1"`
	AddressLine2   string      `json:"addressLine2" db:"address_line_2"`
	City           string      `json:"city" db:"city"`
	State          string      `json:"state" db:"state"`
	PostalCode     string      `json:"postalCode" db:"postal_code"`
	Subtotal       float64     `json:"subtotal" db:"subtotal"`
	Discount       float64     `json:"discount" db:"discount"`
	DeliveryCharge float64     `json:"deliveryCharge" db:"delivery_charge"`
	TotalAmount    float64     `json:"totalAmount" db:"total_amount"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one product line within an order and the unit of
// seller-revenue attribution. Product name, brand, image, price and
// variant are snapshotted at purchase time; product_id may be null if
// the product was later deleted.
type OrderItem struct {
	ID          string    `json:"id" db:"id"`
	OrderID     string    `json:"orderId" db:"order_id"`
	ProductID   *string   `json:"productId,omitempty" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	Brand       string    `json:"brand" db:"brand"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Variant     string    `json:"variant" db:"variant"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unitPrice" db:"unit_price"`
	TotalPrice  float64   `json:"totalPrice" db:"total_price"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SellerOrder is the per-seller view of a multi-vendor order: the
// header plus only this seller's line items. SellerTotal is the sum of
// those items' total prices, not the platform-wide order total.
type SellerOrder struct {
	Order
	Items       []OrderItem `json:"items"`
	SellerTotal float64     `json:"sellerTotal"`
}

// Address is a buyer's live delivery address. It exists in the schema
// contract but this application only ever reads order snapshots;
// addresses are never joined back to repair historical data.
type Address struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	AddressLine1 string    `json:"addressLine1" db:"address_line_1"`
	AddressLine2 string    `json:"addressLine2" db:"address_line_2"`
	City         string    `json:"city" db:"city"`
	State        string    `json:"state" db:"state"`
	PostalCode   string    `json:"postalCode" db:"postal_code"`
	IsDefault    bool      `json:"isDefault" db:"is_default"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsCancelled checks if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}
