package services

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"sellerhub-backend/internal/models"
)

// DashboardSummary is the reduced view the dashboard screen renders.
type DashboardSummary struct {
	TotalProducts  int                  `json:"totalProducts"`
	ActiveProducts int                  `json:"activeProducts"`
	TotalOrders    int                  `json:"totalOrders"`
	PendingOrders  int                  `json:"pendingOrders"`
	TotalRevenue   float64              `json:"totalRevenue"`
	MonthRevenue   float64              `json:"monthRevenue"`
	TopProducts    []TopProduct         `json:"topProducts"`
	ReviewSummary  models.ReviewSummary `json:"reviewSummary"`
}

// TopProduct is one row of the best-sellers-by-revenue list.
type TopProduct struct {
	ProductID *string `json:"productId,omitempty"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// DashboardService reduces the seller's products, orders and reviews
// into summary statistics. Every call re-fetches; nothing is cached.
type DashboardService struct {
	db       *sql.DB
	orders   *OrderService
	products *ProductService
	reviews  *ReviewService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *sql.DB, orders *OrderService, products *ProductService, reviews *ReviewService) *DashboardService {
	return &DashboardService{db: db, orders: orders, products: products, reviews: reviews}
}

// Summary fetches the seller's products, orders and reviews and reduces
// them in memory. "This month" means order timestamps on or after the
// first instant of the current calendar month in local time.
func (s *DashboardService) Summary(sellerID string) (*DashboardSummary, error) {
	products, err := s.products.ListOwnProducts(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for dashboard: %w", err)
	}

	sellerOrders, err := s.orders.SellerOrders(sellerID, OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for dashboard: %w", err)
	}

	reviews, err := s.reviews.ListReviews(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for dashboard: %w", err)
	}

	summary := &DashboardSummary{
		TotalProducts: len(products),
		TotalOrders:   len(sellerOrders),
		ReviewSummary: Summarize(reviews),
	}
	for _, product := range products {
		if product.IsActive {
			summary.ActiveProducts++
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	top := make(map[string]*TopProduct)
	for _, order := range sellerOrders {
		if order.Status == models.OrderStatusPending {
			summary.PendingOrders++
		}
		summary.TotalRevenue += order.SellerTotal
		if !order.CreatedAt.Before(monthStart) {
			summary.MonthRevenue += order.SellerTotal
		}

		for _, item := range order.Items {
			key := item.ProductName
			if item.ProductID != nil {
				key = *item.ProductID
			}
			entry, ok := top[key]
			if !ok {
				entry = &TopProduct{
					ProductID: item.ProductID,
					Name:      item.ProductName,
					ImageURL:  item.ImageURL,
				}
				top[key] = entry
			}
			entry.UnitsSold += item.Quantity
			entry.Revenue += item.TotalPrice
		}
	}

	summary.TopProducts = topByRevenue(top, 5)
	return summary, nil
}

// topByRevenue sorts the accumulated per-product entries by revenue and
// keeps the first n.
func topByRevenue(entries map[string]*TopProduct, n int) []TopProduct {
	list := make([]TopProduct, 0, len(entries))
	for _, entry := range entries {
		list = append(list, *entry)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Revenue != list[j].Revenue {
			return list[i].Revenue > list[j].Revenue
		}
		return list[i].Name < list[j].Name
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
