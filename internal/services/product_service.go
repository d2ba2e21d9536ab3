package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sellerhub-backend/internal/models"
	"sellerhub-backend/internal/utils"
)

// ErrProductNotFound is returned when a product does not exist or is
// not owned by the requesting seller.
var ErrProductNotFound = errors.New("product not found")

// ProductService handles catalog management for a seller's own products
type ProductService struct {
	db *sql.DB
}

// NewProductService creates a new product service
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

const productColumns = `id, seller_id, name, brand, description, category, price, mrp, discount_percent,
	stock, is_active, sizes, colors, highlights, attributes, images, created_at, updated_at`

// ListOwnProducts returns all of a seller's products, newest first.
// There is no pagination; large catalogs are a known scaling gap.
func (s *ProductService) ListOwnProducts(sellerID string) ([]*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE seller_id = ? ORDER BY created_at DESC", productColumns)

	rows, err := s.db.Query(query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves one product scoped to its owner.
func (s *ProductService) GetProduct(productID, sellerID string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ? AND seller_id = ?", productColumns)

	row := s.db.QueryRow(query, productID, sellerID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct writes a new product for the seller. The selling price
// is derived client-side from MRP and discount before the write; the
// store does not re-validate it.
func (s *ProductService) CreateProduct(input *models.ProductInput, sellerID string) (*models.Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	now := time.Now()
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	product := &models.Product{
		ID:              uuid.New().String(),
		SellerID:        &sellerID,
		Name:            input.Name,
		Brand:           input.Brand,
		Description:     input.Description,
		Category:        input.Category,
		Price:           models.SellingPrice(input.MRP, input.DiscountPercent, input.Price),
		MRP:             input.MRP,
		DiscountPercent: input.DiscountPercent,
		Stock:           input.Stock,
		IsActive:        active,
		Sizes:           input.Sizes,
		Colors:          input.Colors,
		Highlights:      input.Highlights,
		Attributes:      input.Attributes,
		Images:          input.Images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	sizesJSON, colorsJSON, highlightsJSON, attributesJSON, imagesJSON, err := serializeProductFields(product)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (
			id, seller_id, name, brand, description, category, price, mrp, discount_percent,
			stock, is_active, sizes, colors, highlights, attributes, images, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		product.ID, product.SellerID, product.Name, product.Brand, product.Description,
		product.Category, product.Price, product.MRP, product.DiscountPercent,
		product.Stock, product.IsActive, sizesJSON, colorsJSON, highlightsJSON,
		attributesJSON, imagesJSON, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct replaces the mutable fields of a product owned by the
// seller and re-derives the selling price.
func (s *ProductService) UpdateProduct(productID, sellerID string, input *models.ProductInput) (*models.Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	existing, err := s.GetProduct(productID, sellerID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Brand = input.Brand
	existing.Description = input.Description
	existing.Category = input.Category
	existing.MRP = input.MRP
	existing.DiscountPercent = input.DiscountPercent
	existing.Price = models.SellingPrice(input.MRP, input.DiscountPercent, input.Price)
	existing.Stock = input.Stock
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	existing.Sizes = input.Sizes
	existing.Colors = input.Colors
	existing.Highlights = input.Highlights
	existing.Attributes = input.Attributes
	existing.Images = input.Images
	existing.UpdatedAt = time.Now()

	sizesJSON, colorsJSON, highlightsJSON, attributesJSON, imagesJSON, err := serializeProductFields(existing)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products SET
			name = ?, brand = ?, description = ?, category = ?, price = ?, mrp = ?, discount_percent = ?,
			stock = ?, is_active = ?, sizes = ?, colors = ?, highlights = ?, attributes = ?, images = ?, updated_at = ?
		WHERE id = ? AND seller_id = ?
	`

	result, err := s.db.Exec(query,
		existing.Name, existing.Brand, existing.Description, existing.Category,
		existing.Price, existing.MRP, existing.DiscountPercent, existing.Stock,
		existing.IsActive, sizesJSON, colorsJSON, highlightsJSON, attributesJSON,
		imagesJSON, existing.UpdatedAt, productID, sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrProductNotFound
	}

	return existing, nil
}

// DeleteProduct removes a product owned by the seller. Order item
// snapshots referencing it keep their frozen copy; only the live
// foreign key is nulled by the schema.
func (s *ProductService) DeleteProduct(productID, sellerID string) error {
	result, err := s.db.Exec("DELETE FROM products WHERE id = ? AND seller_id = ?", productID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// rowScanner lets scanProduct serve both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var sizesJSON, colorsJSON, highlightsJSON, attributesJSON, imagesJSON string

	err := row.Scan(
		&product.ID, &product.SellerID, &product.Name, &product.Brand, &product.Description,
		&product.Category, &product.Price, &product.MRP, &product.DiscountPercent,
		&product.Stock, &product.IsActive, &sizesJSON, &colorsJSON, &highlightsJSON,
		&attributesJSON, &imagesJSON, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if err := product.SetSizesFromJSON(sizesJSON); err != nil {
		return nil, fmt.Errorf("failed to parse sizes: %w", err)
	}
	if err := product.SetColorsFromJSON(colorsJSON); err != nil {
		return nil, fmt.Errorf("failed to parse colors: %w", err)
	}
	if err := product.SetHighlightsFromJSON(highlightsJSON); err != nil {
		return nil, fmt.Errorf("failed to parse highlights: %w", err)
	}
	if err := product.SetAttributesFromJSON(attributesJSON); err != nil {
		return nil, fmt.Errorf("failed to parse attributes: %w", err)
	}
	if err := product.SetImagesFromJSON(imagesJSON); err != nil {
		return nil, fmt.Errorf("failed to parse images: %w", err)
	}

	return product, nil
}

func serializeProductFields(p *models.Product) (sizes, colors, highlights, attributes, images string, err error) {
	if sizes, err = p.GetSizesJSON(); err != nil {
		return "", "", "", "", "", fmt.Errorf("failed to serialize sizes: %w", err)
	}
	if colors, err = p.GetColorsJSON(); err != nil {
		return "", "", "", "", "", fmt.Errorf("failed to serialize colors: %w", err)
	}
	if highlights, err = p.GetHighlightsJSON(); err != nil {
		return "", "", "", "", "", fmt.Errorf("failed to serialize highlights: %w", err)
	}
	if attributes, err = p.GetAttributesJSON(); err != nil {
		return "", "", "", "", "", fmt.Errorf("failed to serialize attributes: %w", err)
	}
	if images, err = p.GetImagesJSON(); err != nil {
		return "", "", "", "", "", fmt.Errorf("failed to serialize images: %w", err)
	}
	return sizes, colors, highlights, attributes, images, nil
}
