package models

import (
	"encoding/json"
	"math"
	"time"
)

// ProductColor is a named color variant with its display hex code.
type ProductColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product represents a catalog item owned by a seller. The seller id is
// nullable because catalogs created during the single-seller phase were
// not back-filled.
type Product struct {
	ID              string            `json:"id" db:"id"`
	SellerID        *string           `json:"sellerId,omitempty" db:"seller_id"`
	Name            string            `json:"name" db:"name"`
	Brand           string            `json:"brand" db:"brand"`
	Description     string            `json:"description" db:"description"`
	Category        string            `json:"category" db:"category"`
	Price           float64           `json:"price" db:"price"`
	MRP             *float64          `json:"mrp,omitempty" db:"mrp"`
	DiscountPercent float64           `json:"discountPercent" db:"discount_percent"`
	Stock           int               `json:"stock" db:"stock"`
	IsActive        bool              `json:"isActive" db:"is_active"`
	Sizes           []string          `json:"sizes" db:"sizes"`
	Colors          []ProductColor    `json:"colors" db:"colors"`
	Highlights      []string          `json:"highlights" db:"highlights"`
	Attributes      map[string]string `json:"attributes" db:"attributes"`
	Images          []string          `json:"images" db:"images"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}

// ProductInput represents data for creating or updating a product
type ProductInput struct {
	Name            string            `json:"name" validate:"required,min=2,max=200"`
	Brand           string            `json:"brand" validate:"max=100"`
	Description     string            `json:"description" validate:"max=5000"`
	Category        string            `json:"category" validate:"max=100"`
	Price           float64           `json:"price" validate:"gte=0"`
	MRP             *float64          `json:"mrp,omitempty"`
	DiscountPercent float64           `json:"discountPercent" validate:"gte=0,lte=100"`
	Stock           int               `json:"stock" validate:"gte=0"`
	IsActive        *bool             `json:"isActive,omitempty"`
	Sizes           []string          `json:"sizes"`
	Colors          []ProductColor    `json:"colors"`
	Highlights      []string          `json:"highlights"`
	Attributes      map[string]string `json:"attributes"`
	Images          []string          `json:"images"`
}

// SellingPrice derives the price written to the catalog. When an MRP is
// present the price is round(MRP x (1 - discount/100)) in whole currency
// units; otherwise the manually entered price is used unchanged. The
// stored value is never re-derived on read.
func SellingPrice(mrp *float64, discountPercent float64, manualPrice float64) float64 {
	if mrp == nil || *mrp <= 0 {
		return manualPrice
	}
	return math.Round(*mrp * (1 - discountPercent/100))
}

// PrimaryImage returns the first image URL, which the storefront treats
// as the product's cover image.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// OwnedBy checks whether the product belongs to the given seller.
func (p *Product) OwnedBy(sellerID string) bool {
	return p.SellerID != nil && *p.SellerID == sellerID
}

// GetSizesJSON returns sizes as JSON string for database storage
func (p *Product) GetSizesJSON() (string, error) {
	return marshalStringSlice(p.Sizes)
}

// SetSizesFromJSON sets sizes from JSON string
func (p *Product) SetSizesFromJSON(s string) error {
	return unmarshalStringSlice(s, &p.Sizes)
}

// GetColorsJSON returns colors as JSON string for database storage
func (p *Product) GetColorsJSON() (string, error) {
	if len(p.Colors) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(p.Colors)
	return string(data), err
}

// SetColorsFromJSON sets colors from JSON string
func (p *Product) SetColorsFromJSON(s string) error {
	if s == "" {
		p.Colors = []ProductColor{}
		return nil
	}
	return json.Unmarshal([]byte(s), &p.Colors)
}

// GetHighlightsJSON returns highlights as JSON string for database storage
func (p *Product) GetHighlightsJSON() (string, error) {
	return marshalStringSlice(p.Highlights)
}

// SetHighlightsFromJSON sets highlights from JSON string
func (p *Product) SetHighlightsFromJSON(s string) error {
	return unmarshalStringSlice(s, &p.Highlights)
}

// GetAttributesJSON returns the attribute map as JSON string for database storage
func (p *Product) GetAttributesJSON() (string, error) {
	if len(p.Attributes) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(p.Attributes)
	return string(data), err
}

// SetAttributesFromJSON sets the attribute map from JSON string
func (p *Product) SetAttributesFromJSON(s string) error {
	if s == "" {
		p.Attributes = map[string]string{}
		return nil
	}
	return json.Unmarshal([]byte(s), &p.Attributes)
}

// GetImagesJSON returns images as JSON string for database storage
func (p *Product) GetImagesJSON() (string, error) {
	return marshalStringSlice(p.Images)
}

// SetImagesFromJSON sets images from JSON string
func (p *Product) SetImagesFromJSON(s string) error {
	return unmarshalStringSlice(s, &p.Images)
}

func marshalStringSlice(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	return string(data), err
}

func unmarshalStringSlice(s string, dst *[]string) error {
	if s == "" {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal([]byte(s), dst)
}
