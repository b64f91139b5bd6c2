package listings

import (
	"time"

	"github.com/google/uuid"
)

// Listing is one leasable commercial space.
type Listing struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	Locality            string    `json:"locality,omitempty"`
	Size                float64   `json:"size"`  // square feet
	Price               float64   `json:"price"` // monthly rent, rupees
	PropertyType        string    `json:"property_type"`
	Parking             bool      `json:"parking"`
	IsFeatured          bool      `json:"is_featured"`
	SecurityDeposit     float64   `json:"security_deposit"`
	Footfall            float64   `json:"footfall,omitempty"` // estimated daily
	Infrastructure      []string  `json:"infrastructure,omitempty"`
	CompetitorCount     int       `json:"competitor_count,omitempty"`
	PreferredCategories []string  `json:"preferred_categories,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// SearchFilter narrows candidate listings. Zero values mean "no constraint".
type SearchFilter struct {
	City         string  `json:"city,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	MinPrice     float64 `json:"min_price,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
	MinSize      float64 `json:"min_size,omitempty"`
	MaxSize      float64 `json:"max_size,omitempty"`
}

// CreateListingRequest is used by the API to add a listing.
type CreateListingRequest struct {
	Title               string   `json:"title" validate:"required,min=1"`
	Address             string   `json:"address" validate:"required,min=1"`
	City                string   `json:"city" validate:"required,min=1"`
	Locality            string   `json:"locality,omitempty"`
	Size                float64  `json:"size" validate:"required,gt=0"`
	Price               float64  `json:"price" validate:"required,gt=0"`
	PropertyType        string   `json:"property_type" validate:"required,min=1"`
	Parking             bool     `json:"parking"`
	IsFeatured          bool     `json:"is_featured"`
	SecurityDeposit     float64  `json:"security_deposit" validate:"gte=0"`
	Footfall            float64  `json:"footfall" validate:"gte=0"`
	Infrastructure      []string `json:"infrastructure,omitempty"`
	CompetitorCount     int      `json:"competitor_count" validate:"gte=0"`
	PreferredCategories []string `json:"preferred_categories,omitempty"`
}
