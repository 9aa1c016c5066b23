package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timbermart/backend/internal/domain/catalog"
)

// SpecsPayload mirrors catalog.Specs on the wire
type SpecsPayload struct {
	Density string `json:"density,omitempty"`
	Origin  string `json:"origin,omitempty"`
	Grade   string `json:"grade,omitempty"`
}

func (p SpecsPayload) toDomain() catalog.Specs {
	return catalog.Specs{Density: p.Density, Origin: p.Origin, Grade: p.Grade}
}

// CreateProductRequest is the payload for creating a product. The domain
// validation is what enumerates failing fields; no binding tags here so the
// request always reaches it and the error lists every problem at once.
// Price is a pointer so an absent field stays nil instead of decoding to a
// valid zero price.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Brand       string           `json:"brand"`
	Price       *decimal.Decimal `json:"price"`
	Unit        string           `json:"unit"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Tags        []string         `json:"tags"`
	Specs       SpecsPayload     `json:"specs"`
}

// UpdateProductRequest is the payload for partially updating a product.
// Absent fields keep their stored values; a present specs object replaces
// the stored specs wholesale.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Brand       *string          `json:"brand"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Tags        *[]string        `json:"tags"`
	Specs       *SpecsPayload    `json:"specs"`
}

func (r UpdateProductRequest) toPatch() catalog.Patch {
	patch := catalog.Patch{
		Name:        r.Name,
		Category:    r.Category,
		Brand:       r.Brand,
		Price:       r.Price,
		Unit:        r.Unit,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Tags:        r.Tags,
	}
	if r.Specs != nil {
		specs := r.Specs.toDomain()
		patch.Specs = &specs
	}
	return patch
}

// ProductResponse is the product representation returned to clients
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
	Specs       SpecsPayload    `json:"specs"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to a ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       p.Price,
		Unit:        p.Unit,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Tags:        tags,
		Specs:       SpecsPayload{Density: p.Specs.Density, Origin: p.Specs.Origin, Grade: p.Specs.Grade},
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a list of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
