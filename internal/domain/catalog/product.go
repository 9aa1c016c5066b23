package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/timbermart/backend/internal/domain/shared"
)

// MinNameLength is the minimum length for a product name
const MinNameLength = 3

// TagList stores an unordered set of free-form tags as a JSON array column
type TagList []string

// Value implements driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (t *TagList) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list column type %T", value)
	}
}

// Specs holds the optional structured attributes of a timber product.
// It is replaced wholesale on update, never merged field by field.
type Specs struct {
	Density string `gorm:"type:varchar(100)" json:"density,omitempty"`
	Origin  string `gorm:"type:varchar(100)" json:"origin,omitempty"`
	Grade   string `gorm:"type:varchar(100)" json:"grade,omitempty"`
}

// IsZero reports whether no spec field is set
func (s Specs) IsZero() bool {
	return s == Specs{}
}

// Product represents a catalog item. It is the aggregate root for all
// catalog mutations; every required field is validated before the record
// becomes visible in the store.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Brand       string          `gorm:"type:varchar(100);index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20);not null"` // Pricing unit label (e.g. "sq ft")
	Description string          `gorm:"type:text;not null"`
	ImageURL    string          `gorm:"type:text;not null"`
	Tags        TagList         `gorm:"type:jsonb"`
	Specs       Specs           `gorm:"embedded;embeddedPrefix:spec_"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product, validating every required field at once.
// Price is a pointer because a decoded request cannot distinguish an absent
// price from zero; nil means the caller never supplied one. No partial
// record is ever produced: on failure the returned error enumerates all
// failing fields and the product is nil.
func NewProduct(name, category, brand string, price *decimal.Decimal, unit, description, imageURL string, tags []string, specs Specs) (*Product, error) {
	product := Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Brand:             brand,
		Price:             decimal.Zero,
		Unit:              unit,
		Description:       description,
		ImageURL:          imageURL,
		Tags:              tags,
		Specs:             specs,
	}

	var b shared.ValidationBuilder
	if price == nil {
		b.Add("price", "price is required")
	} else {
		product.Price = *price
	}
	product.appendViolations(&b)
	if err := b.Err(); err != nil {
		return nil, err
	}

	return &product, nil
}

// Patch holds optional replacement values for mutable product fields.
// A nil field leaves the current value untouched; a provided Specs value
// replaces the entire sub-record.
type Patch struct {
	Name        *string
	Category    *string
	Brand       *string
	Price       *decimal.Decimal
	Unit        *string
	Description *string
	ImageURL    *string
	Tags        *[]string
	Specs       *Specs
}

// ApplyPatch merges the patch onto the product and re-validates the merged
// result. The product is left unchanged when validation fails.
func (p *Product) ApplyPatch(patch Patch) error {
	merged := *p

	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Brand != nil {
		merged.Brand = *patch.Brand
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Unit != nil {
		merged.Unit = *patch.Unit
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		merged.ImageURL = *patch.ImageURL
	}
	if patch.Tags != nil {
		merged.Tags = *patch.Tags
	}
	if patch.Specs != nil {
		merged.Specs = *patch.Specs
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	*p = merged
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Validate checks every required-field rule and reports all violations
func (p *Product) Validate() error {
	var b shared.ValidationBuilder
	p.appendViolations(&b)
	return b.Err()
}

func (p *Product) appendViolations(b *shared.ValidationBuilder) {
	switch {
	case p.Name == "":
		b.Add("name", "name is required")
	case len(p.Name) < MinNameLength:
		b.Add("name", fmt.Sprintf("name must be at least %d characters", MinNameLength))
	case len(p.Name) > 200:
		b.Add("name", "name cannot exceed 200 characters")
	}

	if p.Category == "" {
		b.Add("category", "category is required")
	}
	if p.Price.IsNegative() {
		b.Add("price", "price cannot be negative")
	}
	switch {
	case p.Unit == "":
		b.Add("unit", "unit is required")
	case len(p.Unit) > 20:
		b.Add("unit", "unit cannot exceed 20 characters")
	}
	if p.Description == "" {
		b.Add("description", "description is required")
	}
	if p.ImageURL == "" {
		b.Add("imageUrl", "image URL is required")
	}
}
