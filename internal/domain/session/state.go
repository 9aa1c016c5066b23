package session

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot captures the catalog fields a shopper sees in the cart or
// favorites list. It is copied at add time; later catalog edits do not
// rewrite entries already held in a session.
type ProductSnapshot struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Brand     string          `json:"brand,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	ImageURL  string          `json:"image_url"`
}

// Cart is the ordered list of items a shopper intends to buy. Adding the
// same product twice yields two entries; quantity is expressed by
// repetition, not by a count field.
type Cart []ProductSnapshot

// Add appends the snapshot unconditionally. The receiver's backing array is
// never written, so states derived from the same base cannot alias.
func (c Cart) Add(item ProductSnapshot) Cart {
	return append(c[:len(c):len(c)], item)
}

// Remove drops every entry for the given product, not just the first one
func (c Cart) Remove(productID uuid.UUID) Cart {
	kept := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}

// Total sums the prices of all entries
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Price)
	}
	return total
}

// Favorites is the insertion-ordered set of products a shopper has marked.
// Each product appears at most once.
type Favorites []ProductSnapshot

// Contains reports whether the product is currently marked
func (f Favorites) Contains(productID uuid.UUID) bool {
	for _, item := range f {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Toggle marks the product when absent and unmarks it when present, so
// toggling twice always restores the original list.
func (f Favorites) Toggle(item ProductSnapshot) Favorites {
	for i, existing := range f {
		if existing.ProductID == item.ProductID {
			return append(f[:i:i], f[i+1:]...)
		}
	}
	return append(f[:len(f):len(f)], item)
}

// State is the complete per-session shopper state. It serializes as a
// single JSON document so a session store can persist it as one blob.
type State struct {
	Cart      Cart      `json:"cart"`
	Favorites Favorites `json:"favorites"`
}

// NewState returns an empty session state
func NewState() *State {
	return &State{Cart: Cart{}, Favorites: Favorites{}}
}
