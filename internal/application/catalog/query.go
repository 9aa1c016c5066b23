package catalog

import (
	"sort"
	"strings"

	"github.com/timbermart/backend/internal/domain/catalog"
)

// Sort keys accepted by ListCriteria. Anything else falls back to the
// store's insertion order.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// AllCategories is the sentinel value that disables category filtering.
// An empty string means the same thing.
const AllCategories = "All"

// ListCriteria captures the storefront's browse controls. All fields are
// optional; the zero value returns the full catalog in insertion order.
type ListCriteria struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

// ApplyCriteria filters, searches, and sorts the product list in that fixed
// order. The input slice is never modified; the result is a fresh slice.
func ApplyCriteria(products []catalog.Product, criteria ListCriteria) []catalog.Product {
	result := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, criteria) && matchesSearch(p, criteria.Search) {
			result = append(result, p)
		}
	}

	sortProducts(result, criteria.Sort)
	return result
}

func matchesFilter(p catalog.Product, criteria ListCriteria) bool {
	if criteria.Category != "" && criteria.Category != AllCategories && p.Category != criteria.Category {
		return false
	}
	if criteria.Brand != "" && criteria.Brand != AllCategories && p.Brand != criteria.Brand {
		return false
	}
	return true
}

// matchesSearch matches the term case-insensitively against name, brand, or
// category. A product matches when any one of the three contains the term.
func matchesSearch(p catalog.Product, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

// sortProducts orders the slice in place. The sort is stable so products
// that compare equal keep their relative insertion order.
func sortProducts(products []catalog.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Name < products[i].Name
		})
	default:
		// Unknown or empty key keeps the insertion order
	}
}

// Categories returns the distinct category names in first-seen order,
// prefixed with the AllCategories sentinel for filter menus.
func Categories(products []catalog.Product) []string {
	categories := []string{AllCategories}
	seen := make(map[string]bool)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
