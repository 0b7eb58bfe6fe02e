package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gemvault/storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameLocale is the collation locale for name ordering
var nameLocale = language.English

// Compute filters and orders products for the given filter state.
//
// Steps, in order: search term (case-insensitive substring of name, category
// or description), exact category, case-insensitive metal, then a stable sort.
// Only the literal "all" disables the category and metal filters.
// The input slice is never modified; the result is always a new, non-nil slice.
func Compute(products []domain.Product, filters domain.FilterState) []domain.Product {
	term := strings.ToLower(filters.SearchTerm)
	metal := strings.ToLower(filters.Metal)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if filters.Category != domain.AllFilter && p.Category != filters.Category {
			continue
		}
		if filters.Metal != domain.AllFilter && strings.ToLower(p.Metal) != metal {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, filters.SortBy)
	return result
}

// matchesSearch reports whether any searchable field contains the lower-cased term
func matchesSearch(p domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// sortProducts orders products in place. Unknown keys sort by name.
func sortProducts(products []domain.Product, sortBy domain.SortKey) {
	switch sortBy {
	case domain.SortByRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortByReviews:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Reviews, a.Reviews)
		})
	default:
		// Collators keep per-instance buffers, so each sort gets its own
		collator := collate.New(nameLocale)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return collator.CompareString(a.Name, b.Name)
		})
	}
}
