package domain

import "time"

// AllFilter is the sentinel meaning "no constraint" for the category and metal filters
const AllFilter = "all"

// EmptyMessage is shown when a page has no products to display
const EmptyMessage = "No jewelry found"

// SortKey selects the ordering of the catalog grid
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByRating  SortKey = "rating"
	SortByReviews SortKey = "reviews"
)

// Valid reports whether k is one of the supported sort keys
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByRating, SortByReviews:
		return true
	}
	return false
}

// FilterState holds the user-controlled parameters of a catalog page
type FilterState struct {
	SearchTerm string  `json:"searchTerm"`
	Category   string  `json:"selectedCategory"`
	Metal      string  `json:"selectedMetal"`
	SortBy     SortKey `json:"sortBy"`
}

// DefaultFilterState returns the filters a page starts with
func DefaultFilterState() FilterState {
	return FilterState{
		SearchTerm: "",
		Category:   AllFilter,
		Metal:      AllFilter,
		SortBy:     SortByName,
	}
}

// Apply returns a copy of f with every non-nil field of u applied
func (f FilterState) Apply(u FilterUpdate) FilterState {
	if u.SearchTerm != nil {
		f.SearchTerm = *u.SearchTerm
	}
	if u.Category != nil {
		f.Category = *u.Category
	}
	if u.Metal != nil {
		f.Metal = *u.Metal
	}
	if u.SortBy != nil {
		f.SortBy = *u.SortBy
	}
	return f
}

// FilterUpdate is a partial change to a FilterState; nil fields are left untouched
type FilterUpdate struct {
	SearchTerm *string  `json:"searchTerm,omitempty"`
	Category   *string  `json:"selectedCategory,omitempty"`
	Metal      *string  `json:"selectedMetal,omitempty"`
	SortBy     *SortKey `json:"sortBy,omitempty"`
}

// Validate rejects updates that could never come from the storefront controls
func (u FilterUpdate) Validate() error {
	if u.SortBy != nil && !u.SortBy.Valid() {
		return ErrInvalidRequest
	}
	if u.Category != nil && *u.Category == "" {
		return ErrInvalidRequest
	}
	if u.Metal != nil && *u.Metal == "" {
		return ErrInvalidRequest
	}
	return nil
}

// PageSnapshot is the persisted state of one catalog page session
type PageSnapshot struct {
	ID        string      `json:"id"`
	Products  []Product   `json:"products"`
	Filters   FilterState `json:"filters"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CategoryShortcut is one entry of the category navigation
type CategoryShortcut struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// PageView is everything needed to render a catalog page
type PageView struct {
	ID           string             `json:"id,omitempty"`
	Filters      FilterState        `json:"filters"`
	Categories   []CategoryShortcut `json:"categories"`
	Products     []ProductCard      `json:"products"`
	Total        int                `json:"total"`
	Count        int                `json:"count"`
	Empty        bool               `json:"empty"`
	EmptyMessage string             `json:"emptyMessage,omitempty"`
}
