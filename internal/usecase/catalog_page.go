package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/gemvault/storefront/internal/domain"
	"go.uber.org/zap"
)

// FetchObserver is notified of every product fetch outcome; err is nil on success
type FetchObserver func(err error)

// CatalogPage is the state of one storefront page: the unfiltered product
// list, the user's filters and the derived list that is displayed.
// Every mutator recomputes the derived list before returning.
type CatalogPage struct {
	id        string
	source    domain.ProductSource
	logger    *zap.Logger
	observer  FetchObserver
	createdAt time.Time

	loadOnce sync.Once

	mu       sync.Mutex
	products []domain.Product
	filters  domain.FilterState
	visible  []domain.Product
}

// NewCatalogPage creates a page with the given filters and an empty product list.
// Products arrive once Load is called.
func NewCatalogPage(id string, source domain.ProductSource, filters domain.FilterState, logger *zap.Logger) *CatalogPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &CatalogPage{
		id:        id,
		source:    source,
		logger:    logger,
		createdAt: time.Now(),
		products:  []domain.Product{},
		filters:   filters,
	}
	p.recompute()
	return p
}

// RestoreCatalogPage rebuilds a loaded page from a snapshot. Load is a no-op on the result.
func RestoreCatalogPage(snapshot *domain.PageSnapshot, logger *zap.Logger) *CatalogPage {
	p := NewCatalogPage(snapshot.ID, nil, snapshot.Filters, logger)
	p.createdAt = snapshot.CreatedAt
	if snapshot.Products != nil {
		p.products = snapshot.Products
	}
	p.loadOnce.Do(func() {})
	p.recompute()
	return p
}

// SetFetchObserver registers a hook called with the outcome of Load's fetch
func (p *CatalogPage) SetFetchObserver(observer FetchObserver) {
	p.observer = observer
}

// ID returns the page identifier
func (p *CatalogPage) ID() string {
	return p.id
}

// Load fetches the product list. Only the first call does any work.
// A failed fetch leaves the page with an empty catalog; the error is logged, not returned.
func (p *CatalogPage) Load(ctx context.Context) {
	p.loadOnce.Do(func() {
		if p.source == nil {
			return
		}

		products, err := p.source.ListProducts(ctx)
		if p.observer != nil {
			p.observer(err)
		}
		if err != nil {
			p.logger.Warn("product fetch failed, showing empty catalog",
				zap.String("page_id", p.id),
				zap.Error(err),
			)
			products = []domain.Product{}
		}
		if products == nil {
			products = []domain.Product{}
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		p.products = products
		p.recompute()
	})
}

// SetSearchTerm sets the free-text search term
func (p *CatalogPage) SetSearchTerm(term string) {
	p.ApplyFilters(domain.FilterUpdate{SearchTerm: &term})
}

// SelectCategory sets the category filter; "all" removes the constraint
func (p *CatalogPage) SelectCategory(category string) {
	p.ApplyFilters(domain.FilterUpdate{Category: &category})
}

// SelectMetal sets the metal filter; "all" removes the constraint
func (p *CatalogPage) SelectMetal(metal string) {
	p.ApplyFilters(domain.FilterUpdate{Metal: &metal})
}

// SetSortBy sets the sort key
func (p *CatalogPage) SetSortBy(key domain.SortKey) {
	p.ApplyFilters(domain.FilterUpdate{SortBy: &key})
}

// ApplyFilters applies a partial filter update and recomputes once
func (p *CatalogPage) ApplyFilters(update domain.FilterUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters = p.filters.Apply(update)
	p.recompute()
}

// ResetFilters clears search, category and metal. The sort key is kept.
func (p *CatalogPage) ResetFilters() {
	p.mu.Lock()
	defer p.mu.Unlock()
	defaults := domain.DefaultFilterState()
	p.filters.SearchTerm = defaults.SearchTerm
	p.filters.Category = defaults.Category
	p.filters.Metal = defaults.Metal
	p.recompute()
}

// Filters returns the current filter state
func (p *CatalogPage) Filters() domain.FilterState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// Visible returns a copy of the filtered, ordered product list
func (p *CatalogPage) Visible() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Product, len(p.visible))
	copy(out, p.visible)
	return out
}

// Snapshot captures the page for storage
func (p *CatalogPage) Snapshot() *domain.PageSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &domain.PageSnapshot{
		ID:        p.id,
		Products:  p.products,
		Filters:   p.filters,
		CreatedAt: p.createdAt,
	}
}

// View builds the render model for the page
func (p *CatalogPage) View() domain.PageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	cards := make([]domain.ProductCard, 0, len(p.visible))
	for _, product := range p.visible {
		cards = append(cards, domain.NewProductCard(product))
	}

	view := domain.PageView{
		ID:         p.id,
		Filters:    p.filters,
		Categories: categoryShortcuts(p.filters.Category),
		Products:   cards,
		Total:      len(p.products),
		Count:      len(cards),
		Empty:      len(cards) == 0,
	}
	if view.Empty {
		view.EmptyMessage = domain.EmptyMessage
	}
	return view
}

// recompute rebuilds the derived list. Callers must hold mu, except during construction.
func (p *CatalogPage) recompute() {
	p.visible = Compute(p.products, p.filters)
}

// categoryShortcuts builds the fixed category navigation, marking the selected entry
func categoryShortcuts(selected string) []domain.CategoryShortcut {
	shortcuts := make([]domain.CategoryShortcut, 0, len(domain.Categories)+1)
	shortcuts = append(shortcuts, domain.CategoryShortcut{
		Label:  "All",
		Value:  domain.AllFilter,
		Href:   domain.CatalogURL(domain.AllFilter),
		Active: selected == domain.AllFilter,
	})
	for _, category := range domain.Categories {
		shortcuts = append(shortcuts, domain.CategoryShortcut{
			Label:  category,
			Value:  category,
			Href:   domain.CatalogURL(category),
			Active: selected == category,
		})
	}
	return shortcuts
}
