package usecase

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/gemvault/storefront/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pageLockStripes = 64

// PageServiceConfig holds configuration for the page service
type PageServiceConfig struct {
	PageTTL time.Duration
}

// PageService manages catalog page sessions: one session per page load,
// fetched once, then mutated by filter changes until closed or expired.
type PageService struct {
	repo     domain.PageRepository
	source   domain.ProductSource
	logger   *zap.Logger
	pageTTL  time.Duration
	observer FetchObserver
	newID    func() string

	// mutations of the same page are serialized within this process
	locks [pageLockStripes]sync.Mutex
}

// NewPageService creates a new page service with dependencies
func NewPageService(
	repo domain.PageRepository,
	source domain.ProductSource,
	logger *zap.Logger,
	config PageServiceConfig,
) *PageService {
	if logger == nil {
		logger = zap.NewNop()
	}

	pageTTL := config.PageTTL
	if pageTTL <= 0 {
		pageTTL = 30 * time.Minute
	}

	return &PageService{
		repo:    repo,
		source:  source,
		logger:  logger.Named("pages"),
		pageTTL: pageTTL,
		newID:   uuid.NewString,
	}
}

// SetFetchObserver registers a hook notified of every product fetch
func (s *PageService) SetFetchObserver(observer FetchObserver) {
	s.observer = observer
}

// Open starts a new page session: filters are the defaults with initial applied,
// the product list is fetched once, and the page is stored.
func (s *PageService) Open(ctx context.Context, initial domain.FilterUpdate) (*domain.PageView, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	page := s.newPage(s.newID(), domain.DefaultFilterState().Apply(initial))
	page.Load(ctx)

	if err := s.repo.Save(ctx, page.Snapshot(), s.pageTTL); err != nil {
		return nil, err
	}

	s.logger.Debug("page opened", zap.String("page_id", page.ID()))
	view := page.View()
	return &view, nil
}

// Get returns the current view of a page
func (s *PageService) Get(ctx context.Context, id string) (*domain.PageView, error) {
	page, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	view := page.View()
	return &view, nil
}

// Update applies a partial filter change to a page
func (s *PageService) Update(ctx context.Context, id string, update domain.FilterUpdate) (*domain.PageView, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(page *CatalogPage) {
		page.ApplyFilters(update)
	})
}

// Reset clears search, category and metal on a page, keeping its sort key
func (s *PageService) Reset(ctx context.Context, id string) (*domain.PageView, error) {
	return s.mutate(ctx, id, func(page *CatalogPage) {
		page.ResetFilters()
	})
}

// Close ends a page session
func (s *PageService) Close(ctx context.Context, id string) error {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("page closed", zap.String("page_id", id))
	return nil
}

func (s *PageService) mutate(ctx context.Context, id string, fn func(page *CatalogPage)) (*domain.PageView, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	page, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}

	fn(page)

	if err := s.repo.Save(ctx, page.Snapshot(), s.pageTTL); err != nil {
		return nil, err
	}

	view := page.View()
	return &view, nil
}

func (s *PageService) restore(ctx context.Context, id string) (*CatalogPage, error) {
	if id == "" {
		return nil, domain.ErrPageNotFound
	}
	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return RestoreCatalogPage(snapshot, s.logger), nil
}

func (s *PageService) newPage(id string, filters domain.FilterState) *CatalogPage {
	page := NewCatalogPage(id, s.source, filters, s.logger)
	page.SetFetchObserver(s.observer)
	return page
}

func (s *PageService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%pageLockStripes]
}
