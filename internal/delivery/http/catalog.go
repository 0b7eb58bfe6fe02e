package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gemvault/storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// catalogTemplate is the template name used for the storefront page
const catalogTemplate = "catalog.html"

// pageCookie carries the page session id of a browser's storefront page
const pageCookie = "storefront_page"

// loadTemplates parses the embedded page templates
func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"resetURL":  resetURL,
		"sameMetal": strings.EqualFold,
	}).ParseFS(templateFS, "templates/*.html"))
}

// resetURL is the target of the "clear filters" control: search, category
// and metal go back to their defaults, the sort key is carried over.
func resetURL(sortBy domain.SortKey) string {
	if sortBy == "" || sortBy == domain.SortByName {
		return domain.CatalogPath
	}
	return domain.CatalogPath + "?" + url.Values{"sort": {string(sortBy)}}.Encode()
}

// CatalogPage renders the storefront page. The first request opens a page
// session and stores its id in a cookie; later requests apply the query's
// filters to that session, so the product list is fetched once per page.
// Query parameters: q, category, metal, sort. The :category path segment,
// when present, selects the category.
func (h *Handler) CatalogPage(c *gin.Context) {
	if h.pages == nil {
		c.String(http.StatusNotImplemented, "catalog service not configured")
		return
	}

	ctx := c.Request.Context()
	update := filterUpdate(filtersFromQuery(c))

	var (
		view *domain.PageView
		err  error
	)
	if id, cookieErr := c.Cookie(pageCookie); cookieErr == nil && id != "" {
		view, err = h.pages.Update(ctx, id, update)
	} else {
		err = domain.ErrPageNotFound
	}

	if errors.Is(err, domain.ErrPageNotFound) {
		view, err = h.pages.Open(ctx, update)
		if err == nil {
			h.logger.Debug("catalog page opened", zap.String("page_id", view.ID))
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(pageCookie, view.ID, 0, domain.CatalogPath, "", false, true)
		}
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.HTML(http.StatusOK, catalogTemplate, gin.H{
		"View":     view,
		"Metals":   metalOptions(view.Filters.Metal),
		"SortKeys": []domain.SortKey{domain.SortByName, domain.SortByRating, domain.SortByReviews},
	})
}

// defaultMetals are offered by the metal selector; filtering itself accepts any value
var defaultMetals = []string{"Gold", "Silver", "Platinum", "Rose Gold", "White Gold"}

// metalOptions lists the selector's metals, adding the current filter when
// no option matches it so the form resubmits it unchanged
func metalOptions(current string) []string {
	if current == domain.AllFilter {
		return defaultMetals
	}
	for _, metal := range defaultMetals {
		if strings.EqualFold(metal, current) {
			return defaultMetals
		}
	}
	options := make([]string, 0, len(defaultMetals)+1)
	options = append(options, defaultMetals...)
	return append(options, current)
}

// filtersFromQuery reads the complete filter state submitted by the page.
// Missing parameters take their defaults and an unknown sort key falls back to name.
func filtersFromQuery(c *gin.Context) domain.FilterState {
	filters := domain.DefaultFilterState()
	filters.SearchTerm = c.Query("q")
	if category := c.Param("category"); category != "" {
		filters.Category = category
	} else if category := c.Query("category"); category != "" {
		filters.Category = category
	}
	if metal := c.Query("metal"); metal != "" {
		filters.Metal = metal
	}
	if sortBy := domain.SortKey(c.Query("sort")); sortBy.Valid() {
		filters.SortBy = sortBy
	}
	return filters
}

// filterUpdate sets every field of a page to f
func filterUpdate(f domain.FilterState) domain.FilterUpdate {
	return domain.FilterUpdate{
		SearchTerm: &f.SearchTerm,
		Category:   &f.Category,
		Metal:      &f.Metal,
		SortBy:     &f.SortBy,
	}
}
