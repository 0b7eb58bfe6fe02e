package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gemvault/storefront/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serviceName    = "storefront"
	serviceVersion = "1.0.0"
)

// PageManager is the page session API the handlers depend on
type PageManager interface {
	Open(ctx context.Context, initial domain.FilterUpdate) (*domain.PageView, error)
	Get(ctx context.Context, id string) (*domain.PageView, error)
	Update(ctx context.Context, id string, update domain.FilterUpdate) (*domain.PageView, error)
	Reset(ctx context.Context, id string) (*domain.PageView, error)
	Close(ctx context.Context, id string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pages  PageManager
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil PageManager makes catalog
// endpoints answer 501.
func NewHandler(pages PageManager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pages:  pages,
		logger: logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// OpenPage starts a page session. The body is an optional partial filter state.
func (h *Handler) OpenPage(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	// An absent body, chunked or not, means no initial filters
	var initial domain.FilterUpdate
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&initial); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	view, err := h.pages.Open(c.Request.Context(), initial)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetPage returns the current view of a page
func (h *Handler) GetPage(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	view, err := h.pages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateFilters applies a partial filter update to a page
func (h *Handler) UpdateFilters(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var update domain.FilterUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	view, err := h.pages.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ResetFilters clears search, category and metal on a page
func (h *Handler) ResetFilters(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	view, err := h.pages.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClosePage ends a page session
func (h *Handler) ClosePage(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	if err := h.pages.Close(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.pages == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "catalog service not configured",
		})
		return false
	}
	return true
}

// writeError maps domain errors to HTTP responses
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionStoreUnavailable):
		h.logger.Error("session store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
