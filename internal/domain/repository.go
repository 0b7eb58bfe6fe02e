package domain

import (
	"context"
	"time"
)

// ProductSource defines the interface for reading the full product list
type ProductSource interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// PageRepository defines the interface for storing page session snapshots
type PageRepository interface {
	Get(ctx context.Context, id string) (*PageSnapshot, error)
	Save(ctx context.Context, snapshot *PageSnapshot, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
