package domain

import "context"

// FoodProvider is the adapter contract both external databases satisfy.
// Search returns canonical items in the provider's own relevance order.
// Misses from LookupByID are reported as ErrNotFound, not nil results.
type FoodProvider interface {
	Search(ctx context.Context, query string) ([]CanonicalFoodItem, error)
	LookupByID(ctx context.Context, id string) (*CanonicalFoodItem, error)
	Configured() bool
}

// BrandedProvider extends FoodProvider with barcode lookup and product
// upload, which only the branded database supports
type BrandedProvider interface {
	FoodProvider
	LookupBarcode(ctx context.Context, barcode string) (*CanonicalFoodItem, error)
	Upload(ctx context.Context, upload ProductUpload) error
	CanUpload() bool
}

// CacheRepository defines the interface for caching operations.
// Each instance carries a fixed TTL chosen at construction; Get on an
// expired entry returns ErrCacheMiss.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}) error
	Size() int
	Clear()
}
