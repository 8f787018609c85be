package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// MatchClient defines the interface for interacting with the remote matching service
type MatchClient interface {
	FetchFilters(ctx context.Context) (*FilterOptions, error)
	Match(ctx context.Context, req *MatchRequest) (*MatchResponse, error)
}

// FilterSource provides the filter options shown in the search form
type FilterSource interface {
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}
