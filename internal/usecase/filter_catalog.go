package usecase

import (
	"context"
	"time"

	"github.com/lookalike/web/internal/domain"
	"github.com/lookalike/web/internal/infrastructure/metrics"
	"github.com/sirupsen/logrus"
)

const filterOptionsCacheKey = "filters:options"

// FilterCatalog serves filter options, keeping the backend's answer in the
// cache for a while. Failed loads are never cached.
type FilterCatalog struct {
	cache  domain.CacheRepository
	client domain.MatchClient
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewFilterCatalog creates a catalog. A ttl <= 0 disables caching.
func NewFilterCatalog(cache domain.CacheRepository, client domain.MatchClient, ttl time.Duration, logger logrus.FieldLogger) *FilterCatalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FilterCatalog{
		cache:  cache,
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "filters"),
	}
}

// FilterOptions returns cached options or fetches them from the backend
func (f *FilterCatalog) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	if f.ttl > 0 {
		if value, err := f.cache.Get(ctx, filterOptionsCacheKey); err == nil {
			if options, ok := value.(*domain.FilterOptions); ok {
				metrics.FilterLoadsTotal.WithLabelValues("cache", "ok").Inc()
				return options, nil
			}
		}
	}

	options, err := f.client.FetchFilters(ctx)
	if err != nil {
		metrics.FilterLoadsTotal.WithLabelValues("backend", "error").Inc()
		return nil, err
	}
	metrics.FilterLoadsTotal.WithLabelValues("backend", "ok").Inc()

	if f.ttl > 0 {
		if err := f.cache.Set(ctx, filterOptionsCacheKey, options, f.ttl); err != nil {
			f.logger.WithError(err).Warn("failed to cache filter options")
		}
	}
	return options, nil
}
