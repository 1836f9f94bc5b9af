package messages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/toldya/internal/server/metrics"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/maypok86/otter/v2"
)

// CachedRepository is a read-through cache in front of another Repository.
// Records are immutable, so a cached entry can never go stale; only hits on
// existing records are cached, never misses or errors.
type CachedRepository struct {
	next  Repository
	cache *otter.Cache[string, models.Message]
}

// NewCachedRepository caches up to size records. A non-positive ttl keeps
// entries until they are evicted by size.
func NewCachedRepository(next Repository, size int, ttl time.Duration) *CachedRepository {
	opts := &otter.Options[string, models.Message]{MaximumSize: size}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryAccessing[string, models.Message](ttl)
	}
	return &CachedRepository{next: next, cache: otter.Must(opts)}
}

func (r *CachedRepository) Put(ctx context.Context, m *models.Message) error {
	if err := r.next.Put(ctx, m); err != nil {
		return err
	}
	r.cache.Set(m.ID, *m)
	return nil
}

func (r *CachedRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	if m, ok := r.cache.GetIfPresent(id); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &m, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	m, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(id, *m)
	return m, nil
}
