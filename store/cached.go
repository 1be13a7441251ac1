package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"speed-camera-registry/be/models"
)

// Cache is the key/value surface CachedStore needs. Get reports a miss with
// found == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheObserver is notified of zipcode cache lookups.
type CacheObserver interface {
	CacheLookup(hit bool)
}

// CachedStore caches ListByZipcode results and invalidates them on every
// successful write touching that zipcode. Cache errors never fail a request.
//
// Each zipcode has a generation that invalidation bumps. A miss only fills
// the cache if the generation it read before loading is still current, so a
// snapshot taken before a concurrent write is never cached after it.
type CachedStore struct {
	Store
	cache    Cache
	ttl      time.Duration
	observer CacheObserver
	logger   *slog.Logger

	// mu orders fills against invalidations.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewCachedStore(inner Store, cache Cache, ttl time.Duration, observer CacheObserver, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		Store:    inner,
		cache:    cache,
		ttl:      ttl,
		observer: observer,
		logger:   logger,

		generations: make(map[string]uint64),
	}
}

func zipcodeKey(zipcode string) string {
	return "cameras:zipcode:" + zipcode
}

func (s *CachedStore) ListByZipcode(ctx context.Context, zipcode string) ([]models.Camera, error) {
	key := zipcodeKey(zipcode)

	var cached []models.Camera
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}
	if found && cached != nil {
		s.observe(true)
		return cached, nil
	}
	s.observe(false)

	gen := s.generation(zipcode)
	cameras, err := s.Store.ListByZipcode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, zipcode, gen, cameras)
	return cameras, nil
}

func (s *CachedStore) generation(zipcode string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[zipcode]
}

// fill caches cameras unless zipcode was invalidated after gen was read.
func (s *CachedStore) fill(ctx context.Context, zipcode string, gen uint64, cameras []models.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := zipcodeKey(zipcode)
	if s.generations[zipcode] != gen {
		s.logger.Debug("skipping stale cache fill", "key", key)
		return
	}
	if err := s.cache.Set(ctx, key, cameras, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *CachedStore) Create(ctx context.Context, c models.Camera) (models.Camera, error) {
	created, err := s.Store.Create(ctx, c)
	if err != nil {
		return created, err
	}
	s.invalidate(ctx, created.Zipcode)
	return created, nil
}

func (s *CachedStore) Update(ctx context.Context, id uint, patch models.CameraPatch) (models.Camera, error) {
	zipcodes := []string{}
	if patch.Zipcode != nil {
		// The old zipcode's entry goes stale when a camera moves away.
		if before, err := s.Store.Get(ctx, id); err == nil {
			zipcodes = append(zipcodes, before.Zipcode)
		}
	}

	updated, err := s.Store.Update(ctx, id, patch)
	if err != nil {
		return updated, err
	}
	s.invalidate(ctx, append(zipcodes, updated.Zipcode)...)
	return updated, nil
}

func (s *CachedStore) Delete(ctx context.Context, id uint) error {
	before, getErr := s.Store.Get(ctx, id)
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if getErr == nil {
		s.invalidate(ctx, before.Zipcode)
	}
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, zipcodes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(zipcodes))
	for _, z := range zipcodes {
		s.generations[z]++
		keys = append(keys, zipcodeKey(z))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

func (s *CachedStore) observe(hit bool) {
	if s.observer != nil {
		s.observer.CacheLookup(hit)
	}
}
