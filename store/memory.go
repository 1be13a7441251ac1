package store

import (
	"context"
	"sort"
	"sync"

	"speed-camera-registry/be/models"
)

// MemoryStore keeps cameras in a map guarded by a single RWMutex. Writers
// hold the write lock across the duplicate check and the mutation.
type MemoryStore struct {
	mu      sync.RWMutex
	cameras map[uint]models.Camera
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cameras: make(map[uint]models.Camera),
		nextID:  1,
	}
}

func (s *MemoryStore) Create(_ context.Context, c models.Camera) (models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = 0
	if _, dup := FindDuplicate(c, s.peers(c.Zipcode)); dup {
		return models.Camera{}, &DuplicateError{Camera: c}
	}

	c.ID = s.nextID
	s.nextID++
	s.cameras[c.ID] = c
	return c, nil
}

func (s *MemoryStore) Get(_ context.Context, id uint) (models.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cameras[id]
	if !ok {
		return models.Camera{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) Update(_ context.Context, id uint, patch models.CameraPatch) (models.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.cameras[id]
	if !ok {
		return models.Camera{}, ErrNotFound
	}

	merged := patch.Apply(current)
	if _, dup := FindDuplicate(merged, s.peers(merged.Zipcode)); dup {
		return models.Camera{}, &DuplicateError{Camera: merged}
	}

	s.cameras[id] = merged
	return merged, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cameras[id]; !ok {
		return ErrNotFound
	}
	delete(s.cameras, id)
	return nil
}

func (s *MemoryStore) Scan(_ context.Context) ([]models.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Camera, 0, len(s.cameras))
	for _, c := range s.cameras {
		out = append(out, c)
	}
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) ListByZipcode(_ context.Context, zipcode string) ([]models.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.peers(zipcode)
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// peers returns the cameras sharing zipcode. Callers must hold s.mu.
func (s *MemoryStore) peers(zipcode string) []models.Camera {
	out := []models.Camera{}
	for _, c := range s.cameras {
		if c.Zipcode == zipcode {
			out = append(out, c)
		}
	}
	return out
}

func sortByID(cs []models.Camera) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
}
