package db

import (
	"context"
	"sort"
	"sync"

	"archiplan/internal/types"
)

type memoryEntry struct {
	snapshot []byte
	summary  types.ProjectSummary
	version  int64
}

// MemoryStore is an in-process ProjectStore used when no database is
// configured. Projects are held as compressed snapshots, so callers never
// share state with the store or with each other.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]memoryEntry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]memoryEntry)}
}

var _ types.ProjectStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	e, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, types.ErrProjectNotFound(id)
	}

	var p types.Project
	if err := decodeSnapshot(e.snapshot, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MemoryStore) Put(_ context.Context, p *types.Project) error {
	next := *p
	next.Version = p.Version + 1
	snapshot, err := encodeSnapshot(&next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int64
	if e, ok := s.projects[p.ID]; ok {
		stored = e.version
	}
	if stored != p.Version {
		return types.ErrConcurrentModification(p.ID, p.Version)
	}
	s.projects[p.ID] = memoryEntry{snapshot: snapshot, summary: next.Summary(), version: next.Version}
	p.Version = next.Version
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return types.ErrProjectNotFound(id)
	}
	delete(s.projects, id)
	return nil
}

// List returns summaries ordered like ProjectRepository.List.
func (s *MemoryStore) List(_ context.Context, limit int) ([]types.ProjectSummary, error) {
	s.mu.RLock()
	out := make([]types.ProjectSummary, 0, len(s.projects))
	for _, e := range s.projects {
		out = append(out, e.summary)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
