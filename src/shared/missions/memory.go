package missions

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

// Memory is an in-memory Store for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	records map[string]core.MissionRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]core.MissionRecord)}
}

// Put inserts or replaces a record.
func (s *Memory) Put(rec core.MissionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
}

func (s *Memory) GetMission(_ context.Context, id string) (core.MissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return core.MissionRecord{}, fmt.Errorf("%w: mission %s", core.ErrNotFound, id)
	}
	return rec, nil
}

func (s *Memory) ListMissions(_ context.Context, f Filter) ([]core.MissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.MissionRecord
	for _, rec := range s.records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
