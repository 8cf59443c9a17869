package submission

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*memoryDoc
}

type memoryDoc struct {
	payload map[string]any
	meta    Meta
}

// NewMemoryStore creates an empty in-memory submission store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*memoryDoc)}
}

func (s *MemoryStore) Insert(ctx context.Context, payload map[string]any, meta Meta) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clone the payload so later caller mutations don't leak into the store.
	cloned := make(map[string]any, len(payload))
	for k, v := range payload {
		cloned[k] = v
	}

	id := uuid.NewString()
	s.docs[id] = &memoryDoc{payload: cloned, meta: meta}
	return id, nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, id string, status Status, errMsg string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("%w: id %s to status %q", ErrStatusNotUpdated, id, status)
	}
	if !doc.meta.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: id %s to status %q", ErrStatusNotUpdated, id, status)
	}

	doc.meta.Status = status
	if errMsg != "" {
		doc.meta.Error = errMsg
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int64) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*memoryDoc, 0, len(s.docs))
	for _, doc := range s.docs {
		all = append(all, doc)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].meta.ReceivedAt > all[j].meta.ReceivedAt
	})

	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}

	results := make([]map[string]any, len(all))
	for i, doc := range all {
		out := make(map[string]any, len(doc.payload)+1)
		for k, v := range doc.payload {
			out[k] = v
		}
		out[MetaKey] = map[string]any{
			"received_at": doc.meta.ReceivedAt,
			"status":      string(doc.meta.Status),
		}
		if doc.meta.Error != "" {
			out[MetaKey].(map[string]any)["error"] = doc.meta.Error
		}
		results[i] = out
	}
	return results, nil
}

// Get returns the stored meta for a submission. Test helper.
func (s *MemoryStore) Get(id string) (Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return Meta{}, false
	}
	return doc.meta, true
}

// Len reports the number of stored submissions. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
