package messages

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/server/models"
)

// MemoryRepository keeps records in a map. Records are copied on the way in
// and out so callers never share memory with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Message)}
}

func (r *MemoryRepository) Put(ctx context.Context, m *models.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[m.ID]; ok {
		return fmt.Errorf("message %s: %w", m.ID, common.ErrorAlreadyExists)
	}
	r.items[m.ID] = *m
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}
