package repomanager

import (
	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
)

// MemoryRepositoryManager keeps messages in process memory. Data is lost on
// restart.
type MemoryRepositoryManager struct {
	repo *messages.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: messages.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Backend() string               { return config.StorageMemory }
func (m *MemoryRepositoryManager) Messages() messages.Repository { return m.repo }
func (m *MemoryRepositoryManager) Close() error                  { return nil }
