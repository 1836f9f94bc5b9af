package repomanager

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/toldya/internal/filex"
	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
)

// BadgerRepositoryManager owns an embedded badger database on local disk.
type BadgerRepositoryManager struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the database in dir.
func OpenBadger(dir string) (*BadgerRepositoryManager, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("badger dir: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerRepositoryManager{db: db}, nil
}

func (m *BadgerRepositoryManager) Backend() string { return config.StorageBadger }

func (m *BadgerRepositoryManager) Messages() messages.Repository {
	return messages.NewBadgerRepository(m.db)
}

func (m *BadgerRepositoryManager) Close() error {
	return m.db.Close()
}
