package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one memory.Store.
// The db handles passed to Users and Posts are ignored.
type MemoryRepositoryManager struct {
	*memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{Store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.Store.Users()
}

func (m *MemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository {
	return m.Store.Posts()
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
