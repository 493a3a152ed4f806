// Package repomanager selects the storage backend and hands out repositories
// bound to a database handle.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/posts"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/users"
)

type RepositoryManager interface {
	dbx.Transactor

	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository

	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
