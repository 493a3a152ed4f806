// Package memory keeps users and posts in process memory. It backs the
// server when no database is configured and serves as a fast double in
// service tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
)

type txKey struct{}

// Store owns all in-memory state. Writes and units of work hold mu
// exclusively, reads share it. Repository calls made with the context
// passed to a WithinTx callback run under the lock already held by that
// unit of work.
type Store struct {
	mu sync.RWMutex

	users     map[string]*models.User
	userOrder []string
	posts     map[string]*models.Post
	postOrder []string

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*models.User),
		posts: make(map[string]*models.Post),
		now:   time.Now,
	}
}

// Conn returns nil. Memory repositories ignore the handle they are bound to.
func (s *Store) Conn() dbx.DBTX {
	return nil
}

// WithinTx runs fn exclusively. If fn fails or panics every change it made
// is discarded. Nested calls join the outer unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s), nil)
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires mu for a single write unless ctx already belongs to a unit
// of work on this store. The returned func releases it.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

type snapshot struct {
	users     map[string]*models.User
	userOrder []string
	posts     map[string]*models.Post
	postOrder []string
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		users:     make(map[string]*models.User, len(s.users)),
		userOrder: slices.Clone(s.userOrder),
		posts:     make(map[string]*models.Post, len(s.posts)),
		postOrder: slices.Clone(s.postOrder),
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	for id, p := range s.posts {
		snap.posts[id] = clonePost(p)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.userOrder = snap.userOrder
	s.posts = snap.posts
	s.postOrder = snap.postOrder
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Posts = slices.Clone(u.Posts)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	if p.User != nil {
		owner := *p.User
		c.User = &owner
	}
	return &c
}
