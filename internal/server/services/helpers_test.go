package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/auth"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

// plainHasher keeps tests fast; bcrypt itself is covered in auth.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Compare(hash, pw string) (bool, error) {
	return strings.TrimPrefix(hash, "hashed:") == pw, nil
}

type fixture struct {
	rm    *repomanager.MemoryRepositoryManager
	users *UserService
	posts *PostService
}

func newFixture(t *testing.T, requireOwnerOnUpdate bool) *fixture {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return &fixture{
		rm:    rm,
		users: NewUserService(rm, tokens, plainHasher{}, logging.Nop()),
		posts: NewPostService(rm, requireOwnerOnUpdate, logging.Nop()),
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), username, strings.ToUpper(username), "secret")
	require.NoError(t, err)
	return u
}

func (f *fixture) postCount(t *testing.T) int {
	t.Helper()
	all, err := f.posts.List(context.Background())
	require.NoError(t, err)
	return len(all)
}

func ptr[T any](v T) *T { return &v }

func input(title, author, url string, likes *int) PostInput {
	return PostInput{Title: ptr(title), Author: ptr(author), URL: ptr(url), Likes: likes}
}
