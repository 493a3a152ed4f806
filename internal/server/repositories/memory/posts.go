package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/posts"
	"github.com/google/uuid"
)

// PostRepository implements posts.Repository on a Store.
type PostRepository struct {
	s *Store
}

var _ posts.Repository = (*PostRepository)(nil)

func (s *Store) Posts() *PostRepository {
	return &PostRepository{s: s}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	defer r.s.lock(ctx)()

	post.ID = uuid.NewString()
	post.CreatedAt = r.s.now()

	stored := clonePost(post)
	stored.User = nil
	r.s.posts[post.ID] = stored
	r.s.postOrder = append(r.s.postOrder, post.ID)
	return post, nil
}

func (r *PostRepository) FindAllWithOwner(ctx context.Context) ([]*models.Post, error) {
	defer r.s.rlock(ctx)()

	result := make([]*models.Post, 0, len(r.s.postOrder))
	for _, id := range r.s.postOrder {
		result = append(result, r.s.withOwner(r.s.posts[id]))
	}
	return result, nil
}

func (r *PostRepository) FindByIDWithOwner(ctx context.Context, id string) (*models.Post, error) {
	defer r.s.rlock(ctx)()

	p := r.s.postByID(id)
	if p == nil {
		return nil, common.ErrorNotFound
	}
	return r.s.withOwner(p), nil
}

// FindByIDForUpdate needs no row lock: a transaction holds the whole store.
func (r *PostRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.FindByIDWithOwner(ctx, id)
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.s.lock(ctx)()

	p := r.s.postByID(post.ID)
	if p == nil {
		return common.ErrorNotFound
	}
	p.Title = post.Title
	p.Author = post.Author
	p.URL = post.URL
	p.Likes = post.Likes
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	p := r.s.postByID(id)
	if p == nil {
		return common.ErrorNotFound
	}
	delete(r.s.posts, p.ID)
	r.s.postOrder = slices.DeleteFunc(r.s.postOrder, func(k string) bool { return k == p.ID })
	return nil
}

func (s *Store) postByID(id string) *models.Post {
	if p, ok := s.posts[id]; ok {
		return p
	}
	for key, p := range s.posts {
		if models.SameID(key, id) {
			return p
		}
	}
	return nil
}

// withOwner returns a copy of p with the owner projection filled in.
func (s *Store) withOwner(p *models.Post) *models.Post {
	c := clonePost(p)
	c.User = nil
	if u := s.userByID(p.UserID); u != nil {
		c.User = &models.OwnerView{Username: u.Username, Name: u.Name}
	}
	return c
}
