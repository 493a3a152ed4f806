package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/users"
	"github.com/google/uuid"
)

// UserRepository implements users.Repository on a Store.
type UserRepository struct {
	s *Store
}

var _ users.Repository = (*UserRepository)(nil)

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	defer r.s.lock(ctx)()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, common.NewConflictError(users.UsernameTakenMessage)
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.s.now()
	if user.Posts == nil {
		user.Posts = []string{}
	}

	r.s.users[user.ID] = cloneUser(user)
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer r.s.rlock(ctx)()

	u := r.s.userByID(id)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.s.rlock(ctx)()

	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	defer r.s.rlock(ctx)()

	result := make([]*models.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		result = append(result, cloneUser(r.s.users[id]))
	}
	return result, nil
}

func (r *UserRepository) AttachPost(ctx context.Context, userID, postID string) error {
	defer r.s.lock(ctx)()

	u := r.s.userByID(userID)
	if u == nil {
		return common.ErrorNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (r *UserRepository) DetachPost(ctx context.Context, userID, postID string) error {
	defer r.s.lock(ctx)()

	u := r.s.userByID(userID)
	if u == nil {
		return common.ErrorNotFound
	}
	u.Posts = slices.DeleteFunc(u.Posts, func(id string) bool {
		return models.SameID(id, postID)
	})
	return nil
}

// userByID looks a user up by canonical id. Callers hold mu.
func (s *Store) userByID(id string) *models.User {
	if u, ok := s.users[id]; ok {
		return u
	}
	for key, u := range s.users {
		if models.SameID(key, id) {
			return u
		}
	}
	return nil
}
