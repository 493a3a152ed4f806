package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
)

// maxLikes matches the integer column likes are stored in.
const maxLikes = math.MaxInt32

// PostInput carries the writable post fields. Nil fields were absent from
// the request.
type PostInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// PostService implements post CRUD. Create and Delete keep the owner's post
// list in step with the posts table inside one unit of work.
type PostService struct {
	repomanager          repomanager.RepositoryManager
	requireOwnerOnUpdate bool
	log                  logging.Logger
}

// NewPostService returns a PostService. With requireOwnerOnUpdate unset any
// caller may update any post.
func NewPostService(m repomanager.RepositoryManager, requireOwnerOnUpdate bool, log logging.Logger) *PostService {
	return &PostService{repomanager: m, requireOwnerOnUpdate: requireOwnerOnUpdate, log: log}
}

// RequiresOwnerOnUpdate reports whether Update checks ownership.
func (s *PostService) RequiresOwnerOnUpdate() bool {
	return s.requireOwnerOnUpdate
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.repomanager.Conn()).FindAllWithOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// Get returns common.ErrorNotFound for unknown ids.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.repomanager.Conn()).FindByIDWithOwner(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("error searching post", err)
	}
	return post, nil
}

// Create stores a post owned by owner and appends it to the owner's posts.
// Absent likes default to 0.
func (s *PostService) Create(ctx context.Context, in PostInput, owner *models.User) (*models.Post, error) {
	if owner == nil {
		return nil, common.ErrInvalidToken
	}

	post := &models.Post{UserID: owner.ID}
	in.apply(post)
	if err := validatePost(post); err != nil {
		return nil, err
	}

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Posts(tx).Create(ctx, post); err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		if err := s.repomanager.Users(tx).AttachPost(ctx, owner.ID, post.ID); err != nil {
			return fmt.Errorf("error attaching post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	post.User = &models.OwnerView{Username: owner.Username, Name: owner.Name}
	s.log.Info(ctx, "post created", "post_id", post.ID, "user_id", owner.ID)
	return post, nil
}

// Update replaces the fields present in in. When ownership is enforced,
// requester must own the post: a nil requester yields common.ErrInvalidToken
// and a different one common.ErrorUnauthorized.
func (s *PostService) Update(ctx context.Context, id string, in PostInput, requester *models.User) (*models.Post, error) {
	if s.requireOwnerOnUpdate && requester == nil {
		return nil, common.ErrInvalidToken
	}

	var post *models.Post
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		current, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return wrapRepoErr("error searching post", err)
		}
		if s.requireOwnerOnUpdate && !models.SameID(current.UserID, requester.ID) {
			return common.ErrorUnauthorized
		}

		in.apply(current)
		if err := validatePost(current); err != nil {
			return err
		}
		if err := repo.Update(ctx, current); err != nil {
			return wrapRepoErr("error updating post", err)
		}
		post = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes the post if requester owns it and drops it from the
// owner's posts.
func (s *PostService) Delete(ctx context.Context, id string, requester *models.User) error {
	if requester == nil {
		return common.ErrInvalidToken
	}

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		post, err := s.repomanager.Posts(tx).FindByIDForUpdate(ctx, id)
		if err != nil {
			return wrapRepoErr("error searching post", err)
		}
		if !models.SameID(post.UserID, requester.ID) {
			return common.ErrorUnauthorized
		}

		// user_posts references posts, so detach first
		err = s.repomanager.Users(tx).DetachPost(ctx, post.UserID, post.ID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error detaching post: %w", err)
		}
		if err := s.repomanager.Posts(tx).Delete(ctx, post.ID); err != nil {
			return wrapRepoErr("error deleting post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "post deleted", "post_id", id, "user_id", requester.ID)
	return nil
}

func (in PostInput) apply(p *models.Post) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.URL != nil {
		p.URL = *in.URL
	}
	if in.Likes != nil {
		p.Likes = *in.Likes
	}
}

func validatePost(p *models.Post) error {
	if p.Title == "" || p.URL == "" {
		return common.NewValidationError("title and url are required")
	}
	if p.Likes < 0 {
		return common.NewValidationError("likes must not be negative")
	}
	if p.Likes > maxLikes {
		return common.NewValidationError("likes is out of range")
	}
	return nil
}

// wrapRepoErr passes common.ErrorNotFound through unchanged.
func wrapRepoErr(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
