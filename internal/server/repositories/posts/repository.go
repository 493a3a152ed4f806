// Package posts declares the post storage contract and its PostgreSQL
// implementation.
package posts

import (
	"context"

	"github.com/dmitrijs2005/bloglist/internal/server/models"
)

// Repository stores posts. Reads return posts with the owner projection
// (models.OwnerView) filled in.
type Repository interface {
	// Create inserts post and fills in its ID.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	// FindAllWithOwner returns every post in creation order.
	FindAllWithOwner(ctx context.Context) ([]*models.Post, error)

	// FindByIDWithOwner returns common.ErrorNotFound when absent.
	FindByIDWithOwner(ctx context.Context, id string) (*models.Post, error)

	// FindByIDForUpdate is FindByIDWithOwner that also locks the post row
	// until the surrounding transaction ends. Use it for read-modify-write.
	FindByIDForUpdate(ctx context.Context, id string) (*models.Post, error)

	// Update replaces title, author, url and likes of post.ID.
	// Returns common.ErrorNotFound when absent.
	Update(ctx context.Context, post *models.Post) error

	// Delete removes the post. Returns common.ErrorNotFound when absent.
	Delete(ctx context.Context, id string) error
}
