// Package users declares the user directory storage contract and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/bloglist/internal/server/models"
)

// Repository stores users and the ordered list of posts each one owns.
type Repository interface {
	// Create inserts user and fills in its ID. A taken username yields a
	// *common.ConflictError.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByID and FindByUsername return common.ErrorNotFound when absent.
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all users in creation order with their post ids.
	List(ctx context.Context) ([]*models.User, error)

	// AttachPost appends postID to the user's posts. Repeated calls append
	// repeatedly.
	AttachPost(ctx context.Context, userID, postID string) error

	// DetachPost removes every occurrence of postID from the user's posts.
	DetachPost(ctx context.Context, userID, postID string) error
}

// UsernameTakenMessage is the message reported for duplicate usernames.
const UsernameTakenMessage = "expected `username` to be unique"
