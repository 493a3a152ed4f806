// Package services contains the server-side business logic: registration,
// login and token resolution in UserService, ownership-checked post CRUD in
// PostService.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/users"
)

const (
	minUsernameLength = 3
	minPasswordLength = 3
)

// PasswordHasher is the password hashing capability (auth.BcryptHasher).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenService issues and verifies bearer tokens (auth.TokenService).
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// LoginResult is returned to a client after a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      TokenService
	hasher      PasswordHasher
	log         logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, tokens TokenService, hasher PasswordHasher, log logging.Logger) *UserService {
	return &UserService{repomanager: m, tokens: tokens, hasher: hasher, log: log}
}

// Register validates the input, hashes the password and stores a user with
// no posts. Input problems are reported as *common.ValidationError, a taken
// username as *common.ConflictError.
func (s *UserService) Register(ctx context.Context, username, name, password string) (*models.User, error) {
	switch {
	case username == "":
		return nil, common.NewValidationError("`username` is required")
	case utf8.RuneCountInString(username) < minUsernameLength:
		return nil, common.NewValidationError("username must be 3 or more characters")
	}

	repo := s.repomanager.Users(s.repomanager.Conn())

	// username rules, uniqueness included, are reported before password ones
	_, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, common.NewConflictError(users.UsernameTakenMessage)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	switch {
	case password == "":
		return nil, common.NewValidationError("`password` is required")
	case utf8.RuneCountInString(password) < minPasswordLength:
		return nil, common.NewValidationError("password does not meet minimum length requirement of 3 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// the unique constraint still catches a concurrent registration
	user, err := repo.Create(ctx, &models.User{Username: username, Name: name, PasswordHash: hash, Posts: []string{}})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())

	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &LoginResult{Token: token, Username: user.Username, Name: user.Name}, nil
}

// Authenticate resolves a bearer token to its user. It fails with
// common.ErrInvalidToken for missing or bad tokens and common.ErrUnknownUser
// when the token is valid but its user no longer exists.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.repomanager.Conn()).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return user, nil
}

// List returns every user with the summaries of the posts they own, in
// attach order. Ids without a matching post are skipped.
func (s *UserService) List(ctx context.Context) ([]models.UserWithPosts, error) {
	conn := s.repomanager.Conn()

	all, err := s.repomanager.Users(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	posts, err := s.repomanager.Posts(conn).FindAllWithOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	byID := make(map[string]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	result := make([]models.UserWithPosts, 0, len(all))
	for _, u := range all {
		entry := models.UserWithPosts{ID: u.ID, Username: u.Username, Name: u.Name, Posts: []models.PostSummary{}}
		for _, id := range u.Posts {
			if p, ok := byID[id]; ok {
				entry.Posts = append(entry.Posts, p.Summary())
			}
		}
		result = append(result, entry)
	}

	return result, nil
}
