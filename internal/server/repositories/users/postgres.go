package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Name, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.NewConflictError(UsernameTakenMessage)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Posts = []string{}
	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, username, name, password_hash, created_at FROM users
		 WHERE id = $1
		 `

	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, name, password_hash, created_at FROM users
		 WHERE username = $1
		 `

	return r.findOne(ctx, query, username)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	posts, err := r.postIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Posts = posts

	return user, nil
}

func (r *PostgresRepository) postIDs(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT post_id FROM user_posts
		 WHERE user_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT u.id, u.username, u.name, u.created_at, up.post_id
		 FROM users u
		 LEFT JOIN user_posts up ON up.user_id = u.id
		 ORDER BY u.seq, up.seq
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	byID := map[string]*models.User{}

	for rows.Next() {
		var (
			u      models.User
			postID sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &postID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		user, ok := byID[u.ID]
		if !ok {
			u.Posts = []string{}
			user = &u
			byID[u.ID] = user
			result = append(result, user)
		}
		if postID.Valid {
			user.Posts = append(user.Posts, postID.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) AttachPost(ctx context.Context, userID, postID string) error {
	query :=
		`INSERT INTO user_posts (user_id, post_id)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DetachPost(ctx context.Context, userID, postID string) error {
	query :=
		`DELETE FROM user_posts
		 WHERE user_id = $1 AND post_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
