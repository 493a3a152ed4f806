package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/dbx"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/google/uuid"
)

const selectWithOwner = `SELECT p.id, p.title, p.author, p.url, p.likes, p.user_id, p.created_at, u.username, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 `

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (title, author, url, likes, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Author, post.URL, post.Likes, post.UserID).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) FindAllWithOwner(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectWithOwner+`ORDER BY p.seq`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindByIDWithOwner(ctx context.Context, id string) (*models.Post, error) {
	return r.findOne(ctx, selectWithOwner+`WHERE p.id = $1`, id)
}

func (r *PostgresRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.findOne(ctx, selectWithOwner+`WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query, id string) (*models.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	if _, err := uuid.Parse(post.ID); err != nil {
		return common.ErrorNotFound
	}

	query :=
		`UPDATE posts SET title = $1, author = $2, url = $3, likes = $4
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query, post.Title, post.Author, post.URL, post.Likes, post.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	p := &models.Post{User: &models.OwnerView{}}
	err := s.Scan(&p.ID, &p.Title, &p.Author, &p.URL, &p.Likes, &p.UserID, &p.CreatedAt,
		&p.User.Username, &p.User.Name)
	if err != nil {
		return nil, err
	}
	return p, nil
}
