package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bloglist/internal/common"
	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pgOwnerID = "0b6e2e35-0b35-4a8e-9d5f-7a1b2c3d4e5f"
	pgPostID  = "1b6e2e35-0b35-4a8e-9d5f-7a1b2c3d4e5f"

	lockingReadQ = `(?s)^SELECT\s+p\.id,.*WHERE\s+p\.id\s*=\s*\$1\s+FOR\s+UPDATE\s+OF\s+p$`
)

var pgPostCols = []string{"id", "title", "author", "url", "likes", "user_id", "created_at", "username", "name"}

func newPostgresPostService(t *testing.T) (*PostService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostService(repomanager.NewPostgresRepositoryManager(db), true, logging.Nop()), mock
}

func TestUpdate_LocksRowBeforeMerging(t *testing.T) {
	svc, mock := newPostgresPostService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockingReadQ).WithArgs(pgPostID).WillReturnRows(sqlmock.NewRows(pgPostCols).
		AddRow(pgPostID, "t", "a", "http://x", 5, pgOwnerID, time.Now(), "root", "Root"))
	mock.ExpectExec(`^UPDATE\s+posts\s+SET`).WithArgs("x", "a", "http://x", 5, pgPostID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := svc.Update(context.Background(), pgPostID, PostInput{Title: ptr("x")}, &models.User{ID: pgOwnerID})
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)
	assert.Equal(t, 5, got.Likes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_LocksRowBeforeOwnerCheck(t *testing.T) {
	svc, mock := newPostgresPostService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockingReadQ).WithArgs(pgPostID).WillReturnRows(sqlmock.NewRows(pgPostCols).
		AddRow(pgPostID, "t", "a", "http://x", 5, pgOwnerID, time.Now(), "root", "Root"))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), pgPostID, &models.User{ID: "2b6e2e35-0b35-4a8e-9d5f-7a1b2c3d4e5f"})
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.NoError(t, mock.ExpectationsWereMet())
}
