package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/repository"
)

var (
	favoriteExistsSQL = regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM favorites WHERE username = $1 AND news_id = $2)`)
	favoriteInsertSQL = regexp.QuoteMeta(`INSERT INTO favorites (username, news_id) VALUES ($1, $2) RETURNING id`)
	favoriteDeleteSQL = regexp.QuoteMeta(`DELETE FROM favorites WHERE id = $1`)
)

func TestFavoriteRepository_Add(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := repository.NewFavoriteRepository(db)

	mock.ExpectQuery(favoriteExistsSQL).WithArgs("ash", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(favoriteInsertSQL).WithArgs("ash", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	fav, err := repo.Add(context.Background(), "ash", 4)
	require.NoError(t, err)
	assert.Equal(t, domain.Favorite{ID: 9, Username: "ash", NewsID: 4}, fav)
}

func TestFavoriteRepository_Add_Duplicate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := repository.NewFavoriteRepository(db)

	mock.ExpectQuery(favoriteExistsSQL).WithArgs("ash", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.Add(context.Background(), "ash", 4)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestFavoriteRepository_Add_MissingArticle(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := repository.NewFavoriteRepository(db)

	mock.ExpectQuery(favoriteExistsSQL).WithArgs("ash", int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(favoriteInsertSQL).WithArgs("ash", int64(404)).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Add(context.Background(), "ash", 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := repository.NewFavoriteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE f.username = $1`)).WithArgs("ash").
		WillReturnRows(articleRows().AddRow(9, "Sample Headline", "Sample summary", "/a"))

	got, err := repo.ListByUser(context.Background(), "ash")
	require.NoError(t, err)
	assert.Equal(t, []domain.FavoriteArticle{
		{ID: 9, Headline: "Sample Headline", Summary: "Sample summary", Link: "/a"},
	}, got)
}

func TestFavoriteRepository_Delete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := repository.NewFavoriteRepository(db)

	mock.ExpectExec(favoriteDeleteSQL).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(favoriteDeleteSQL).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 9))
	assert.ErrorIs(t, repo.Delete(context.Background(), 10), domain.ErrNotFound)
}
