package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mai-repo/Newscraper/internal/domain"
)

const pqForeignKeyViolation = "23503"

// FavoriteRepository stores per-user favorite articles.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a FavoriteRepository.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListByUser returns username's favorites joined with their articles.
func (r *FavoriteRepository) ListByUser(ctx context.Context, username string) ([]domain.FavoriteArticle, error) {
	favorites := []domain.FavoriteArticle{}
	query := `
		SELECT f.id, n.headline, n.summary, n.link
		FROM favorites f
		JOIN news n ON n.id = f.news_id
		WHERE f.username = $1
		ORDER BY f.id ASC
	`
	if err := r.db.SelectContext(ctx, &favorites, query, username); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Add saves newsID as a favorite of username. domain.ErrAlreadyExists when the
// pair is already saved, domain.ErrNotFound when the article does not exist.
func (r *FavoriteRepository) Add(ctx context.Context, username string, newsID int64) (domain.Favorite, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE username = $1 AND news_id = $2)`,
		username, newsID)
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return domain.Favorite{}, domain.ErrAlreadyExists
	}

	fav := domain.Favorite{Username: username, NewsID: newsID}
	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO favorites (username, news_id) VALUES ($1, $2) RETURNING id`,
		username, newsID,
	).Scan(&fav.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return domain.Favorite{}, domain.ErrNotFound
		}
		return domain.Favorite{}, fmt.Errorf("insert favorite: %w", err)
	}

	return fav, nil
}

// Delete removes the favorite with id. domain.ErrNotFound when absent.
func (r *FavoriteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return requireAffected(res)
}
