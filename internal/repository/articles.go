// Package repository implements the Postgres data access for articles,
// favorites and saved Pokémon.
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/mai-repo/Newscraper/internal/domain"
)

const articleColumns = `id, headline, summary, link`

// ArticleRepository stores scraped articles and answers the read queries.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates an ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// InsertBatch stores items in one transaction and returns them with their
// assigned ids, in input order. Either every item is stored or none is; any
// failure is returned as *domain.IngestError. An empty batch touches nothing.
func (r *ArticleRepository) InsertBatch(ctx context.Context, items []domain.ExtractedArticle) ([]domain.Article, error) {
	if len(items) == 0 {
		return []domain.Article{}, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &domain.IngestError{Err: fmt.Errorf("begin: %w", err)}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO news (headline, summary, link) VALUES ($1, $2, $3) RETURNING id`)
	if err != nil {
		return nil, &domain.IngestError{Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	inserted := make([]domain.Article, 0, len(items))
	for i, item := range items {
		var id int64
		if scanErr := stmt.QueryRowxContext(ctx, item.Headline, item.Summary, item.Link).Scan(&id); scanErr != nil {
			return nil, &domain.IngestError{Err: fmt.Errorf("insert item %d: %w", i, scanErr)}
		}
		inserted = append(inserted, domain.Article{
			ID:       id,
			Headline: item.Headline,
			Summary:  item.Summary,
			Link:     item.Link,
		})
	}

	if err = tx.Commit(); err != nil {
		return nil, &domain.IngestError{Err: fmt.Errorf("commit: %w", err)}
	}

	return inserted, nil
}

// Count returns the number of stored articles.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM news`); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}

// ListPage returns page (1-based) of perPage articles in ascending id order.
// A page past the end has no articles but still reports the totals.
func (r *ArticleRepository) ListPage(ctx context.Context, page, perPage int) (domain.Page, error) {
	if page < 1 {
		return domain.Page{}, domain.NewValidationError("page", "must be at least 1")
	}
	if perPage < 1 {
		return domain.Page{}, domain.NewValidationError("per_page", "must be at least 1")
	}

	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page{}, err
	}

	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	result := domain.Page{
		CurrentPage:   page,
		TotalPages:    totalPages,
		PerPage:       perPage,
		TotalArticles: total,
		Articles:      []domain.Article{},
	}

	// Compared in pages so huge page numbers cannot overflow the offset.
	if page > totalPages {
		return result, nil
	}
	offset := (page - 1) * perPage

	query := `SELECT ` + articleColumns + ` FROM news ORDER BY id ASC LIMIT $1 OFFSET $2`
	if err = r.db.SelectContext(ctx, &result.Articles, query, perPage, offset); err != nil {
		return domain.Page{}, fmt.Errorf("list articles: %w", err)
	}

	return result, nil
}

// FilterByKeyword returns articles whose headline contains any of keywords,
// case-sensitively, in ascending id order. Keywords are bound as parameters
// and matched literally, whitespace included. Empty keywords are ignored; no
// keywords means no results.
func (r *ArticleRepository) FilterByKeyword(ctx context.Context, keywords []string) ([]domain.Article, error) {
	terms := lo.Uniq(lo.Compact(keywords))
	if len(terms) == 0 {
		return []domain.Article{}, nil
	}

	patterns := lo.Map(terms, func(k string, _ int) string { return containsPattern(k) })

	articles := []domain.Article{}
	query := `SELECT ` + articleColumns + ` FROM news WHERE headline LIKE ANY($1) ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &articles, query, pq.Array(patterns)); err != nil {
		return nil, fmt.Errorf("filter by keyword: %w", err)
	}

	return articles, nil
}

// Search returns articles whose headline contains headlineQuery or whose
// summary contains summaryQuery. Matching is a case-sensitive literal
// substring test against the search table; an empty query matches every row.
func (r *ArticleRepository) Search(ctx context.Context, headlineQuery, summaryQuery string) ([]domain.Article, error) {
	articles := []domain.Article{}
	query := `SELECT ` + articleColumns + ` FROM news_fts
		WHERE headline LIKE $1 OR summary LIKE $2
		ORDER BY id ASC`

	err := r.db.SelectContext(ctx, &articles, query,
		containsPattern(headlineQuery), containsPattern(summaryQuery))
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	return articles, nil
}

// UpdateHeadline replaces every headline equal to oldHeadline and returns the
// number of rows changed. domain.ErrNotFound when nothing matched.
func (r *ArticleRepository) UpdateHeadline(ctx context.Context, oldHeadline, newHeadline string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE news SET headline = $1 WHERE headline = $2`, newHeadline, oldHeadline)
	if err != nil {
		return 0, fmt.Errorf("update headline: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update headline: %w", err)
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}

	return n, nil
}
