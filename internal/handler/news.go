// Package handler implements the gin HTTP handlers.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// Scraper runs one scrape of the configured listing page.
type Scraper interface {
	Scrape(ctx context.Context) ([]domain.Article, error)
}

// ArticleReader answers the read-side article queries.
type ArticleReader interface {
	ListPage(ctx context.Context, page, perPage int) (domain.Page, error)
	FilterByKeyword(ctx context.Context, keywords []string) ([]domain.Article, error)
	Search(ctx context.Context, headlineQuery, summaryQuery string) ([]domain.Article, error)
}

// NewsOptions configures paging and the headline keyword set.
type NewsOptions struct {
	Keywords       []string
	DefaultPerPage int
	MaxPerPage     int
}

// NewsHandler serves the scrape and article read routes.
type NewsHandler struct {
	scraper  Scraper
	articles ArticleReader
	logger   infralogger.Logger
	opts     NewsOptions
}

// NewNewsHandler creates a NewsHandler.
func NewNewsHandler(scraper Scraper, articles ArticleReader, log infralogger.Logger, opts NewsOptions) *NewsHandler {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = defaultPerPage
	}
	if opts.MaxPerPage <= 0 {
		opts.MaxPerPage = maxPerPage
	}
	return &NewsHandler{
		scraper:  scraper,
		articles: articles,
		logger:   log,
		opts:     opts,
	}
}

// Welcome answers GET /.
func (h *NewsHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the API!"})
}

// Scrape fetches the listing page, stores every extracted triple and returns them.
func (h *NewsHandler) Scrape(c *gin.Context) {
	inserted, err := h.scraper.Scrape(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "An error occurred while scraping news"})
		return
	}

	c.JSON(http.StatusCreated, lo.Map(inserted, func(a domain.Article, _ int) domain.ExtractedArticle {
		return domain.ExtractedArticle{Headline: a.Headline, Summary: a.Summary, Link: a.Link}
	}))
}

// List returns one page of stored articles.
func (h *NewsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", defaultPage)
	perPage := min(queryInt(c, "per_page", h.opts.DefaultPerPage), h.opts.MaxPerPage)

	result, err := h.articles.ListPage(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Error occurred while fetching news"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Headlines returns the headlines containing any configured keyword.
func (h *NewsHandler) Headlines(c *gin.Context) {
	articles, err := h.articles.FilterByKeyword(c.Request.Context(), h.opts.Keywords)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Error occurred while fetching headlines"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(articles, func(a domain.Article, _ int) domain.Headline {
		return domain.Headline{Headline: a.Headline}
	}))
}

// Search returns articles whose headline contains headline_query or whose
// summary contains summary_query.
func (h *NewsHandler) Search(c *gin.Context) {
	articles, err := h.articles.Search(c.Request.Context(),
		c.Query("headline_query"), c.Query("summary_query"))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Error occurred during search"})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// queryInt parses an integer query parameter. Missing or non-numeric values
// yield def.
func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
