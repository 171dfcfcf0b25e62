package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// FavoriteStore persists user favorites.
type FavoriteStore interface {
	ListByUser(ctx context.Context, username string) ([]domain.FavoriteArticle, error)
	Add(ctx context.Context, username string, newsID int64) (domain.Favorite, error)
	Delete(ctx context.Context, id int64) error
}

// HeadlineEditor corrects stored headlines.
type HeadlineEditor interface {
	UpdateHeadline(ctx context.Context, oldHeadline, newHeadline string) (int64, error)
}

// FavoriteHandler serves the favorites and headline edit routes.
type FavoriteHandler struct {
	favorites FavoriteStore
	headlines HeadlineEditor
	logger    infralogger.Logger
}

// NewFavoriteHandler creates a FavoriteHandler.
func NewFavoriteHandler(favorites FavoriteStore, headlines HeadlineEditor, log infralogger.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		headlines: headlines,
		logger:    log,
	}
}

type addFavoriteRequest struct {
	Username string `json:"username"`
	NewsID   int64  `json:"news_id"`
}

type editHeadlineRequest struct {
	OldHeadline string `json:"old_headline"`
	NewHeadline string `json:"new_headline"`
}

// List returns the favorites of the username path parameter.
func (h *FavoriteHandler) List(c *gin.Context) {
	username := c.Param("username")

	favorites, err := h.favorites.ListByUser(c.Request.Context(), username)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Failed to fetch favorites"})
		return
	}
	if len(favorites) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No favorites found for this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Add saves an article as a favorite.
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.NewsID == 0 {
		badRequest(c, "Username and news_id are required")
		return
	}

	fav, err := h.favorites.Add(c.Request.Context(), req.Username, req.NewsID)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Article not found",
			conflict: "This article is already in your favorites",
			failed:   "Failed to add favorite",
		})
		return
	}

	h.logger.Info("Favorite added",
		infralogger.String("username", fav.Username),
		infralogger.Int64("news_id", fav.NewsID),
	)

	c.JSON(http.StatusCreated, gin.H{"message": "Favorite added successfully"})
}

// EditHeadline replaces every stored headline equal to old_headline.
func (h *FavoriteHandler) EditHeadline(c *gin.Context) {
	var req editHeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OldHeadline == "" || req.NewHeadline == "" {
		badRequest(c, "Old headline and new headline are required")
		return
	}

	n, err := h.headlines.UpdateHeadline(c.Request.Context(), req.OldHeadline, req.NewHeadline)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "No articles found for the given headline",
			failed:   "Failed to update headline",
		})
		return
	}

	h.logger.Info("Headline updated", infralogger.Int64("rows", n))

	c.JSON(http.StatusOK, gin.H{"message": "Headline updated successfully"})
}

// Delete removes the favorite with the id path parameter.
func (h *FavoriteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.favorites.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Favorite not found",
			failed:   "Failed to delete favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite deleted successfully"})
}

// pathID parses the id path parameter, answering 400 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}
