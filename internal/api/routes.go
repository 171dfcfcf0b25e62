package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mai-repo/Newscraper/internal/handler"
	"github.com/mai-repo/Newscraper/internal/metrics"
)

// Handlers groups every route handler.
type Handlers struct {
	News      *handler.NewsHandler
	Favorites *handler.FavoriteHandler
	Pokemon   *handler.PokemonHandler
	Auth      *handler.AuthHandler
}

// SetupRoutes configures all API routes.
// Health routes are registered by the infrastructure gin builder.
func SetupRoutes(router *gin.Engine, h Handlers, m *metrics.Metrics) {
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
		router.Use(m.HTTP.Middleware())
	}

	// News
	router.GET("/", h.News.Welcome)
	router.GET("/scrape", h.News.Scrape)
	router.GET("/news", h.News.List)
	router.GET("/headlines", h.News.Headlines)
	router.GET("/search", h.News.Search)

	// Favorites
	router.GET("/favorites/:username", h.Favorites.List)
	router.POST("/addFavorites", h.Favorites.Add)
	router.PUT("/editHeadline", h.Favorites.EditHeadline)
	router.DELETE("/deleteFavorite/:id", h.Favorites.Delete)

	// Pokémon
	router.GET("/catchEm", h.Pokemon.Catch)
	router.POST("/savePokemon", h.Pokemon.Save)
	router.PUT("/updatePokemon/:id", h.Pokemon.Update)
	router.DELETE("/deletePokemon/:id", h.Pokemon.Delete)
	router.GET("/getPokemon", h.Pokemon.List)
	router.PUT("/changeProfile", h.Pokemon.ChangeProfile)

	// Verification
	router.POST("/verifyUser", h.Auth.VerifyUser)
	router.POST("/userSignIn", h.Auth.UserSignIn)
}
