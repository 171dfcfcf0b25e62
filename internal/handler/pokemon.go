package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/domain"
)

// PokemonStore persists caught Pokémon.
type PokemonStore interface {
	Create(ctx context.Context, p domain.Pokemon) (domain.Pokemon, error)
	Update(ctx context.Context, p domain.Pokemon) error
	UpdateImage(ctx context.Context, id int64, image string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Pokemon, error)
}

// PokemonLookup resolves a Pokémon name to its sprite.
type PokemonLookup interface {
	Lookup(ctx context.Context, name string) (domain.PokemonSprite, error)
}

// PokemonHandler serves the Pokémon routes.
type PokemonHandler struct {
	store  PokemonStore
	lookup PokemonLookup
	logger infralogger.Logger
}

// NewPokemonHandler creates a PokemonHandler.
func NewPokemonHandler(store PokemonStore, lookup PokemonLookup, log infralogger.Logger) *PokemonHandler {
	return &PokemonHandler{
		store:  store,
		lookup: lookup,
		logger: log,
	}
}

type pokemonRequest struct {
	Username    string `json:"username"`
	PokemonName string `json:"pokemonName"`
	Image       string `json:"image"`
}

func (r pokemonRequest) complete() bool {
	return r.Username != "" && r.PokemonName != "" && r.Image != ""
}

type changeProfileRequest struct {
	Image     string `json:"image"`
	PokemonID int64  `json:"pokemon_id"`
}

// Catch looks up the Pokémon named by the name query parameter.
func (h *PokemonHandler) Catch(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "Missing 'name' parameter")
		return
	}

	sprite, err := h.lookup.Lookup(c.Request.Context(), name)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Pokemon not found",
			failed:   "Failed to look up Pokemon",
		})
		return
	}

	c.JSON(http.StatusOK, sprite)
}

// Save stores a caught Pokémon.
func (h *PokemonHandler) Save(c *gin.Context) {
	var req pokemonRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		badRequest(c, "Missing data")
		return
	}

	saved, err := h.store.Create(c.Request.Context(), domain.Pokemon{
		Username:    req.Username,
		PokemonName: req.PokemonName,
		Image:       req.Image,
	})
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Failed to save Pokemon"})
		return
	}

	h.logger.Info("Pokemon saved",
		infralogger.Int64("pokemon_id", saved.ID),
		infralogger.String("pokemon_name", saved.PokemonName),
	)

	c.JSON(http.StatusCreated, gin.H{"message": "Pokemon saved successfully"})
}

// Update overwrites the Pokémon with the id path parameter.
func (h *PokemonHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req pokemonRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		badRequest(c, "Missing data")
		return
	}

	err := h.store.Update(c.Request.Context(), domain.Pokemon{
		ID:          id,
		Username:    req.Username,
		PokemonName: req.PokemonName,
		Image:       req.Image,
	})
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Pokemon not found",
			failed:   "Failed to update Pokemon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pokemon updated successfully"})
}

// Delete removes the Pokémon with the id path parameter.
func (h *PokemonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Pokemon not found",
			failed:   "Failed to delete Pokemon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pokemon deleted successfully"})
}

// List returns every saved Pokémon.
func (h *PokemonHandler) List(c *gin.Context) {
	pokemon, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, errorMessages{failed: "Failed to fetch Pokemon"})
		return
	}

	c.JSON(http.StatusOK, pokemon)
}

// ChangeProfile replaces the image of one saved Pokémon.
func (h *PokemonHandler) ChangeProfile(c *gin.Context) {
	var req changeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON data")
		return
	}

	if err := h.store.UpdateImage(c.Request.Context(), req.PokemonID, req.Image); err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "Pokemon not found",
			failed:   "Failed to update profile photo",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile photo updated successfully"})
}
