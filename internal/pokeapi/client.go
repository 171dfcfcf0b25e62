// Package pokeapi looks up Pokémon sprites on PokéAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	infraerrors "github.com/mai-repo/Newscraper/infrastructure/errors"
	"github.com/mai-repo/Newscraper/internal/domain"
)

const maxBodyBytes = 2 << 20

// Client queries the PokéAPI REST endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client rooted at baseURL (e.g. https://pokeapi.co/api/v2).
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type pokemonResponse struct {
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// Lookup returns the canonical name and front sprite of the named Pokémon.
// Names are case-insensitive. domain.ErrNotFound when PokéAPI has no match.
func (c *Client) Lookup(ctx context.Context, name string) (domain.PokemonSprite, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.PokemonSprite{}, domain.NewValidationError("name", "is required")
	}

	endpoint := c.baseURL + "/pokemon/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return domain.PokemonSprite{}, fmt.Errorf("build pokeapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PokemonSprite{}, fmt.Errorf("pokeapi lookup %q: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return domain.PokemonSprite{}, fmt.Errorf("pokemon %q: %w", name, domain.ErrNotFound)
	}
	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return domain.PokemonSprite{}, fmt.Errorf("pokeapi lookup %q: %w", name, httpErr)
	}

	var body pokemonResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return domain.PokemonSprite{}, fmt.Errorf("decode pokeapi response: %w", err)
	}

	return domain.PokemonSprite{
		PokemonName: body.Name,
		Image:       body.Sprites.FrontDefault,
	}, nil
}
