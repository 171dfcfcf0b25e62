package domain

// Pokemon is a caught Pokémon saved against a username.
type Pokemon struct {
	ID          int64  `db:"id"           json:"id"`
	Username    string `db:"username"     json:"username"`
	PokemonName string `db:"pokemon_name" json:"pokemonName"`
	Image       string `db:"image"        json:"image"`
}

// PokemonSprite is the subset of a PokéAPI lookup returned by /catchEm.
type PokemonSprite struct {
	PokemonName string `json:"pokemonName"`
	Image       string `json:"image"`
}
