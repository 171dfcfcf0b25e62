package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mai-repo/Newscraper/internal/domain"
)

// PokemonRepository stores caught Pokémon.
type PokemonRepository struct {
	db *sqlx.DB
}

// NewPokemonRepository creates a PokemonRepository.
func NewPokemonRepository(db *sqlx.DB) *PokemonRepository {
	return &PokemonRepository{db: db}
}

// Create inserts p and returns it with its id.
func (r *PokemonRepository) Create(ctx context.Context, p domain.Pokemon) (domain.Pokemon, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO pokemon (username, pokemon_name, image) VALUES ($1, $2, $3) RETURNING id`,
		p.Username, p.PokemonName, p.Image,
	).Scan(&p.ID)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("insert pokemon: %w", err)
	}
	return p, nil
}

// Update overwrites every field of the row with p.ID.
func (r *PokemonRepository) Update(ctx context.Context, p domain.Pokemon) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pokemon SET username = $1, pokemon_name = $2, image = $3 WHERE id = $4`,
		p.Username, p.PokemonName, p.Image, p.ID)
	if err != nil {
		return fmt.Errorf("update pokemon: %w", err)
	}
	return requireAffected(res)
}

// UpdateImage changes only the image of the row with id.
func (r *PokemonRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pokemon SET image = $1 WHERE id = $2`, image, id)
	if err != nil {
		return fmt.Errorf("update pokemon image: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the row with id.
func (r *PokemonRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pokemon WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pokemon: %w", err)
	}
	return requireAffected(res)
}

// List returns every saved Pokémon in id order.
func (r *PokemonRepository) List(ctx context.Context) ([]domain.Pokemon, error) {
	pokemon := []domain.Pokemon{}
	err := r.db.SelectContext(ctx, &pokemon,
		`SELECT id, username, pokemon_name, image FROM pokemon ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}
	return pokemon, nil
}

// requireAffected maps a zero-row result to domain.ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
