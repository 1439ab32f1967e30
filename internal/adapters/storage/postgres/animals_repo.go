package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"sensory-safari-api/internal/domain/animals"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, key, name,
			category, habitat, facts, description,
			image_url, image_asset_id,
			audio_url, audio_asset_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.Key,
		a.Name,
		string(a.Category),
		a.Habitat,
		a.Facts,
		a.Description,
		a.Image.URL,
		a.Image.AssetID,
		a.Audio.URL,
		a.Audio.AssetID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapError(err)
}

// Update no toca id, key ni media.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			category = $3,
			habitat = $4,
			facts = $5,
			description = $6,
			updated_at = $7
		WHERE key = $1
	`,
		a.Key,
		a.Name,
		string(a.Category),
		a.Habitat,
		a.Facts,
		a.Description,
		a.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

const selectColumns = `
	id, key, name,
	category, habitat, facts, description,
	image_url, image_asset_id,
	audio_url, audio_asset_id,
	created_at, updated_at`

func (r *AnimalsRepo) GetByKey(ctx context.Context, key string) (animals.Animal, error) {
	if strings.TrimSpace(key) == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM animals WHERE key = $1`, key)
	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

// List no ordena: orden nativo del store.
func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM animals`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var a animals.Animal
	var category string
	err := s.Scan(
		&a.ID,
		&a.Key,
		&a.Name,
		&category,
		&a.Habitat,
		&a.Facts,
		&a.Description,
		&a.Image.URL,
		&a.Image.AssetID,
		&a.Audio.URL,
		&a.Audio.AssetID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.Category = animals.Category(category)
	return a, err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return animals.ErrDuplicate
	}
	return err
}
