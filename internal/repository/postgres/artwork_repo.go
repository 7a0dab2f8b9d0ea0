package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

type ArtworkRepo struct {
	pool *pgxpool.Pool
}

func NewArtworkRepo(pool *pgxpool.Pool) *ArtworkRepo {
	return &ArtworkRepo{pool: pool}
}

func (r *ArtworkRepo) GetByCreator(ctx context.Context, snowflake string) (*domain.Artwork, error) {
	var a domain.Artwork
	err := r.pool.QueryRow(ctx,
		"SELECT id, created_by, image_path, created_at FROM artwork WHERE created_by = $1", snowflake,
	).Scan(&a.ID, &a.CreatedBy, &a.ImagePath, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtworkRepo) Create(ctx context.Context, a *domain.Artwork) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO artwork (created_by, image_path, created_at)
		VALUES ($1, $2, $3) RETURNING id`,
		a.CreatedBy, a.ImagePath, a.CreatedAt,
	).Scan(&a.ID)
}

func (r *ArtworkRepo) Update(ctx context.Context, a *domain.Artwork) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE artwork SET image_path = $2, created_at = $3 WHERE id = $1",
		a.ID, a.ImagePath, a.CreatedAt)
	return err
}
