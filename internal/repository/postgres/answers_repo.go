package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

type AnswersRepo struct {
	pool *pgxpool.Pool
}

func NewAnswersRepo(pool *pgxpool.Pool) *AnswersRepo {
	return &AnswersRepo{pool: pool}
}

func (r *AnswersRepo) GetBySnowflake(ctx context.Context, snowflake string) (*domain.Answers, error) {
	var a domain.Answers
	err := r.pool.QueryRow(ctx, `
		SELECT user_snowflake, fav_game, fav_colour, fav_song, fav_film, fav_food, hobby_interest
		FROM answers WHERE user_snowflake = $1`, snowflake,
	).Scan(&a.UserSnowflake, &a.Game, &a.Colour, &a.Song, &a.Film, &a.Food, &a.Hobby)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnswersRepo) Upsert(ctx context.Context, a *domain.Answers) error {
	query := `
		INSERT INTO answers (user_snowflake, fav_game, fav_colour, fav_song, fav_film, fav_food, hobby_interest)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_snowflake) DO UPDATE SET
			fav_game = EXCLUDED.fav_game,
			fav_colour = EXCLUDED.fav_colour,
			fav_song = EXCLUDED.fav_song,
			fav_film = EXCLUDED.fav_film,
			fav_food = EXCLUDED.fav_food,
			hobby_interest = EXCLUDED.hobby_interest`

	_, err := r.pool.Exec(ctx, query,
		a.UserSnowflake, a.Game, a.Colour, a.Song, a.Film, a.Food, a.Hobby)
	return err
}
