package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

type BanRepo struct {
	pool *pgxpool.Pool
}

func NewBanRepo(pool *pgxpool.Pool) *BanRepo {
	return &BanRepo{pool: pool}
}

func (r *BanRepo) GetBySnowflake(ctx context.Context, snowflake string) (*domain.Ban, error) {
	var b domain.Ban
	err := r.pool.QueryRow(ctx,
		"SELECT id, user_snowflake, reason FROM bans WHERE user_snowflake = $1", snowflake,
	).Scan(&b.ID, &b.UserSnowflake, &b.Reason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Ban writes the ban record and the denormalized participant flag in one
// transaction so they cannot drift apart.
func (r *BanRepo) Ban(ctx context.Context, ban *domain.Ban) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			"INSERT INTO bans (user_snowflake, reason) VALUES ($1, $2) RETURNING id",
			ban.UserSnowflake, ban.Reason,
		).Scan(&ban.ID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			"UPDATE participants SET is_banned = TRUE WHERE snowflake = $1", ban.UserSnowflake)
		return err
	})
}

func (r *BanRepo) Unban(ctx context.Context, snowflake string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"DELETE FROM bans WHERE user_snowflake = $1", snowflake); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			"UPDATE participants SET is_banned = FALSE WHERE snowflake = $1", snowflake)
		return err
	})
}

func (r *BanRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
