package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

const participantColumns = "snowflake, username, avatar_url, in_server, is_admin, is_banned, partner, created_at"

type ParticipantRepo struct {
	pool *pgxpool.Pool
}

func NewParticipantRepo(pool *pgxpool.Pool) *ParticipantRepo {
	return &ParticipantRepo{pool: pool}
}

func (r *ParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (snowflake, username, avatar_url, in_server, is_admin, is_banned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.Snowflake, p.Username, p.AvatarURL, p.InServer, p.IsAdmin, p.IsBanned, p.CreatedAt,
	)
	return err
}

func (r *ParticipantRepo) GetBySnowflake(ctx context.Context, snowflake string) (*domain.Participant, error) {
	var p domain.Participant
	err := r.pool.QueryRow(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE snowflake = $1", snowflake,
	).Scan(
		&p.Snowflake, &p.Username, &p.AvatarURL, &p.InServer,
		&p.IsAdmin, &p.IsBanned, &p.Partner, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepo) List(ctx context.Context) ([]domain.Participant, error) {
	return r.list(ctx, "SELECT "+participantColumns+" FROM participants ORDER BY created_at")
}

func (r *ParticipantRepo) ListEligible(ctx context.Context) ([]domain.Participant, error) {
	return r.list(ctx, "SELECT "+participantColumns+" FROM participants WHERE is_banned = FALSE ORDER BY created_at")
}

func (r *ParticipantRepo) list(ctx context.Context, query string) ([]domain.Participant, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(
			&p.Snowflake, &p.Username, &p.AvatarURL, &p.InServer,
			&p.IsAdmin, &p.IsBanned, &p.Partner, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *ParticipantRepo) SetPartner(ctx context.Context, snowflake, partner string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE participants SET partner = $2 WHERE snowflake = $1", snowflake, partner)
	return err
}
