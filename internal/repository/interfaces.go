package repository

import (
	"context"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetBySnowflake(ctx context.Context, snowflake string) (*domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	// ListEligible returns all non-banned participants, the population the
	// pairing engine draws from.
	ListEligible(ctx context.Context) ([]domain.Participant, error)
	SetPartner(ctx context.Context, snowflake, partner string) error
}

type AnswersRepository interface {
	GetBySnowflake(ctx context.Context, snowflake string) (*domain.Answers, error)
	// Upsert creates the record on first submission and fully overwrites all
	// six fields on later ones.
	Upsert(ctx context.Context, a *domain.Answers) error
}

type ArtworkRepository interface {
	GetByCreator(ctx context.Context, snowflake string) (*domain.Artwork, error)
	Create(ctx context.Context, a *domain.Artwork) error
	Update(ctx context.Context, a *domain.Artwork) error
}

type BanRepository interface {
	GetBySnowflake(ctx context.Context, snowflake string) (*domain.Ban, error)
	// Ban inserts the ban record and sets the participant's banned flag in a
	// single transaction; Unban is the inverse.
	Ban(ctx context.Context, ban *domain.Ban) error
	Unban(ctx context.Context, snowflake string) error
}
