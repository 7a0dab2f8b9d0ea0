package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/discord"
	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

var (
	ErrAlreadyJoined = errors.New("participant has already joined the event")
	ErrNotJoined     = errors.New("participant has not joined the event")
	ErrNoPartner     = errors.New("participant has no partner assigned")
)

// MembershipChecker re-derives community membership from the identity
// provider; it is never trusted from a stored row.
type MembershipChecker interface {
	InGuild(accessToken, guildID string) (bool, error)
}

// PartnerDetails is the partner payload: who they are plus their
// questionnaire, so the gifter knows what to make.
type PartnerDetails struct {
	Details struct {
		Snowflake string `json:"snowflake"`
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
	} `json:"details"`
	Answers *domain.Answers `json:"answers"`
}

type ParticipantService struct {
	participants repository.ParticipantRepository
	answers      repository.AnswersRepository
	membership   MembershipChecker
	event        EventConfig
	log          *logging.Logger
}

func NewParticipantService(
	participants repository.ParticipantRepository,
	answers repository.AnswersRepository,
	membership MembershipChecker,
	event EventConfig,
	log *logging.Logger,
) *ParticipantService {
	return &ParticipantService{
		participants: participants,
		answers:      answers,
		membership:   membership,
		event:        event,
		log:          log,
	}
}

// Profile builds the caller's profile. Identity fields come from the
// provider, in_server and is_admin are recomputed on every call, and the
// persisted row (if any) contributes the partner and banned state.
func (s *ParticipantService) Profile(ctx context.Context, identity *discord.Identity, accessToken string) (*domain.Participant, error) {
	inServer, err := s.membership.InGuild(accessToken, s.event.ServerID())
	if err != nil {
		return nil, fmt.Errorf("checking server membership: %w", err)
	}

	profile := &domain.Participant{
		Snowflake: identity.Snowflake,
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
		InServer:  inServer,
		IsAdmin:   s.event.IsAdmin(identity.Snowflake),
	}

	row, err := s.participants.GetBySnowflake(ctx, identity.Snowflake)
	if err != nil {
		return nil, fmt.Errorf("fetching participant: %w", err)
	}
	if row != nil {
		profile.IsBanned = row.IsBanned
		profile.Partner = row.Partner
		profile.CreatedAt = row.CreatedAt
	}

	return profile, nil
}

// Join creates the participant row. A second join for the same snowflake
// fails with ErrAlreadyJoined and has no side effects.
func (s *ParticipantService) Join(ctx context.Context, identity *discord.Identity, accessToken string) (*domain.Participant, error) {
	existing, err := s.participants.GetBySnowflake(ctx, identity.Snowflake)
	if err != nil {
		return nil, fmt.Errorf("checking existing participant: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyJoined
	}

	inServer, err := s.membership.InGuild(accessToken, s.event.ServerID())
	if err != nil {
		return nil, fmt.Errorf("checking server membership: %w", err)
	}

	participant := &domain.Participant{
		Snowflake: identity.Snowflake,
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
		InServer:  inServer,
		IsAdmin:   s.event.IsAdmin(identity.Snowflake),
		IsBanned:  false,
		CreatedAt: time.Now(),
	}

	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("creating participant: %w", err)
	}

	s.log.Info("participant joined", logrus.Fields{
		"snowflake": identity.Snowflake,
		"username":  identity.Username,
	})

	return participant, nil
}

// Partner resolves the caller's assigned partner along with the partner's
// questionnaire answers.
func (s *ParticipantService) Partner(ctx context.Context, snowflake string) (*PartnerDetails, error) {
	row, err := s.participants.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return nil, fmt.Errorf("fetching participant: %w", err)
	}
	if row == nil {
		return nil, ErrNotJoined
	}
	if row.Partner == nil {
		return nil, ErrNoPartner
	}

	partner, err := s.participants.GetBySnowflake(ctx, *row.Partner)
	if err != nil {
		return nil, fmt.Errorf("fetching partner: %w", err)
	}
	if partner == nil {
		return nil, fmt.Errorf("partner %s not found", *row.Partner)
	}

	answers, err := s.answers.GetBySnowflake(ctx, partner.Snowflake)
	if err != nil {
		return nil, fmt.Errorf("fetching partner answers: %w", err)
	}

	details := &PartnerDetails{Answers: answers}
	details.Details.Snowflake = partner.Snowflake
	details.Details.Username = partner.Username
	details.Details.AvatarURL = partner.AvatarURL
	return details, nil
}

// List returns every participant, for the admin listing.
func (s *ParticipantService) List(ctx context.Context) ([]domain.Participant, error) {
	return s.participants.List(ctx)
}

const snowflakeDigits = "0123456789"
const usernameLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SeedDev inserts n random participants. Development convenience only.
func (s *ParticipantService) SeedDev(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		snowflake := make([]byte, 18)
		snowflake[0] = snowflakeDigits[1+rand.Intn(9)]
		for j := 1; j < len(snowflake); j++ {
			snowflake[j] = snowflakeDigits[rand.Intn(len(snowflakeDigits))]
		}

		name := make([]byte, 5+rand.Intn(6))
		for j := range name {
			name[j] = usernameLetters[rand.Intn(len(usernameLetters))]
		}

		p := &domain.Participant{
			Snowflake: string(snowflake),
			Username:  string(name),
			AvatarURL: fmt.Sprintf("avatar_%s.jpg", name),
			InServer:  rand.Intn(2) == 0,
			CreatedAt: time.Now(),
		}
		if err := s.participants.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding participant %d: %w", i, err)
		}
	}

	s.log.Info("seeded dummy participants", logrus.Fields{"count": n})
	return nil
}
