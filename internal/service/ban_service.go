package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

var ErrParticipantNotFound = errors.New("participant not found")

type BanService struct {
	bans         repository.BanRepository
	participants repository.ParticipantRepository
	log          *logging.Logger
}

func NewBanService(
	bans repository.BanRepository,
	participants repository.ParticipantRepository,
	log *logging.Logger,
) *BanService {
	return &BanService{bans: bans, participants: participants, log: log}
}

// Ban excludes a participant from the event. Banning an already-banned
// participant is a no-op success; an unknown snowflake is
// ErrParticipantNotFound.
func (s *BanService) Ban(ctx context.Context, snowflake, reason string) (string, error) {
	participant, err := s.participants.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return "", fmt.Errorf("fetching participant: %w", err)
	}
	if participant == nil {
		return "", ErrParticipantNotFound
	}

	existing, err := s.bans.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return "", fmt.Errorf("checking existing ban: %w", err)
	}
	if existing != nil {
		return fmt.Sprintf("User (%s) is already banned.", snowflake), nil
	}

	if strings.TrimSpace(reason) == "" {
		reason = domain.DefaultBanReason
	}

	ban := &domain.Ban{UserSnowflake: snowflake, Reason: reason}
	if err := s.bans.Ban(ctx, ban); err != nil {
		return "", fmt.Errorf("banning participant: %w", err)
	}

	s.log.Warn("participant banned", logrus.Fields{
		"snowflake": snowflake,
		"reason":    reason,
	})
	return fmt.Sprintf("User (%s) has been banned.", snowflake), nil
}

// Unban lifts a ban. Unbanning a participant who is not banned is a no-op
// success, not an error.
func (s *BanService) Unban(ctx context.Context, snowflake string) (string, error) {
	participant, err := s.participants.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return "", fmt.Errorf("fetching participant: %w", err)
	}
	if participant == nil {
		return "", ErrParticipantNotFound
	}

	existing, err := s.bans.GetBySnowflake(ctx, snowflake)
	if err != nil {
		return "", fmt.Errorf("checking existing ban: %w", err)
	}
	if existing == nil {
		return fmt.Sprintf("User (%s) is not banned.", snowflake), nil
	}

	if err := s.bans.Unban(ctx, snowflake); err != nil {
		return "", fmt.Errorf("unbanning participant: %w", err)
	}

	s.log.Info("participant unbanned", logrus.Fields{"snowflake": snowflake})
	return fmt.Sprintf("User (%s) has been unbanned.", snowflake), nil
}
