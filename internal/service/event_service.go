package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/internal/repository"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

// EventConfig is the durable event state: start time, admin allow-list and
// the one-shot started flag.
type EventConfig interface {
	ServerID() string
	IsAdmin(snowflake string) bool
	StartTime() time.Time
	Started() (bool, string)
	MarkStarted(snowflake string) error
}

// Notifier announces event milestones to connected clients.
type Notifier interface {
	EventStarted(startedBy string)
	PartnerAssigned(snowflake string)
}

// PairingResult summarizes a completed pairing run.
type PairingResult struct {
	Paired    int      `json:"paired"`
	Unpaired  []string `json:"unpaired,omitempty"`
	StartedBy string   `json:"started_by"`
}

type EventService struct {
	participants repository.ParticipantRepository
	event        EventConfig
	notifier     Notifier
	log          *logging.Logger

	rng *rand.Rand
	now func() time.Time
}

func NewEventService(
	participants repository.ParticipantRepository,
	event EventConfig,
	notifier Notifier,
	log *logging.Logger,
) *EventService {
	return &EventService{
		participants: participants,
		event:        event,
		notifier:     notifier,
		log:          log,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

// Countdown returns the remaining time until the configured start.
func (s *EventService) Countdown() domain.Countdown {
	return domain.CountdownUntil(s.event.StartTime(), s.now())
}

// Start runs the pairing engine once. The started flag is persisted before
// any assignment so a second trigger can never re-pair; if the flag is
// already set the previous starter is reported and nothing is mutated.
//
// Every non-banned participant is collected, uniformly shuffled, and each is
// assigned the next participant in the shuffled order (the last wraps to the
// first), so the partner references form a single cycle. Assignments commit
// one row at a time; a failure mid-run aborts with the committed prefix in
// place and the last pair logged, and requires an operator reset of the
// event file before another run.
func (s *EventService) Start(ctx context.Context, startedBy string) (*PairingResult, error) {
	if started, by := s.event.Started(); started {
		return nil, &AlreadyStartedError{By: by}
	}

	eligible, err := s.participants.ListEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting eligible participants: %w", err)
	}

	if err := s.event.MarkStarted(startedBy); err != nil {
		return nil, fmt.Errorf("persisting started flag: %w", err)
	}

	result := &PairingResult{StartedBy: startedBy}

	n := len(eligible)
	switch n {
	case 0:
		s.log.Warn("event started with no eligible participants", logrus.Fields{"started_by": startedBy})
	case 1:
		// A single participant cannot be paired with themselves; leave them
		// unpaired and report it.
		result.Unpaired = []string{eligible[0].Snowflake}
		s.log.Warn("event started with a single participant, left unpaired", logrus.Fields{
			"snowflake":  eligible[0].Snowflake,
			"started_by": startedBy,
		})
	default:
		s.rng.Shuffle(n, func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})

		for i := 0; i < n; i++ {
			from := eligible[i].Snowflake
			to := eligible[(i+1)%n].Snowflake

			if err := s.participants.SetPartner(ctx, from, to); err != nil {
				return nil, fmt.Errorf("assigning partner %s -> %s: %w", from, to, err)
			}
			s.log.Info("partner assigned", logrus.Fields{"from": from, "to": to})
			s.notifier.PartnerAssigned(from)
			result.Paired++
		}
	}

	s.log.Info("event started", logrus.Fields{
		"started_by": startedBy,
		"paired":     result.Paired,
	})
	s.notifier.EventStarted(startedBy)

	return result, nil
}
