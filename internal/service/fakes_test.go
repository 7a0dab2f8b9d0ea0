package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/skrapbuk/skrapbuk/internal/domain"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

func testLogger() *logging.Logger {
	l := logging.New()
	l.SetOutput(io.Discard)
	l.Start()
	return l
}

// fakeParticipantRepo is an in-memory ParticipantRepository.
type fakeParticipantRepo struct {
	rows map[string]*domain.Participant
	// order preserves insertion order so List is deterministic.
	order []string

	failSetPartnerAfter int // when > 0, SetPartner fails after that many calls
	setPartnerCalls     int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{rows: make(map[string]*domain.Participant)}
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) error {
	if _, ok := f.rows[p.Snowflake]; ok {
		return errors.New("duplicate key")
	}
	cp := *p
	f.rows[p.Snowflake] = &cp
	f.order = append(f.order, p.Snowflake)
	return nil
}

func (f *fakeParticipantRepo) GetBySnowflake(_ context.Context, snowflake string) (*domain.Participant, error) {
	p, ok := f.rows[snowflake]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParticipantRepo) List(_ context.Context) ([]domain.Participant, error) {
	var out []domain.Participant
	for _, s := range f.order {
		out = append(out, *f.rows[s])
	}
	return out, nil
}

func (f *fakeParticipantRepo) ListEligible(_ context.Context) ([]domain.Participant, error) {
	var out []domain.Participant
	for _, s := range f.order {
		if !f.rows[s].IsBanned {
			out = append(out, *f.rows[s])
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) SetPartner(_ context.Context, snowflake, partner string) error {
	f.setPartnerCalls++
	if f.failSetPartnerAfter > 0 && f.setPartnerCalls > f.failSetPartnerAfter {
		return errors.New("storage failure")
	}
	p, ok := f.rows[snowflake]
	if !ok {
		return errors.New("no such participant")
	}
	p.Partner = &partner
	return nil
}

// fakeAnswersRepo is an in-memory AnswersRepository.
type fakeAnswersRepo struct {
	rows    map[string]*domain.Answers
	upserts int
}

func newFakeAnswersRepo() *fakeAnswersRepo {
	return &fakeAnswersRepo{rows: make(map[string]*domain.Answers)}
}

func (f *fakeAnswersRepo) GetBySnowflake(_ context.Context, snowflake string) (*domain.Answers, error) {
	a, ok := f.rows[snowflake]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnswersRepo) Upsert(_ context.Context, a *domain.Answers) error {
	f.upserts++
	cp := *a
	f.rows[a.UserSnowflake] = &cp
	return nil
}

// fakeArtworkRepo is an in-memory ArtworkRepository.
type fakeArtworkRepo struct {
	rows   map[string]*domain.Artwork
	nextID int64

	failUpdate error
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{rows: make(map[string]*domain.Artwork)}
}

func (f *fakeArtworkRepo) GetByCreator(_ context.Context, snowflake string) (*domain.Artwork, error) {
	a, ok := f.rows[snowflake]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtworkRepo) Create(_ context.Context, a *domain.Artwork) error {
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.rows[a.CreatedBy] = &cp
	return nil
}

func (f *fakeArtworkRepo) Update(_ context.Context, a *domain.Artwork) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	cp := *a
	f.rows[a.CreatedBy] = &cp
	return nil
}

// fakeBanRepo is an in-memory BanRepository that also mirrors the banned
// flag into a participant repo, like the transactional postgres version.
type fakeBanRepo struct {
	rows         map[string]*domain.Ban
	participants *fakeParticipantRepo
	nextID       int64
}

func newFakeBanRepo(participants *fakeParticipantRepo) *fakeBanRepo {
	return &fakeBanRepo{rows: make(map[string]*domain.Ban), participants: participants}
}

func (f *fakeBanRepo) GetBySnowflake(_ context.Context, snowflake string) (*domain.Ban, error) {
	b, ok := f.rows[snowflake]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBanRepo) Ban(_ context.Context, ban *domain.Ban) error {
	f.nextID++
	ban.ID = f.nextID
	cp := *ban
	f.rows[ban.UserSnowflake] = &cp
	if p, ok := f.participants.rows[ban.UserSnowflake]; ok {
		p.IsBanned = true
	}
	return nil
}

func (f *fakeBanRepo) Unban(_ context.Context, snowflake string) error {
	delete(f.rows, snowflake)
	if p, ok := f.participants.rows[snowflake]; ok {
		p.IsBanned = false
	}
	return nil
}

// fakeEventConfig is an in-memory EventConfig.
type fakeEventConfig struct {
	serverID   string
	admins     map[string]bool
	startTime  time.Time
	started    bool
	startedBy  string
	markCalls  int
	markFailed error
}

func newFakeEventConfig() *fakeEventConfig {
	return &fakeEventConfig{
		serverID:  "guild-1",
		admins:    map[string]bool{"admin-1": true},
		startTime: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeEventConfig) ServerID() string               { return f.serverID }
func (f *fakeEventConfig) IsAdmin(snowflake string) bool  { return f.admins[snowflake] }
func (f *fakeEventConfig) StartTime() time.Time           { return f.startTime }
func (f *fakeEventConfig) Started() (bool, string)        { return f.started, f.startedBy }
func (f *fakeEventConfig) MarkStarted(snowflake string) error {
	f.markCalls++
	if f.markFailed != nil {
		return f.markFailed
	}
	f.started = true
	f.startedBy = snowflake
	return nil
}

// fakeMembership is a canned MembershipChecker.
type fakeMembership struct {
	inGuild bool
	err     error
}

func (f *fakeMembership) InGuild(_, _ string) (bool, error) {
	return f.inGuild, f.err
}

// fakeNotifier records announced milestones.
type fakeNotifier struct {
	started  []string
	assigned []string
}

func (f *fakeNotifier) EventStarted(startedBy string)    { f.started = append(f.started, startedBy) }
func (f *fakeNotifier) PartnerAssigned(snowflake string) { f.assigned = append(f.assigned, snowflake) }
