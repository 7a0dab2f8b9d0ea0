package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrapbuk/skrapbuk/internal/domain"
)

func addParticipants(t *testing.T, repo *fakeParticipantRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Participant{
			Snowflake: fmt.Sprintf("user-%d", i),
			Username:  fmt.Sprintf("name-%d", i),
		}))
	}
}

func newTestEventService(repo *fakeParticipantRepo, cfg *fakeEventConfig, notifier *fakeNotifier) *EventService {
	s := NewEventService(repo, cfg, notifier, testLogger())
	s.rng = rand.New(rand.NewSource(42))
	return s
}

func TestEventService_Start_PairsEveryEligibleParticipant(t *testing.T) {
	for _, n := range []int{2, 3, 5, 17} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			repo := newFakeParticipantRepo()
			addParticipants(t, repo, n)
			cfg := newFakeEventConfig()
			svc := newTestEventService(repo, cfg, &fakeNotifier{})

			result, err := svc.Start(context.Background(), "admin-1")
			require.NoError(t, err)
			assert.Equal(t, n, result.Paired)
			assert.Empty(t, result.Unpaired)

			for _, p := range repo.rows {
				require.NotNil(t, p.Partner, "participant %s has no partner", p.Snowflake)
				assert.NotEqual(t, p.Snowflake, *p.Partner, "participant %s paired with themselves", p.Snowflake)
			}
		})
	}
}

func TestEventService_Start_FormsSingleCycle(t *testing.T) {
	repo := newFakeParticipantRepo()
	addParticipants(t, repo, 9)
	cfg := newFakeEventConfig()
	svc := newTestEventService(repo, cfg, &fakeNotifier{})

	_, err := svc.Start(context.Background(), "admin-1")
	require.NoError(t, err)

	// Walking partner references from any node must visit all 9 participants
	// before returning to the start.
	current := "user-0"
	seen := map[string]bool{}
	for !seen[current] {
		seen[current] = true
		p := repo.rows[current]
		require.NotNil(t, p.Partner)
		current = *p.Partner
	}
	assert.Len(t, seen, 9)
	assert.Equal(t, "user-0", current)
}

func TestEventService_Start_SkipsBannedParticipants(t *testing.T) {
	repo := newFakeParticipantRepo()
	addParticipants(t, repo, 4)
	repo.rows["user-2"].IsBanned = true
	cfg := newFakeEventConfig()
	svc := newTestEventService(repo, cfg, &fakeNotifier{})

	result, err := svc.Start(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Paired)

	assert.Nil(t, repo.rows["user-2"].Partner)
	for _, s := range []string{"user-0", "user-1", "user-3"} {
		p := repo.rows[s]
		require.NotNil(t, p.Partner)
		assert.NotEqual(t, "user-2", *p.Partner, "banned participant assigned as a partner")
	}
}

func TestEventService_Start_AlreadyStartedIsNoOp(t *testing.T) {
	repo := newFakeParticipantRepo()
	addParticipants(t, repo, 3)
	cfg := newFakeEventConfig()
	cfg.started = true
	cfg.startedBy = "admin-0"
	notifier := &fakeNotifier{}
	svc := newTestEventService(repo, cfg, notifier)

	_, err := svc.Start(context.Background(), "admin-1")

	var already *AlreadyStartedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "admin-0", already.By)

	assert.Zero(t, repo.setPartnerCalls, "no partner mutation on a started event")
	assert.Zero(t, cfg.markCalls)
	assert.Empty(t, notifier.started)
}

func TestEventService_Start_SingleParticipantLeftUnpaired(t *testing.T) {
	repo := newFakeParticipantRepo()
	addParticipants(t, repo, 1)
	cfg := newFakeEventConfig()
	svc := newTestEventService(repo, cfg, &fakeNotifier{})

	result, err := svc.Start(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Zero(t, result.Paired)
	assert.Equal(t, []string{"user-0"}, result.Unpaired)
	assert.Nil(t, repo.rows["user-0"].Partner)

	started, by := cfg.Started()
	assert.True(t, started)
	assert.Equal(t, "admin-1", by)
}

func TestEventService_Start_NoParticipants(t *testing.T) {
	repo := newFakeParticipantRepo()
	cfg := newFakeEventConfig()
	notifier := &fakeNotifier{}
	svc := newTestEventService(repo, cfg, notifier)

	result, err := svc.Start(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Zero(t, result.Paired)

	started, _ := cfg.Started()
	assert.True(t, started)
	assert.Equal(t, []string{"admin-1"}, notifier.started)
}

func TestEventService_Start_MidRunFailureLeavesPrefix(t *testing.T) {
	repo := newFakeParticipantRepo()
	addParticipants(t, repo, 5)
	repo.failSetPartnerAfter = 2
	cfg := newFakeEventConfig()
	svc := newTestEventService(repo, cfg, &fakeNotifier{})

	_, err := svc.Start(context.Background(), "admin-1")
	require.Error(t, err)

	// The two committed assignments survive; the flag stays set so the run
	// is not silently retried.
	var paired int
	for _, p := range repo.rows {
		if p.Partner != nil {
			paired++
		}
	}
	assert.Equal(t, 2, paired)
	started, _ := cfg.Started()
	assert.True(t, started)
}

func TestEventService_Countdown(t *testing.T) {
	repo := newFakeParticipantRepo()
	cfg := newFakeEventConfig()
	svc := newTestEventService(repo, cfg, &fakeNotifier{})
	svc.now = func() time.Time { return cfg.startTime.Add(-1 * time.Second) }

	assert.Equal(t, domain.Countdown{Seconds: 1}, svc.Countdown())

	svc.now = func() time.Time { return cfg.startTime.Add(time.Hour) }
	assert.Equal(t, domain.Countdown{}, svc.Countdown())
}
