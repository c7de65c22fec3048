package verification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
)

type fakeChallengeStore struct {
	data map[string]string
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{data: make(map[string]string)}
}

func (f *fakeChallengeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeChallengeStore) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (f *fakeChallengeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeChallengeStore) LivenessChallengeKey(userID string) string {
	return "liveness:" + userID
}

func newTestChallenger(t *testing.T, store *fakeChallengeStore) *Challenger {
	t.Helper()
	chal, err := NewChallenger(ChallengerParams{
		Store:  store,
		Keyer:  store,
		Config: config.LivenessConfig{ChallengeTTL: 5 * time.Minute},
	})
	if err != nil {
		t.Fatalf("NewChallenger: %v", err)
	}
	return chal
}

func TestChallengerIssueAndConsume(t *testing.T) {
	t.Parallel()

	store := newFakeChallengeStore()
	chal := newTestChallenger(t, store)
	ctx := context.Background()
	userID := uuid.New()

	issued, err := chal.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.Prompt == "" || issued.ID == "" {
		t.Fatal("issued challenge is incomplete")
	}

	consumed, err := chal.Consume(ctx, userID, issued.ID)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if consumed.Prompt != issued.Prompt {
		t.Fatal("consumed prompt differs from issued prompt")
	}

	// single use
	if _, err := chal.Consume(ctx, userID, issued.ID); !errors.Is(err, ErrChallengeInvalid) {
		t.Fatalf("expected replay to fail, got %v", err)
	}
}

func TestChallengerRejectsMismatchedID(t *testing.T) {
	t.Parallel()

	store := newFakeChallengeStore()
	chal := newTestChallenger(t, store)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := chal.Issue(ctx, userID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := chal.Consume(ctx, userID, "some-other-id"); !errors.Is(err, ErrChallengeInvalid) {
		t.Fatalf("expected mismatch to fail, got %v", err)
	}
}

func TestChallengerRejectsMissingChallenge(t *testing.T) {
	t.Parallel()

	chal := newTestChallenger(t, newFakeChallengeStore())
	if _, err := chal.Consume(context.Background(), uuid.New(), "anything"); !errors.Is(err, ErrChallengeInvalid) {
		t.Fatalf("expected missing challenge to fail, got %v", err)
	}
}

func TestChallengerRejectsExpiredChallenge(t *testing.T) {
	t.Parallel()

	store := newFakeChallengeStore()
	chal := newTestChallenger(t, store)
	ctx := context.Background()
	userID := uuid.New()

	issued, err := chal.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	chal.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	if _, err := chal.Consume(ctx, userID, issued.ID); !errors.Is(err, ErrChallengeInvalid) {
		t.Fatalf("expected expired challenge to fail, got %v", err)
	}
}

func TestChallengerReissueReplacesPrompt(t *testing.T) {
	t.Parallel()

	store := newFakeChallengeStore()
	chal := newTestChallenger(t, store)
	ctx := context.Background()
	userID := uuid.New()

	first, err := chal.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := chal.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := chal.Consume(ctx, userID, first.ID); !errors.Is(err, ErrChallengeInvalid) {
		t.Fatalf("expected replaced challenge to fail, got %v", err)
	}
	if _, err := chal.Consume(ctx, userID, second.ID); err != nil {
		t.Fatalf("expected latest challenge to succeed, got %v", err)
	}
}
