package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
)

// ErrChallengeInvalid signals a missing, expired, or mismatched liveness
// challenge on submit.
var ErrChallengeInvalid = errors.New("liveness challenge invalid or expired")

// Liveness prompts shown to the student before recording. The issued prompt
// is stored server side; the client echoes only its ID back.
var livenessPrompts = []string{
	"Raise your left hand above your head",
	"Raise your right hand above your head",
	"Turn your head to the left, then to the right",
	"Do two jumping jacks",
	"Touch your toes and stand back up",
	"Clap your hands three times",
	"Hold both arms out to the sides",
}

// Challenge is one issued liveness prompt.
type Challenge struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	ExpiresAt time.Time `json:"expires_at"`
}

type challengeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type challengeKeyer interface {
	LivenessChallengeKey(userID string) string
}

// Challenger issues and consumes single-use liveness prompts. One prompt is
// live per user at a time; issuing again replaces the previous one.
type Challenger struct {
	store  challengeStore
	keyer  challengeKeyer
	ttl    time.Duration
	now    func() time.Time
	pickFn func(n int) int
}

// ChallengerParams bundle the dependencies for a Challenger.
type ChallengerParams struct {
	Store  challengeStore
	Keyer  challengeKeyer
	Config config.LivenessConfig
}

// NewChallenger builds a Redis-backed liveness challenger.
func NewChallenger(params ChallengerParams) (*Challenger, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("challenge store required")
	}
	if params.Keyer == nil {
		return nil, fmt.Errorf("challenge keyer required")
	}
	ttl := params.Config.ChallengeTTL
	if ttl <= 0 {
		return nil, fmt.Errorf("challenge ttl must be positive")
	}
	return &Challenger{
		store:  params.Store,
		keyer:  params.Keyer,
		ttl:    ttl,
		now:    time.Now,
		pickFn: rand.Intn,
	}, nil
}

// Issue stores a fresh prompt for the user and returns it.
func (c *Challenger) Issue(ctx context.Context, userID uuid.UUID) (*Challenge, error) {
	challenge := Challenge{
		ID:        uuid.NewString(),
		Prompt:    livenessPrompts[c.pickFn(len(livenessPrompts))],
		ExpiresAt: c.now().UTC().Add(c.ttl),
	}
	payload, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("encode challenge: %w", err)
	}
	key := c.keyer.LivenessChallengeKey(userID.String())
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}
	return &challenge, nil
}

// Consume validates that challengeID matches the user's live prompt and
// retires it. A consumed or expired prompt cannot be replayed.
func (c *Challenger) Consume(ctx context.Context, userID uuid.UUID, challengeID string) (*Challenge, error) {
	if challengeID == "" {
		return nil, ErrChallengeInvalid
	}
	key := c.keyer.LivenessChallengeKey(userID.String())
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrChallengeInvalid
		}
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	var challenge Challenge
	if err := json.Unmarshal([]byte(raw), &challenge); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	if challenge.ID != challengeID {
		return nil, ErrChallengeInvalid
	}
	if c.now().UTC().After(challenge.ExpiresAt) {
		return nil, ErrChallengeInvalid
	}
	if err := c.store.Del(ctx, key); err != nil {
		return nil, fmt.Errorf("retire challenge: %w", err)
	}
	return &challenge, nil
}
