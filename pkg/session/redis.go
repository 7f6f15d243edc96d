package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/bizmanager-api/pkg/circuitbreaker"
)

const keyPrefix = "bizmanager:session:"

type RedisConfig struct {
	URL      string
	PoolSize int
	TTL      time.Duration
}

// RedisStore shares sessions between replicas. Calls go through a circuit
// breaker so a dead Redis fails requests fast instead of piling them up.
type RedisStore struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewRedisStore(ctx context.Context, config RedisConfig, logger *zerolog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-sessions",
			MaxFailures: 5,
			Interval:    10 * time.Second,
			Timeout:     5 * time.Second,
		}),
		ttl:    config.TTL,
		logger: logger,
	}, nil
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	sess := newSession(userID, s.ttl, time.Now().UTC())
	payload, err := encode(sess)
	if err != nil {
		return nil, err
	}

	err = s.cb.Execute(func() error {
		return s.client.Set(ctx, key(sess.ID), payload, s.ttl).Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var payload []byte
	err := s.cb.Execute(func() error {
		b, err := s.client.Get(ctx, key(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		payload = b
		return err
	}, isNotFound)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess, err := decode(payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", id).Msg("Discarding unreadable session")
		return nil, ErrNotFound
	}
	if sess.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	err := s.cb.Execute(func() error {
		return s.client.Del(ctx, key(id)).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(id string) string {
	return keyPrefix + id
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func encode(sess *Session) ([]byte, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return payload, nil
}

func decode(payload []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sess.ID == "" || sess.UserID == uuid.Nil {
		return nil, errors.New("session payload is incomplete")
	}
	return &sess, nil
}
