package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each table is one JSON string value, so a save is a single SET.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAccounts(ctx context.Context) (model.Accounts, error) {
	accounts := model.Accounts{}
	if err := s.get(ctx, accountsKey(s.cfg.KeyPrefix), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Storage) LoadScores(ctx context.Context) (model.Scores, error) {
	scores := model.Scores{}
	if err := s.get(ctx, scoresKey(s.cfg.KeyPrefix), &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Storage) SaveAccounts(ctx context.Context, accounts model.Accounts) error {
	return s.set(ctx, accountsKey(s.cfg.KeyPrefix), accounts)
}

func (s *Storage) SaveScores(ctx context.Context, scores model.Scores) error {
	return s.set(ctx, scoresKey(s.cfg.KeyPrefix), scores)
}

func (s *Storage) get(ctx context.Context, key string, v any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: get %s: %v", storage.ErrUnavailable, key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, key, err)
	}
	return nil
}

func (s *Storage) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// Records never expire
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", storage.ErrUnavailable, key, err)
	}
	return nil
}
