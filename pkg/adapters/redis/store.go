// Package redis keeps projects in Redis, one hash per project holding the
// encoded files, so several machines can share them.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/cipollino/pkg/domain"
	"github.com/aretw0/cipollino/pkg/persistence"
	"github.com/aretw0/cipollino/pkg/ports"
	"github.com/aretw0/cipollino/pkg/project"
	backend "github.com/redis/go-redis/v9"
)

// dirSuffix marks hash fields that stand for directories.
const dirSuffix = "/"

// Store implements ports.ProjectStore using Redis.
type Store struct {
	client  backend.UniversalClient
	prefix  string
	ttl     time.Duration
	locker  ports.DistributedLocker
	lockTTL time.Duration
	opts    []persistence.Option
}

var _ ports.ProjectStore = (*Store)(nil)

type Option func(*Store)

// WithTTL expires projects that are not saved again within ttl.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLocker serialises saves of the same project across processes.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(s *Store) {
		s.locker = l
		s.lockTTL = ttl
	}
}

// WithPersistence passes options to the encoder and decoder.
func WithPersistence(opts ...persistence.Option) Option {
	return func(s *Store) {
		s.opts = append(s.opts, opts...)
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "cipollino:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "project:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save encodes p and replaces the stored hash in one transaction.
func (s *Store) Save(ctx context.Context, name string, p *project.Project) (*persistence.SaveReport, error) {
	snap, report := persistence.Snapshot(ctx, p, s.opts...)
	if err := report.Err(); err != nil {
		return report, err
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, name, s.lockTTL)
		if err != nil {
			return report, fmt.Errorf("failed to lock %s: %w", name, err)
		}
		defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
	}

	fields := make(map[string]any, len(snap))
	for path, data := range snap {
		if data == nil {
			fields[path+dirSuffix] = ""
			continue
		}
		fields[path] = data
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(name))
	pipe.HSet(ctx, s.key(name), fields)
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(name), s.ttl)
	} else {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: name})

	if _, err := pipe.Exec(ctx); err != nil {
		return report, fmt.Errorf("failed to save to redis: %w", err)
	}
	return report, nil
}

// Load decodes the stored files through the regular loader.
func (s *Store) Load(ctx context.Context, name string) (*project.Project, *persistence.LoadReport, error) {
	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("failed to load %s: %w", name, domain.ErrProjectNotFound)
	}

	snap := persistence.Files{}
	for path, data := range fields {
		if dir, ok := strings.CutSuffix(path, dirSuffix); ok {
			_ = snap.MkdirAll(dir)
			continue
		}
		_ = snap.WriteFile(path, []byte(data))
	}
	return persistence.LoadFS(ctx, snap, name, s.opts...)
}

// Delete removes the project.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the stored projects, dropping expired ones from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired projects: %w", err)
	}
	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
