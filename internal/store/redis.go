package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// DefaultSessionTTL is how long an idle session survives in Redis.
const DefaultSessionTTL = 24 * time.Hour

// RedisStore implements session.Store as one JSON document per session.
// Every write refreshes the TTL. Updates use WATCH so concurrent writers
// on other processes retry instead of overwriting each other.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

var _ session.Store = (*RedisStore)(nil)

// NewRedisStore connects to addr and pings it.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreFromClient(rdb, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client. ttl <= 0 uses
// DefaultSessionTTL.
func NewRedisStoreFromClient(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{rdb: rdb, prefix: "mathdrill:session:", ttl: ttl}
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Create(ctx context.Context, s *session.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.rdb.SetNX(ctx, r.key(s.ID), raw, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeSession(raw)
}

func (r *RedisStore) AppendQuestion(ctx context.Context, sessionID string, q *problemgen.Question) error {
	return r.update(ctx, sessionID, func(s *session.Session) error {
		s.Questions = append(s.Questions, q.Clone())
		return nil
	})
}

func (r *RedisStore) SaveAnswer(ctx context.Context, in *session.Session, q *problemgen.Question) error {
	return r.update(ctx, in.ID, func(s *session.Session) error {
		replaced := false
		for i, existing := range s.Questions {
			if existing.ID == q.ID {
				s.Questions[i] = q.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			return fmt.Errorf("%w: %s", session.ErrQuestionNotFound, q.ID)
		}
		s.Score = in.Score
		s.CurrentIndex = in.CurrentIndex
		if in.EndedAt != nil {
			t := *in.EndedAt
			s.EndedAt = &t
		}
		return nil
	})
}

func (r *RedisStore) End(ctx context.Context, sessionID string, at time.Time) error {
	return r.update(ctx, sessionID, func(s *session.Session) error {
		if s.EndedAt == nil {
			s.EndedAt = &at
		}
		return nil
	})
}

// maxUpdateRetries bounds optimistic-lock retries.
const maxUpdateRetries = 5

// update loads the session under WATCH, applies fn and writes it back.
func (r *RedisStore) update(ctx context.Context, id string, fn func(*session.Session) error) error {
	key := r.key(id)
	txf := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return fmt.Errorf("%w: %s", session.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}
		s, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		out, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis update %s: too much contention", id)
}

func decodeSession(raw []byte) (*session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
