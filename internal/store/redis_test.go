package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// Runs only when MATHDRILL_TEST_REDIS_ADDR points at a disposable Redis.
func openTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("MATHDRILL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MATHDRILL_TEST_REDIS_ADDR not set")
	}
	r, err := NewRedisStore(context.Background(), addr, time.Minute)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRedisStore_RoundTrip(t *testing.T) {
	r := openTestRedis(t)
	ctx := context.Background()
	id := uuid.NewString()

	if _, err := r.Get(ctx, id); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.Create(ctx, &session.Session{ID: id, PlannedCount: 1, StartedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Create(ctx, &session.Session{ID: id}); err == nil {
		t.Fatal("expected duplicate create to fail")
	}

	q := &problemgen.Question{ID: "q1", Kind: problemgen.KindArithmetic, Operands: []int{2, 3},
		Operations: []string{"+"}, Display: "2 + 3", CorrectAnswer: 5}
	if err := r.AppendQuestion(ctx, id, q); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, _ := r.Get(ctx, id)
	five := 5
	if _, err := problemgen.Answer(got.Questions[0], problemgen.Submission{Answer: &five}, time.Now()); err != nil {
		t.Fatalf("answer: %v", err)
	}
	now := time.Now()
	got.Score = 1
	got.EndedAt = &now
	if err := r.SaveAnswer(ctx, got, got.Questions[0]); err != nil {
		t.Fatalf("save: %v", err)
	}

	final, _ := r.Get(ctx, id)
	if final.Score != 1 || !final.Ended() || !final.Questions[0].Answered() {
		t.Errorf("unexpected session: %+v", final)
	}

	ttl, err := r.rdb.TTL(ctx, r.key(id)).Result()
	if err != nil || ttl <= 0 {
		t.Errorf("expected a TTL, got %v (%v)", ttl, err)
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	r := NewRedisStoreFromClient(nil, 0)
	if r.key("abc") != "mathdrill:session:abc" {
		t.Errorf("unexpected key %q", r.key("abc"))
	}
	if r.ttl != DefaultSessionTTL {
		t.Errorf("expected default TTL, got %v", r.ttl)
	}
}
