package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "pypi:requests", []byte(`{"name":"requests"}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "pypi:requests")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != `{"name":"requests"}` {
		t.Errorf("unexpected data: %s", data)
	}

	// Unknown key is a miss, not an error.
	_, hit, err = c.Get(ctx, "pypi:flask")
	if err != nil {
		t.Fatalf("Get miss: %v", err)
	}
	if hit {
		t.Error("expected miss for unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheDeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted entry should be a miss")
	}

	n, err := fc.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("Purge removed %d entries, want 1", n)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("purged entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("boom")
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("wrapped error should be retryable")
	}
	if IsRetryable(base) {
		t.Error("plain error should not be retryable")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestRetryWithBackoffStopsOnPermanent(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error should not be retried, got %d calls", calls)
	}
}

func TestRetryWithBackoffRetriesTransient(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
