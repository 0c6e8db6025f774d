package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewTTL[string, int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache must miss")
	}

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", v)
	}
}

func TestExpiry(t *testing.T) {
	c := NewTTL[string, string](time.Minute)

	c.SetWithTTL("gone", "value", -time.Second)
	if _, ok := c.Get("gone"); ok {
		t.Error("expired entry must miss")
	}

	c.SetWithTTL("alive", "value", time.Minute)
	if _, ok := c.Get("alive"); !ok {
		t.Error("live entry must hit")
	}
}

func TestDelete(t *testing.T) {
	c := NewTTL[string, int](time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry must miss")
	}
	// Deleting a missing key is a no-op.
	c.Delete("a")
}
