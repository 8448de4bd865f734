package cache

import (
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("machines", "value1")

	val, found := c.Get("machines")
	if !found {
		t.Fatal("expected to find machines")
	}
	if val != "value1" {
		t.Errorf("expected value1, got %v", val)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(50 * time.Millisecond)

	c.Set("machines", "value1")

	if _, found := c.Get("machines"); !found {
		t.Error("expected to find machines immediately")
	}

	time.Sleep(80 * time.Millisecond)

	if _, found := c.Get("machines"); found {
		t.Error("expected machines to be expired")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(1 * time.Second)

	c.Set("machines", "value1")
	c.Clear("machines")

	if _, found := c.Get("machines"); found {
		t.Error("expected machines to be cleared")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := New(0)

	c.Set("machines", "value1")

	if _, found := c.Get("machines"); found {
		t.Error("expected zero-TTL cache to always miss")
	}
}
