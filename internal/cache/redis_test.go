package cache

import (
	"strings"
	"testing"
	"time"
)

func TestAIKeyChangesWithVersion(t *testing.T) {
	v1 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	v2 := v1.Add(time.Second)

	k1 := AIKey("risk", "user-1", v1)
	k2 := AIKey("risk", "user-1", v2)

	if k1 == k2 {
		t.Fatalf("expected different keys for different versions: %s", k1)
	}
	if !strings.HasPrefix(k1, "ai:risk:user-1:") {
		t.Fatalf("unexpected key format: %s", k1)
	}
	if AIKey("advice", "user-1", v1) == k1 {
		t.Fatal("expected kind to be part of the key")
	}
}

func TestNewRedisCacheFailsWithoutServer(t *testing.T) {
	if _, err := NewRedisCache("redis://127.0.0.1:1/0"); err == nil {
		t.Fatal("expected connection error")
	}
}
