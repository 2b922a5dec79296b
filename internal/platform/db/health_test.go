package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolStats_Fields(t *testing.T) {
	stats := &PoolStats{
		TotalConns:      8,
		IdleConns:       3,
		AcquiredConns:   5,
		MaxConns:        20,
		AcquireCount:    42,
		AcquireDuration: "250ms",
		Healthy:         true,
	}

	if stats.TotalConns != 8 {
		t.Errorf("TotalConns = %d, want 8", stats.TotalConns)
	}
	if stats.IdleConns != 3 {
		t.Errorf("IdleConns = %d, want 3", stats.IdleConns)
	}
	if stats.AcquiredConns != 5 {
		t.Errorf("AcquiredConns = %d, want 5", stats.AcquiredConns)
	}
	if stats.MaxConns != 20 {
		t.Errorf("MaxConns = %d, want 20", stats.MaxConns)
	}
	if stats.AcquireCount != 42 {
		t.Errorf("AcquireCount = %d, want 42", stats.AcquireCount)
	}
	if stats.AcquireDuration != "250ms" {
		t.Errorf("AcquireDuration = %q, want 250ms", stats.AcquireDuration)
	}
	if !stats.Healthy {
		t.Error("expected Healthy to be true")
	}
}

func TestPoolStats_JSONShape(t *testing.T) {
	stats := &PoolStats{TotalConns: 1, Healthy: true}

	b, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{"total_conns", "idle_conns", "acquired_conns", "max_conns", "acquire_count", "acquire_duration", "healthy"} {
		if !strings.Contains(string(b), `"`+key+`"`) {
			t.Errorf("JSON missing key %q: %s", key, b)
		}
	}
}
