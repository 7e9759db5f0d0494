package db

import (
	"context"
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{MaxConns: 4}.withDefaults()
	if o.MaxConns != 4 {
		t.Fatalf("explicit MaxConns overwritten: %d", o.MaxConns)
	}
	if o.MinConns != 1 || o.MaxConnLifetime != 30*time.Minute || o.MaxConnIdleTime != 5*time.Minute {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestReadyCheckNilPool(t *testing.T) {
	if ReadyCheck(nil) != nil {
		t.Fatal("expected nil check for nil pool")
	}
	check := ReadyCheck(&Pool{})
	if err := check(context.Background()); err == nil {
		t.Fatal("expected error for empty pool")
	}
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), "://not-a-url", Options{}); err == nil {
		t.Fatal("expected parse error")
	}
}
