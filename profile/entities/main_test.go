package main

import (
	"errors"
	"testing"

	"github.com/edwinsyarief/retsu"
	"github.com/edwinsyarief/retsu/internal/harness"
)

// go test -run ^TestRun$ ./profile/entities -count 1
func TestRun(t *testing.T) {
	log := harness.Logger("entities", "panic")
	var r report
	if err := run(Config{Rounds: 2, Iters: 3, Entities: 4}, log, &r); err != nil {
		t.Fatal(err)
	}
	if r.Spawned != 24 || r.Despawned != 24 {
		t.Errorf("expected 24 spawned and despawned, got %d and %d", r.Spawned, r.Despawned)
	}

	if err := run(Config{Rounds: 1, Iters: 1}, log, &report{}); !errors.Is(err, retsu.ErrCapacityExceeded) {
		t.Errorf("expected the registration error, got %v", err)
	}
}
