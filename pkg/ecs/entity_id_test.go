package ecs

import (
	"sync"
	"testing"
)

func TestNextEntityIDStartsAtOne(t *testing.T) {
	ResetEntityIDs()
	defer ResetEntityIDs()

	if id := NextEntityID(); id != 1 {
		t.Errorf("Expected first ID=1, got %d", id)
	}
	if id := NextEntityID(); id != 2 {
		t.Errorf("Expected second ID=2, got %d", id)
	}
}

func TestNextEntityIDStrictlyIncreasing(t *testing.T) {
	ResetEntityIDs()
	defer ResetEntityIDs()

	prev := NextEntityID()
	for i := 0; i < 1000; i++ {
		id := NextEntityID()
		if id <= prev {
			t.Fatalf("ID not strictly increasing: prev=%d, got=%d", prev, id)
		}
		prev = id
	}
}

// TestNextEntityIDConcurrent 并发分配时ID必须唯一
func TestNextEntityIDConcurrent(t *testing.T) {
	ResetEntityIDs()
	defer ResetEntityIDs()

	const workers = 8
	const perWorker = 500

	results := make([][]EntityID, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]EntityID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, NextEntityID())
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[EntityID]bool, workers*perWorker)
	for _, ids := range results {
		// 每个 goroutine 内部观察到的序列也必须递增
		for i := 1; i < len(ids); i++ {
			if ids[i] <= ids[i-1] {
				t.Fatalf("Per-goroutine sequence not increasing: %d then %d", ids[i-1], ids[i])
			}
		}
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("Duplicate ID %d", id)
			}
			seen[id] = true
		}
	}

	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
	if seen[0] {
		t.Error("ID 0 is reserved and must never be allocated")
	}
}

func TestResetEntityIDs(t *testing.T) {
	NextEntityID()
	NextEntityID()
	ResetEntityIDs()

	if id := NextEntityID(); id != 1 {
		t.Errorf("Expected ID=1 after reset, got %d", id)
	}
	ResetEntityIDs()
}
