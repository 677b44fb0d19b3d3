package app

import (
	"context"
	"sync"
	"testing"

	"eamlab/domain/simulation"
)

func rowsFixture() map[int][]simulation.Row {
	return map[int][]simulation.Row{
		1: {
			{ConditionIdx: 2, TrialIdx: 1, RT: 1.1, ChunkIdx: 1},
			{ConditionIdx: 1, TrialIdx: 1, RT: 0.9, ChunkIdx: 1},
			{ConditionIdx: 1, TrialIdx: 2, RT: 1.0, ChunkIdx: 1},
		},
		2: {
			{ConditionIdx: 3, TrialIdx: 1, RT: 1.3, ChunkIdx: 2},
		},
	}
}

func TestMapByConditionService_Map_OrdersByChunkThenCondition(t *testing.T) {
	dataset := &fakeDataset{chunks: rowsFixture()}
	svc := NewMapByConditionService(dataset)

	var seen []int
	_, err := svc.Map(context.Background(), "/tmp/run", false, 1, func(condIdx int, rows []simulation.Row) (map[string]any, error) {
		seen = append(seen, condIdx)
		return map[string]any{"condition_idx": condIdx, "n": len(rows)}, nil
	})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %d conditions visited, got %d (%v)", len(want), len(seen), seen)
	}
	for i, c := range want {
		if seen[i] != c {
			t.Fatalf("expected condition order %v, got %v", want, seen)
		}
	}
}

func TestMapByConditionService_Map_ParallelPreservesOrderingAndCompleteness(t *testing.T) {
	dataset := &fakeDataset{chunks: rowsFixture()}
	svc := NewMapByConditionService(dataset)

	var mu sync.Mutex
	visited := map[int]bool{}
	out, err := svc.Map(context.Background(), "/tmp/run", true, 4, func(condIdx int, rows []simulation.Row) (map[string]any, error) {
		mu.Lock()
		visited[condIdx] = true
		mu.Unlock()
		return map[string]any{"condition_idx": condIdx}, nil
	})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(visited) != 3 {
		t.Fatalf("expected every condition visited exactly once, got %v", visited)
	}
	gotOrder := make([]int, len(out))
	for i, row := range out {
		gotOrder[i] = row["condition_idx"].(int)
	}
	want := []int{1, 2, 3}
	for i, c := range want {
		if gotOrder[i] != c {
			t.Fatalf("expected output order %v, got %v", want, gotOrder)
		}
	}
}
