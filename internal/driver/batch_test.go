package driver

import (
	"context"
	"testing"

	"ctypes/internal/catalog"
	"ctypes/internal/layout"
	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func testEngine(t *testing.T) (*layout.Engine, []catalog.Sample) {
	t.Helper()
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	samples := catalog.Build(in, strs)
	profile := target.X86_64LinuxGNU()
	return layout.New(in, profile.Target, profile.LangOpts), samples
}

func TestBatchPreservesOrderAndReportsEveryResult(t *testing.T) {
	eng, samples := testEngine(t)
	events := make(chan Event, len(samples)*2)

	results, err := Batch(context.Background(), eng, samples, 4, events)
	close(events)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(results) != len(samples) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(samples))
	}
	for i, r := range results {
		if r.Name != samples[i].Name {
			t.Fatalf("results[%d].Name = %q, want %q (order not preserved)", i, r.Name, samples[i].Name)
		}
	}

	seenDone := false
	for ev := range events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			seenDone = true
		}
	}
	if !seenDone {
		t.Fatalf("expected at least one Done/Error event")
	}
}

func TestBatchDefaultsJobsToGOMAXPROCS(t *testing.T) {
	eng, samples := testEngine(t)
	results, err := Batch(context.Background(), eng, samples, 0, nil)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(results) != len(samples) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(samples))
	}
}

func TestBatchMarksIncompleteRecordAsNotOk(t *testing.T) {
	eng, samples := testEngine(t)
	results, err := Batch(context.Background(), eng, samples, 0, nil)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	for i, s := range samples {
		if s.Name != "incomplete_struct" {
			continue
		}
		if results[i].Layout.Ok {
			t.Fatalf("incomplete_struct should not report Ok layout")
		}
	}
}
