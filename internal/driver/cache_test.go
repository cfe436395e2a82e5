package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestExportToImportFromRoundTrip(t *testing.T) {
	eng, samples := testEngine(t)
	results, err := Batch(context.Background(), eng, samples, 0, nil)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}

	want := &ReportPayload{
		Target: "x86_64-linux-gnu",
		Lang:   "gcc",
	}
	for _, r := range results {
		e := ReportEntry{Name: r.Name, Ok: r.Err == nil}
		if r.Err != nil {
			e.Err = r.Err.Error()
		} else {
			e.SizeBytes, e.SizeBits, e.Align = r.Layout.SizeBytes, r.Layout.SizeBits, r.Layout.Align
		}
		want.Results = append(want.Results, e)
	}

	path := filepath.Join(t.TempDir(), "report.mp")
	if err := ExportTo(path, want); err != nil {
		t.Fatalf("ExportTo: %v", err)
	}

	got, err := ImportFrom(path)
	if err != nil {
		t.Fatalf("ImportFrom: %v", err)
	}
	if got.Target != want.Target || got.Lang != want.Lang {
		t.Fatalf("got target/lang %s/%s, want %s/%s", got.Target, got.Lang, want.Target, want.Lang)
	}
	if len(got.Results) != len(want.Results) {
		t.Fatalf("len(got.Results) = %d, want %d", len(got.Results), len(want.Results))
	}
	for i := range want.Results {
		if got.Results[i] != want.Results[i] {
			t.Fatalf("Results[%d] = %+v, want %+v", i, got.Results[i], want.Results[i])
		}
	}
}

func TestImportFromRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.mp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale := ReportPayload{Schema: diskCacheSchemaVersion + 1, Target: "x", Lang: "y"}
	if err := msgpack.NewEncoder(f).Encode(&stale); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := ImportFrom(path); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}

func TestOpenDiskCacheExportImport(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := OpenDiskCache()
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	payload := &ReportPayload{Target: "x86_64-linux-gnu", Lang: "gcc", Results: []ReportEntry{
		{Name: "int", SizeBytes: 4, SizeBits: 32, Align: 4, Ok: true},
	}}
	if _, err := c.Export(payload); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, ok, err := c.Import("x86_64-linux-gnu", "gcc")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if len(got.Results) != 1 || got.Results[0].Name != "int" {
		t.Fatalf("unexpected cached payload: %+v", got)
	}

	if _, ok, err := c.Import("armv7-ios", "clang"); err != nil || ok {
		t.Fatalf("expected cache miss for unexported key, got ok=%v err=%v", ok, err)
	}
}
