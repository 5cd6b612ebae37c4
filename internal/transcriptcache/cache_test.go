package transcriptcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"narralign/internal/transcript"
)

func writeTranscriptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript file: %v", err)
	}
	return path
}

const sampleTranscript = `{
  "language": "en",
  "segments": [
    {"words": [
      {"word": "hello", "start": 0.0, "end": 0.4},
      {"word": "world", "start": 0.5, "end": 0.9}
    ]}
  ]
}`

func TestPutGetRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	original := &transcript.Transcript{
		FilePath: "/tmp/sample.json",
		Language: "en",
		Words: []transcript.WordSegment{
			{Text: "hello", Start: 0, End: 0.4},
			{Text: "world", Start: 0.5, End: 0.9},
		},
		FullText: "hello world",
	}

	if err := store.Put(ctx, "fp-1", original); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FilePath != original.FilePath || got.Language != original.Language || got.FullText != original.FullText {
		t.Errorf("got %+v, want %+v", got, original)
	}
	if len(got.Words) != 2 || got.Words[1] != original.Words[1] {
		t.Errorf("words round trip failed: %+v", got.Words)
	}
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(absent) error = %v, want ErrNotFound", err)
	}
}

func TestLoadParsesThenServesFromCache(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	path := writeTranscriptFile(t, dir, "episode.json", sampleTranscript)

	first, cached, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cached {
		t.Fatal("first load should parse, not hit the cache")
	}
	if first.FullText != "hello world" {
		t.Fatalf("unexpected transcript: %+v", first)
	}

	second, cached, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !cached {
		t.Fatal("second load should hit the cache")
	}
	if second.FullText != first.FullText || len(second.Words) != len(first.Words) {
		t.Fatalf("cached transcript differs: %+v vs %+v", second, first)
	}
}

func TestLoadDetectsChangedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	path := writeTranscriptFile(t, dir, "episode.json", sampleTranscript)

	if _, _, err := store.Load(ctx, path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	edited := `{"words": [{"word": "goodbye", "start": 0.0, "end": 0.5}]}`
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("rewrite transcript: %v", err)
	}

	got, cached, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load after edit: %v", err)
	}
	if cached {
		t.Fatal("edited file must not be served from cache")
	}
	if got.FullText != "goodbye" {
		t.Fatalf("unexpected transcript after edit: %+v", got)
	}
}

func TestCountAndClear(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, fp := range []string{"a", "b"} {
		if err := store.Put(ctx, fp, &transcript.Transcript{FullText: fp}); err != nil {
			t.Fatalf("Put(%s): %v", fp, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count after clear: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after clear = %d, want 0", count)
	}
}

func TestOpenRefusesSecondLock(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := Open(dir); err == nil {
		t.Fatal("expected second Open on the same directory to fail")
	}
}
