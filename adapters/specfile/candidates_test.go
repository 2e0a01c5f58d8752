package specfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCandidateSourceParsesManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.json")
	manifest := `[
		{"name": "testA", "estimated_trace": ["Foo#a", "Foo#b"]},
		{"name": "testB", "estimated_trace": []}
	]`
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	got, err := NewCandidateSource(path).Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Candidates() len = %d, want 2", len(got))
	}
	if got[0].Name != "testA" || !got[0].EstimatedTrace.Contains("Foo#a") {
		t.Errorf("Candidates()[0] = %+v, want testA covering Foo#a", got[0])
	}
	if len(got[1].EstimatedTrace) != 0 {
		t.Errorf("Candidates()[1].EstimatedTrace = %v, want empty", got[1].EstimatedTrace.Sorted())
	}
}

func TestCandidateSourceMissingFile(t *testing.T) {
	_, err := NewCandidateSource("/does/not/exist.json").Candidates(context.Background())
	if err == nil {
		t.Fatal("expected an error for a missing manifest file")
	}
}

func TestCandidateSourceMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	_, err := NewCandidateSource(path).Candidates(context.Background())
	if err == nil {
		t.Fatal("expected an error for a malformed manifest")
	}
}

func TestCandidateSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCandidateSource("irrelevant.json").Candidates(ctx)
	if err == nil {
		t.Fatal("expected an error for an already-cancelled context")
	}
}

func TestCandidateSourceEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	got, err := NewCandidateSource(path).Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Candidates() = %v, want empty", got)
	}
}
