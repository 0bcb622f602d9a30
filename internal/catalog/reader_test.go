package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReadReturnsContentVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "category.json")
	content := `{"categories": ["Food", "Transport"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	r := NewReader(path)
	got, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != content {
		t.Errorf("Read = %q, want %q", got, content)
	}
}

func TestReadObservesLiveEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "category.json")
	if err := os.WriteFile(path, []byte(`["Food"]`), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	r := NewReader(path)
	if _, err := r.Read(context.Background()); err != nil {
		t.Fatalf("first Read: %v", err)
	}

	// Edit the file between reads; the second read must see the new content.
	if err := os.WriteFile(path, []byte(`["Food", "Travel"]`), 0644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	got, err := r.Read(context.Background())
	if err != nil {
		t.Fatalf("second Read: %v", err)
	}
	if string(got) != `["Food", "Travel"]` {
		t.Errorf("Read after edit = %q, want updated content", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := r.Read(context.Background()); err == nil {
		t.Fatal("Read of missing catalog should error")
	}
}

func TestReadInvalidJSONIsNotValidated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "category.json")
	// The reader is a pass-through; malformed JSON is the owner's problem.
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	got, err := NewReader(path).Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `{not json` {
		t.Errorf("Read = %q, want raw bytes", got)
	}
}
