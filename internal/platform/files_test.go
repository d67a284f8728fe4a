package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionDirLifecycle(t *testing.T) {
	dir, err := NewSessionDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionDir() error = %v", err)
	}
	defer dir.Close()

	first := dir.Path()
	if _, err := os.Stat(first); err != nil {
		t.Fatalf("session dir %s does not exist: %v", first, err)
	}

	if err := os.WriteFile(filepath.Join(first, "video.mp4"), []byte("data"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := dir.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if dir.Path() == "" {
		t.Fatal("Clear() left an empty path")
	}
	if _, err := os.Stat(dir.Path()); err != nil {
		t.Errorf("cleared session dir %s does not exist: %v", dir.Path(), err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("old session dir %s still exists", first)
	}

	files, err := ListDownloads(dir.Path())
	if err != nil {
		t.Fatalf("ListDownloads() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty listing after Clear, got %d files", len(files))
	}
}

func TestListDownloads(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string, mtime time.Time) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("failed to set mtime on %s: %v", name, err)
		}
	}

	now := time.Now()
	write("older.mp4", "aaaa", now.Add(-2*time.Hour))
	write("newest.mp3", "bb", now)
	write("middle.webm", "cccccc", now.Add(-1*time.Hour))
	write("empty.part", "", now) // zero-size files are skipped

	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	files, err := ListDownloads(dir)
	if err != nil {
		t.Fatalf("ListDownloads() error = %v", err)
	}

	expected := []string{"newest.mp3", "middle.webm", "older.mp4"}
	if len(files) != len(expected) {
		t.Fatalf("expected %d files, got %d", len(expected), len(files))
	}
	for i, name := range expected {
		if files[i].Name != name {
			t.Errorf("files[%d].Name = %s, expected %s", i, files[i].Name, name)
		}
	}

	if total := TotalSize(files); total != 12 {
		t.Errorf("TotalSize() = %d, expected 12", total)
	}
}

func TestListDownloads_MissingDir(t *testing.T) {
	if _, err := ListDownloads(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ListDownloads() = nil error for missing directory")
	}
}
