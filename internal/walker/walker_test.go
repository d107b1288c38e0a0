package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func mkfile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
}

func TestList_SortedByName(t *testing.T) {
	tmpDir := t.TempDir()

	// Created out of order on purpose
	for _, name := range []string{"zebra.txt", "alpha.txt", "moose.txt"} {
		mkfile(t, filepath.Join(tmpDir, name))
	}

	entries, err := List(tmpDir, ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"alpha.txt", "moose.txt", "zebra.txt"}
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}
	for i, name := range expected {
		if entries[i].Name != name {
			t.Errorf("entries[%d]: expected %q, got %q", i, name, entries[i].Name)
		}
	}
}

func TestList_Classification(t *testing.T) {
	tmpDir := t.TempDir()

	mkfile(t, filepath.Join(tmpDir, "regular.txt"))
	if err := os.Mkdir(filepath.Join(tmpDir, "subdir"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	// A symlink pointing at a directory must still classify as Symlink
	if err := os.Symlink(filepath.Join(tmpDir, "subdir"), filepath.Join(tmpDir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	entries, err := List(tmpDir, ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	kinds := make(map[string]Kind)
	for _, entry := range entries {
		kinds[entry.Name] = entry.Kind
	}

	if kinds["regular.txt"] != File {
		t.Errorf("regular.txt should classify as File, got %v", kinds["regular.txt"])
	}
	if kinds["subdir"] != Dir {
		t.Errorf("subdir should classify as Dir, got %v", kinds["subdir"])
	}
	if kinds["link"] != Symlink {
		t.Errorf("link should classify as Symlink, got %v", kinds["link"])
	}
}

func TestList_IgnoreHidden(t *testing.T) {
	tmpDir := t.TempDir()

	mkfile(t, filepath.Join(tmpDir, "visible.txt"))
	mkfile(t, filepath.Join(tmpDir, ".hidden"))
	if err := os.Mkdir(filepath.Join(tmpDir, ".hiddendir"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	entries, err := List(tmpDir, ListOptions{IgnoreHidden: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "visible.txt" {
		t.Errorf("Expected visible.txt, got %q", entries[0].Name)
	}
}

func TestList_IgnoreSymlinks(t *testing.T) {
	tmpDir := t.TempDir()

	mkfile(t, filepath.Join(tmpDir, "file.txt"))
	if err := os.Symlink(filepath.Join(tmpDir, "file.txt"), filepath.Join(tmpDir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	entries, err := List(tmpDir, ListOptions{IgnoreSymlinks: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "file.txt" {
		t.Errorf("Expected file.txt, got %q", entries[0].Name)
	}
}

func TestList_WithExclusions(t *testing.T) {
	tmpDir := t.TempDir()

	included := []string{"main.go", "notes.txt"}
	excluded := []string{"scratch.tmp", "debug.log"}
	for _, name := range append(append([]string{}, included...), excluded...) {
		mkfile(t, filepath.Join(tmpDir, name))
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "node_modules"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	entries, err := List(tmpDir, ListOptions{
		Exclude: []string{"*.tmp", "*.log", "node_modules/"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != len(included) {
		t.Errorf("Expected %d entries, got %d", len(included), len(entries))
	}
	for _, entry := range entries {
		for _, name := range excluded {
			if entry.Name == name {
				t.Errorf("Entry %q should have been excluded", name)
			}
		}
		if entry.Name == "node_modules" {
			t.Error("node_modules should have been excluded")
		}
	}
}

func TestList_DirPatternOnlyMatchesDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// A file named like an excluded directory must survive
	mkfile(t, filepath.Join(tmpDir, "vendor"))

	entries, err := List(tmpDir, ListOptions{Exclude: []string{"vendor/"}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected the vendor file to survive a vendor/ pattern, got %d entries", len(entries))
	}
}

func TestList_UnlistableDirectory(t *testing.T) {
	_, err := List("/nonexistent/directory", ListOptions{})
	if err == nil {
		t.Error("List should return error for nonexistent directory")
	}
}

func TestCount_FilesAndDirs(t *testing.T) {
	tmpDir := t.TempDir()

	mkfile(t, filepath.Join(tmpDir, "a.txt"))
	mkfile(t, filepath.Join(tmpDir, "b.txt"))
	mkfile(t, filepath.Join(tmpDir, "sub", "c.txt"))
	if err := os.MkdirAll(filepath.Join(tmpDir, "sub", "empty"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// 3 files + 3 directories (root, sub, sub/empty)
	count := Count(tmpDir, ListOptions{})
	if count != 6 {
		t.Errorf("Expected count 6, got %d", count)
	}
}

func TestCount_HonorsFilters(t *testing.T) {
	tmpDir := t.TempDir()

	mkfile(t, filepath.Join(tmpDir, "a.txt"))
	mkfile(t, filepath.Join(tmpDir, ".hidden"))
	if err := os.Symlink(filepath.Join(tmpDir, "a.txt"), filepath.Join(tmpDir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	count := Count(tmpDir, ListOptions{IgnoreHidden: true, IgnoreSymlinks: true})
	// root directory + a.txt
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestCount_UnlistableDirectory(t *testing.T) {
	// The directory itself still counts as one unit even if it cannot
	// be listed, matching the snapshot's one-document-per-visit output.
	count := Count("/nonexistent/directory", ListOptions{})
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}
