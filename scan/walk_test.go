package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	sub := mkdir(t, dir, "sub")
	deeper := mkdir(t, sub, "deeper")
	mkdir(t, dir, "empty")

	want := map[string]int64{}
	want[writeFile(t, dir, "a.txt", []byte("hello"))] = 5
	want[writeFile(t, sub, "b.txt", []byte("abc"))] = 3
	want[writeFile(t, deeper, "c.bin", make([]byte, 8193))] = 8193
	want[writeFile(t, deeper, "zero", nil)] = 0

	entries := Collect(dir)
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for _, e := range entries {
		size, ok := want[e.Path]
		if !ok {
			t.Errorf("unexpected entry %s", e.Path)
			continue
		}
		if e.Size != size {
			t.Errorf("%s: size %d, want %d", e.Path, e.Size, size)
		}
	}
}

func TestCollectRootFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "single", []byte("alone"))

	entries := Collect(path)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Path != path || entries[0].Size != 5 {
		t.Errorf("got %+v", entries[0])
	}
}

func TestCollectMissingRoot(t *testing.T) {
	entries := Collect(filepath.Join(t.TempDir(), "absent"))
	if len(entries) != 0 {
		t.Errorf("got %v, want none", entries)
	}
}

func TestCollectSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "real", []byte("content"))
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	entries := Collect(dir)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %v", len(entries), entries)
	}
	if entries[0].Path != target {
		t.Errorf("got %s, want %s", entries[0].Path, target)
	}
}
