package fixtures

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mkLayout(t *testing.T, base, prefix string) {
	t.Helper()
	for _, d := range []string{"create", "insert"} {
		if err := os.MkdirAll(filepath.Join(base, prefix, d), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
}

func TestLocatePriority(t *testing.T) {
	base := t.TempDir()
	mkLayout(t, base, ".")
	mkLayout(t, base, "sql")
	mkLayout(t, base, filepath.Join("fixtures", "sql"))

	pair, err := Locate(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.CreateDir != filepath.Join(base, "create") {
		t.Errorf("plain layout should win, got %s", pair.CreateDir)
	}
	if pair.Layout != "." {
		t.Errorf("unexpected layout: %s", pair.Layout)
	}
}

func TestLocateFallsThrough(t *testing.T) {
	base := t.TempDir()
	// Plain layout incomplete: create exists but insert does not.
	if err := os.MkdirAll(filepath.Join(base, "create"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mkLayout(t, base, filepath.Join("fixtures", "sql"))

	pair, err := Locate(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.InsertDir != filepath.Join(base, "fixtures", "sql", "insert") {
		t.Errorf("expected fixtures/sql layout, got %s", pair.InsertDir)
	}
}

func TestLocateMissing(t *testing.T) {
	_, err := Locate(t.TempDir())
	if !errors.Is(err, ErrNoLayout) {
		t.Fatalf("expected ErrNoLayout, got %v", err)
	}
}

func TestScriptsOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20_users.sql", "10_schema.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("select 1;"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "archive.sql"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := Scripts(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 scripts, got %v", files)
	}
	if filepath.Base(files[0]) != "10_schema.sql" || filepath.Base(files[1]) != "20_users.sql" {
		t.Errorf("scripts not in listing order: %v", files)
	}
}

func TestScriptsEmpty(t *testing.T) {
	files, err := Scripts(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no scripts, got %v", files)
	}
}

func TestConcatSeparatesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sql")
	b := filepath.Join(dir, "b.sql")
	os.WriteFile(a, []byte("create table t (id int)"), 0644) // no trailing newline
	os.WriteFile(b, []byte("insert into t values (1);\n"), 0644)

	batch, err := Concat([]string{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "create table t (id int)\ninsert into t values (1);\n"
	if string(batch) != want {
		t.Errorf("unexpected batch:\n%q\nwant:\n%q", batch, want)
	}
}
