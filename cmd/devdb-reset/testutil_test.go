package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"devdb-reset/internal/config"
	"devdb-reset/internal/logging"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logging.NewContext(context.Background(), logger)
}

func testCfg(base string) config.Config {
	return config.Config{
		Host:        "127.0.0.1",
		Port:        3306,
		User:        "root",
		PasswordSet: true,
		BaseDir:     base,
		MySQLBin:    "mysql",
	}
}

// fakeEnv records every client interaction run() attempts.
type fakeEnv struct {
	schemas    []string
	listErr    error
	listCalled bool
	batchErr   error
	dropErr    error
	dropped    []string
	batches    [][]byte
}

// installFakes replaces the client functions and prompt plumbing with
// fakes, restoring everything when the test ends. The terminal check
// defaults to false; tests that exercise prompts flip it themselves.
func installFakes(t *testing.T, f *fakeEnv) {
	t.Helper()
	prevLook, prevList := lookPathFunc, listSchemasFunc
	prevDrop, prevBatch := dropSchemaFunc, runBatchFunc
	prevTerm, prevStdin, prevOut := isTerminalFunc, stdin, promptOut

	lookPathFunc = func(string) (string, error) { return "/usr/bin/mysql", nil }
	listSchemasFunc = func(ctx context.Context, cfg config.Config) ([]string, error) {
		f.listCalled = true
		return f.schemas, f.listErr
	}
	dropSchemaFunc = func(ctx context.Context, cfg config.Config, name string) error {
		if f.dropErr != nil {
			return f.dropErr
		}
		f.dropped = append(f.dropped, name)
		return nil
	}
	runBatchFunc = func(ctx context.Context, cfg config.Config, batch []byte) error {
		f.batches = append(f.batches, batch)
		return f.batchErr
	}
	isTerminalFunc = func() bool { return false }
	promptOut = io.Discard

	t.Cleanup(func() {
		lookPathFunc, listSchemasFunc = prevLook, prevList
		dropSchemaFunc, runBatchFunc = prevDrop, prevBatch
		isTerminalFunc, stdin, promptOut = prevTerm, prevStdin, prevOut
	})
}

// writeFixtureTree builds a plain-layout fixture pair under a temp dir.
// Empty script contents mean "leave that directory empty".
func writeFixtureTree(t *testing.T, createSQL, insertSQL string) string {
	t.Helper()
	base := t.TempDir()
	for _, d := range []string{"create", "insert"} {
		if err := os.MkdirAll(filepath.Join(base, d), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if createSQL != "" {
		if err := os.WriteFile(filepath.Join(base, "create", "001_schema.sql"), []byte(createSQL), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if insertSQL != "" {
		if err := os.WriteFile(filepath.Join(base, "insert", "001_seed.sql"), []byte(insertSQL), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return base
}

func wantExit(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", code)
	}
	ee, ok := err.(*exitError)
	if !ok {
		t.Fatalf("expected *exitError, got %T: %v", err, err)
	}
	if ee.code != code {
		t.Fatalf("exit code = %d, want %d (err: %v)", ee.code, code, err)
	}
}
