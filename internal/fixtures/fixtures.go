package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pair is a resolved create/insert fixture directory pair.
type Pair struct {
	CreateDir string
	InsertDir string
	// Layout is the relative prefix the pair was found under ("." for
	// the plain layout), kept for diagnostics and trace attributes.
	Layout string
}

// ErrNoLayout is returned by Locate when no candidate layout exists.
var ErrNoLayout = errors.New("no fixture directories found")

// layouts are the candidate prefixes, in priority order.
var layouts = []string{".", "sql", filepath.Join("fixtures", "sql")}

// Locate resolves the fixture directory pair under base. Candidates are
// checked in priority order and the first prefix where both the create
// and insert directory exist wins; later layouts are ignored even when
// they also exist.
func Locate(base string) (Pair, error) {
	for _, layout := range layouts {
		create := filepath.Join(base, layout, "create")
		insert := filepath.Join(base, layout, "insert")
		if isDir(create) && isDir(insert) {
			return Pair{CreateDir: create, InsertDir: insert, Layout: layout}, nil
		}
	}
	return Pair{}, fmt.Errorf("%w under %s (tried create/, sql/create/, fixtures/sql/create/ with matching insert/ directories)", ErrNoLayout, base)
}

// Scripts lists the *.sql files of dir in lexical listing order.
// Subdirectories and non-SQL files are ignored.
func Scripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Concat reads the given script files and joins them into a single
// batch, preserving order. A newline is placed between files so a
// missing trailing newline cannot glue two statements together.
func Concat(files []string) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
