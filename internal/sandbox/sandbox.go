// Package sandbox replays fixture SQL into a throwaway SQLite database
// so a fixture set can be smoke-tested without a running MySQL server.
// It is used by the quickstart demo and by tests; the reset path itself
// only ever talks to the real client binary.
package sandbox

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Apply executes every statement of script against the SQLite database
// at path, creating it if needed. It returns the number of statements
// executed. Statements are split naively on ';', which is good enough
// for the plain DDL/DML found in dev fixtures.
func Apply(path, script string) (int, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	n := 0
	for _, stmt := range SplitStatements(script) {
		if _, err := db.Exec(stmt); err != nil {
			return n, fmt.Errorf("statement %d: %w", n+1, err)
		}
		n++
	}
	return n, nil
}

// SplitStatements splits script into individual statements. Line
// comments are dropped, statements are separated on ';', and empty
// fragments are skipped.
func SplitStatements(script string) []string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, line)
	}

	var stmts []string
	for _, frag := range strings.Split(strings.Join(kept, "\n"), ";") {
		if s := strings.TrimSpace(frag); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Tables lists the user tables of the SQLite database at path.
func Tables(path string) ([]string, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`select name from sqlite_master where type = 'table' order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountRows returns the number of rows in table.
func CountRows(path, table string) (int, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var cnt int
	if err := db.QueryRow(fmt.Sprintf(`select count(*) from %q`, table)).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
