// Quickstart generates a sample fixture tree and replays it into a
// throwaway SQLite preview database, so the fixture workflow can be
// tried without a MySQL server.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"devdb-reset/internal/fixtures"
	"devdb-reset/internal/sandbox"
)

const sampleSchema = `-- demo schema
create table users (
    id integer primary key,
    name text not null,
    email text not null
);

create table orders (
    id integer primary key,
    user_id integer not null,
    total real not null
);
`

const sampleSeed = `insert into users values (1, 'ada', 'ada@example.com');
insert into users values (2, 'grace', 'grace@example.com');
insert into orders values (1, 1, 19.90);
insert into orders values (2, 2, 5.25);
`

func main() {
	dir := "quickstart"
	createDir := filepath.Join(dir, "sql", "create")
	insertDir := filepath.Join(dir, "sql", "insert")
	for _, d := range []string{createDir, insertDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			log.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(createDir, "001_schema.sql"), []byte(sampleSchema), 0644); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(insertDir, "001_seed.sql"), []byte(sampleSeed), 0644); err != nil {
		log.Fatal(err)
	}

	pair, err := fixtures.Locate(dir)
	if err != nil {
		log.Fatalf("locate fixtures: %v", err)
	}
	fmt.Printf("Resolved fixture layout %q: %s + %s\n", pair.Layout, pair.CreateDir, pair.InsertDir)

	preview := filepath.Join(dir, "preview.db")
	os.Remove(preview)

	total := 0
	for _, stage := range []struct {
		name string
		dir  string
	}{{"create", pair.CreateDir}, {"insert", pair.InsertDir}} {
		files, err := fixtures.Scripts(stage.dir)
		if err != nil {
			log.Fatalf("list %s scripts: %v", stage.name, err)
		}
		batch, err := fixtures.Concat(files)
		if err != nil {
			log.Fatalf("read %s scripts: %v", stage.name, err)
		}
		n, err := sandbox.Apply(preview, string(batch))
		if err != nil {
			log.Fatalf("%s batch: %v", stage.name, err)
		}
		fmt.Printf("Applied %d %s statements from %d file(s)\n", n, stage.name, len(files))
		total += n
	}

	tables, err := sandbox.Tables(preview)
	if err != nil {
		log.Fatal(err)
	}
	for _, table := range tables {
		cnt, err := sandbox.CountRows(preview, table)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %s: %d rows\n", table, cnt)
	}
	fmt.Printf("Quickstart complete! %d statements replayed into %s\n", total, preview)
}
