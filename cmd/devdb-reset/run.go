package main

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"devdb-reset/internal/config"
	"devdb-reset/internal/fixtures"
	"devdb-reset/internal/logging"
	"devdb-reset/internal/tracing"
)

// Exit codes, one per failure class, so scripts driving the tool can
// tell outcomes apart.
const (
	exitUsage        = 1
	exitEnvironment  = 4
	exitConnectivity = 6
	exitBatch        = 7
	exitUserAborted  = 8
	exitBadSelection = 15
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitf(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

var (
	lookPathFunc    = exec.LookPath
	listSchemasFunc = listSchemas
	dropSchemaFunc  = dropSchema
	runBatchFunc    = runBatch
)

// run drives a full reset: environment checks, config resolution, the
// connectivity check, an optional schema drop, then the create and
// insert batches. Any failure is terminal; nothing is retried.
func run(ctx context.Context, cfg config.Config) error {
	logger := logging.FromContext(ctx)

	pair, err := fixtures.Locate(cfg.BaseDir)
	if err != nil {
		return exitf(exitEnvironment, "%v", err)
	}

	bin, err := lookPathFunc(cfg.MySQLBin)
	if err != nil {
		return exitf(exitEnvironment, "mysql client %q not found; install the MySQL client package or point --mysql-bin at it", cfg.MySQLBin)
	}
	cfg.MySQLBin = bin

	if !cfg.PasswordSet && isTerminalFunc() {
		pw, err := promptPassword(cfg.User)
		if err != nil {
			return exitf(exitUsage, "read password: %v", err)
		}
		cfg.Password = pw
		cfg.PasswordSet = true
	}

	tracer, shutdown := tracing.Init(ctx, "devdb-reset", cfg.Addr(), cfg.OTELEndpoint)
	defer shutdown(ctx)

	jobID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "devdb.reset")
	defer span.End()
	span.SetAttributes(
		attribute.String("reset_job_id", jobID),
		attribute.String("db.address", cfg.Addr()),
		attribute.String("db.user", cfg.User),
		attribute.String("fixture_layout", pair.Layout),
		attribute.Bool("no_insert", cfg.NoInsert),
	)

	// The connectivity check must run before anything destructive.
	schemas, err := listSchemasFunc(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("status", "failed"))
		return exitf(exitConnectivity, "cannot reach MySQL at %s as %q: %v (is the server running? is the password right?)", cfg.Addr(), cfg.User, err)
	}
	logger.Info("connected", "addr", cfg.Addr(), "user", cfg.User, "schemas", len(schemas), "job_id", jobID)

	if err := maybeDropSchema(ctx, cfg, schemas, span); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("status", "failed"))
		return err
	}

	if err := loadBatch(ctx, cfg, pair.CreateDir, "create", span); err != nil {
		span.SetAttributes(attribute.String("status", "failed"))
		return err
	}
	if cfg.NoInsert {
		logger.Info("insert step skipped (--no-insert)")
		span.AddEvent("insert batch suppressed")
	} else if err := loadBatch(ctx, cfg, pair.InsertDir, "insert", span); err != nil {
		span.SetAttributes(attribute.String("status", "failed"))
		return err
	}

	span.SetAttributes(attribute.String("status", "success"))
	logger.Info("database reset complete", "addr", cfg.Addr(), "job_id", jobID)
	return nil
}

// maybeDropSchema resolves the tri-state delete intent: --fresh drops a
// named schema without prompting, --initial never drops, and with
// neither the operator is asked -- but only on a terminal.
// Non-interactive runs leave existing schemas alone.
func maybeDropSchema(ctx context.Context, cfg config.Config, schemas []string, span trace.Span) error {
	logger := logging.FromContext(ctx)

	switch {
	case cfg.Fresh != "":
		if !contains(schemas, cfg.Fresh) {
			logger.Info("schema not present, nothing to drop", "schema", cfg.Fresh)
			return nil
		}
		return dropOne(ctx, cfg, cfg.Fresh, span)
	case cfg.Initial:
		return nil
	case !isTerminalFunc():
		return nil
	}

	in := bufio.NewReader(stdin)
	yes, err := confirm(in, "Drop an existing schema before loading fixtures?")
	if err != nil {
		return exitf(exitUsage, "read answer: %v", err)
	}
	if !yes {
		logger.Info("keeping existing schemas")
		return nil
	}

	candidates := selectable(schemas)
	if len(candidates) == 0 {
		return exitf(exitBadSelection, "no schemas available to drop")
	}
	name, err := chooseSchema(in, candidates)
	if err != nil {
		return exitf(exitUsage, "read selection: %v", err)
	}
	if !contains(candidates, name) {
		return exitf(exitBadSelection, "schema %q is not in the server's schema list", name)
	}
	yes, err = confirm(in, fmt.Sprintf("Really drop schema %q? This cannot be undone.", name))
	if err != nil {
		return exitf(exitUsage, "read answer: %v", err)
	}
	if !yes {
		return exitf(exitUserAborted, "aborted, schema %q left untouched", name)
	}
	return dropOne(ctx, cfg, name, span)
}

func dropOne(ctx context.Context, cfg config.Config, name string, span trace.Span) error {
	logging.FromContext(ctx).Info("dropping schema", "schema", name)
	span.AddEvent("dropping schema", trace.WithAttributes(attribute.String("schema", name)))
	if err := dropSchemaFunc(ctx, cfg, name); err != nil {
		return exitf(exitBatch, "drop schema %q: %v", name, err)
	}
	return nil
}

// loadBatch concatenates the *.sql files of dir and pipes them to one
// client invocation. An empty directory is logged and skipped.
func loadBatch(ctx context.Context, cfg config.Config, dir, stage string, span trace.Span) error {
	logger := logging.FromContext(ctx)

	files, err := fixtures.Scripts(dir)
	if err != nil {
		return exitf(exitEnvironment, "list %s scripts: %v", stage, err)
	}
	if len(files) == 0 {
		logger.Info("no SQL files, skipping", "stage", stage, "dir", dir)
		span.AddEvent(stage + " batch skipped: no SQL files")
		return nil
	}
	batch, err := fixtures.Concat(files)
	if err != nil {
		return exitf(exitEnvironment, "read %s scripts: %v", stage, err)
	}

	logger.Info("running batch", "stage", stage, "files", len(files), "bytes", len(batch))
	span.AddEvent(stage+" batch started", trace.WithAttributes(attribute.Int("files", len(files))))
	if err := runBatchFunc(ctx, cfg, batch); err != nil {
		span.RecordError(err)
		if cfg.User == "root" {
			return exitf(exitBatch, "%s batch failed: %v; check the SQL under %s", stage, err, dir)
		}
		return exitf(exitBatch, "%s batch failed: %v; user %q may lack privileges, retry with --user root", stage, err, cfg.User)
	}
	span.AddEvent(stage + " batch finished")
	return nil
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
