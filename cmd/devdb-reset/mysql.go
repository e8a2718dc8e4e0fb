package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"devdb-reset/internal/config"
)

var execCommandContext = exec.CommandContext

// clientArgs are the connection arguments shared by every client
// invocation. The password travels via MYSQL_PWD instead of argv so it
// never shows up in the process list.
func clientArgs(cfg config.Config) []string {
	return []string{
		"--host", cfg.Host,
		"--port", strconv.Itoa(cfg.Port),
		"--user", cfg.User,
	}
}

func clientEnv(cfg config.Config) []string {
	return append(os.Environ(), "MYSQL_PWD="+cfg.Password)
}

// listSchemas fetches the live schema list. It doubles as the
// connectivity check: it is the first and cheapest statement the tool
// sends.
func listSchemas(ctx context.Context, cfg config.Config) ([]string, error) {
	args := append(clientArgs(cfg), "--batch", "--skip-column-names", "-e", "SHOW DATABASES")
	cmd := execCommandContext(ctx, cfg.MySQLBin, args...)
	cmd.Env = clientEnv(cfg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, clientError(err, &stderr)
	}

	var schemas []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			schemas = append(schemas, s)
		}
	}
	return schemas, nil
}

func dropSchema(ctx context.Context, cfg config.Config, name string) error {
	stmt := fmt.Sprintf("DROP DATABASE `%s`", name)
	cmd := execCommandContext(ctx, cfg.MySQLBin, append(clientArgs(cfg), "-e", stmt)...)
	cmd.Env = clientEnv(cfg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return clientError(err, &stderr)
	}
	return nil
}

// runBatch pipes one concatenated SQL batch to a single client process
// and blocks until it exits. The client's exit status is the only
// success signal consumed here.
func runBatch(ctx context.Context, cfg config.Config, batch []byte) error {
	cmd := execCommandContext(ctx, cfg.MySQLBin, clientArgs(cfg)...)
	cmd.Env = clientEnv(cfg)
	cmd.Stdin = bytes.NewReader(batch)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return clientError(err, &stderr)
	}
	return nil
}

// clientError folds the client's stderr tail into the error so the
// server's own message survives.
func clientError(err error, stderr *bytes.Buffer) error {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return err
	}
	if i := strings.LastIndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return fmt.Errorf("%w: %s", err, msg)
}
