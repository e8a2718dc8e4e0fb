package main

import (
	"context"

	"github.com/spf13/cobra"

	"devdb-reset/internal/config"
	"devdb-reset/internal/logging"
)

// newRootCmd constructs the root command for the reset CLI.
func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()

	cmd := &cobra.Command{
		Use:   "devdb-reset",
		Short: "Rebuild a local MySQL development database from SQL fixtures",
		Long: `devdb-reset wipes and rebuilds a local development database by
replaying a directory of "create" SQL fixtures followed by a directory
of "insert" fixtures through the mysql client. Configuration can be
supplied via flags or environment variables; missing credentials are
prompted for on interactive terminals.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.PasswordSet = cfg.PasswordSet || cmd.Flags().Changed("password")
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Fresh, "fresh", "", "Drop schema NAME before loading fixtures, without prompting")
	cmd.Flags().BoolVar(&cfg.Initial, "initial", false, "Never drop a schema and skip the prompt (first-time setup)")
	cmd.Flags().BoolVar(&cfg.NoInsert, "no-insert", false, "Run only the create scripts, skip the insert directory")
	cmd.Flags().StringVar(&cfg.User, "user", cfg.User, "MySQL admin user (env: DEVDB_USER)")
	cmd.Flags().StringVar(&cfg.Password, "password", cfg.Password, "MySQL password; prompted for when omitted (env: MYSQL_PWD)")
	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "MySQL host (env: DEVDB_HOST)")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "MySQL port (env: DEVDB_PORT)")
	cmd.Flags().StringVar(&cfg.BaseDir, "dir", cfg.BaseDir, "Directory to search for fixture layouts (env: DEVDB_DIR)")
	cmd.Flags().StringVar(&cfg.MySQLBin, "mysql-bin", cfg.MySQLBin, "Path to the mysql client binary (env: MYSQL_BIN)")
	cmd.Flags().StringVar(&cfg.OTELEndpoint, "otel-endpoint", cfg.OTELEndpoint, "OpenTelemetry collector endpoint, empty disables tracing (env: OTEL_EXPORTER_OTLP_ENDPOINT)")
	cmd.MarkFlagsMutuallyExclusive("fresh", "initial")

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	ctx := logging.NewContext(context.Background(), logging.New())
	return newRootCmd().ExecuteContext(ctx)
}
