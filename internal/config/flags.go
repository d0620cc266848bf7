package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// args are filtered with flagx.FilterArgs so unrelated flags (such as -c)
// do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-dsn", "-p", "-l", "-t"})

	fs := flag.NewFlagSet("jobkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the file backend")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend: file, s3, sqlite, postgres")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN for sqlite/postgres")
	fs.StringVar(&cfg.PasswordScheme, "p", cfg.PasswordScheme, "password scheme for new accounts")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.StorageTimeout, "t", cfg.StorageTimeout, "storage call timeout")

	return fs.Parse(args)
}
