// Command ledgerctl administers a ledger database: migrations, user
// provisioning, dev tokens and offline balance and summary reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/sharedledger/internal/config"
	"github.com/mmynk/sharedledger/internal/storage/sqlite"
	"github.com/mmynk/sharedledger/pkg/logging"
)

var Version = "dev"

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries the settings shared by every subcommand.
type cli struct {
	cfg    *config.Config
	dbPath string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate a shared-expense ledger database",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cfg.LogLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.dbPath, "db", cfg.DBPath, "SQLite database path")

	rootCmd.AddCommand(c.migrateCmd())
	rootCmd.AddCommand(c.userCmd())
	rootCmd.AddCommand(c.tokenCmd())
	rootCmd.AddCommand(c.oweOwedCmd())
	rootCmd.AddCommand(c.summaryCmd())

	return rootCmd
}

func (c *cli) openStore() (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(c.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.dbPath, err)
	}
	return store, nil
}
