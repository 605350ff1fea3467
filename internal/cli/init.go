package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/config"
	"github.com/mesh-intelligence/rolodex/internal/kv"
	"github.com/mesh-intelligence/rolodex/internal/paths"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize rolodex storage",
		Long: `Init creates the configuration directory (./.rolodex unless overridden)
with a default config.yaml, then creates the data directory and prepares
the configured backend. Running it again keeps an existing config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, dataDirFlag, err := initDirs(opts)
			if err != nil {
				return sysError("resolve directories", err)
			}

			defaults := config.Defaults()
			defaults.DataDir = dataDirFlag
			if _, err := config.WriteDefault(configDir, defaults); err != nil {
				return sysError("write config", err)
			}
			settings, err := config.Load(configDir)
			if err != nil {
				return sysError("load config", err)
			}

			dataDir, err := paths.ResolveDataDir(dataDirFlag, settings.DataDir)
			if err != nil {
				return sysError("resolve data directory", err)
			}
			if dataDirFlag == "" && settings.DataDir == "" && os.Getenv(paths.EnvDataDir) == "" {
				if dataDir, err = paths.LocalDataDir(); err != nil {
					return sysError("resolve data directory", err)
				}
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return sysError("create data directory", err)
			}

			logger, err := settings.NewLogger(opts.verbose)
			if err != nil {
				return sysError("configure logging", err)
			}
			backend, err := kv.Open(cmd.Context(), settings.KV(dataDir), logger)
			if err != nil {
				return sysError("initialize storage", err)
			}
			if err := backend.Close(); err != nil {
				return sysError("finalize storage", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rolodex initialized\nconfig: %s\ndata:   %s\n", configDir, dataDir)
			return nil
		},
	}
}
