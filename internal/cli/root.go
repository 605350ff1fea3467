// Package cli implements the rolodex command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the release version, set at build time with -ldflags.
var Version = "dev"

// rootOptions holds the global flag values shared by every subcommand.
type rootOptions struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// NewRootCmd creates the top-level "rolodex" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rolodex",
		Short: "A local-first customer record manager",
		Long: `Rolodex keeps a list of customer contacts (name, email, phone, company)
in a local store and lets you add, edit, search, sort, export and import them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: ./.rolodex or the user config dir)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default: ./.rolodex-db or the user data dir)")
	root.PersistentFlags().BoolVar(&opts.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newShowCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newThemeCmd(opts),
	)
	return root
}

// Execute runs the root command with os.Args and returns the exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitCode(err)
	}
	return ExitSuccess
}
