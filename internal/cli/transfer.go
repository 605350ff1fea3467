package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/internal/store"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all customers to a file",
		Long: `Export writes every customer as a pretty-printed JSON array, or as CSV
with --format csv. The file is named crm-customers-<date>.<format> in the
current directory unless --out is given; --out - writes to stdout.

Example:
  rolodex export
  rolodex export --format csv --out customers.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != store.FormatJSON && format != store.FormatCSV {
				return userError(fmt.Sprintf("unknown format %q (valid: json, csv)", format), nil)
			}
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.dispatch(cmd, session.Export{Format: format})
				if err != nil {
					return err
				}
				if out == "-" {
					_, err := cmd.OutOrStdout().Write(res.Export)
					return err
				}

				path := out
				if path == "" {
					path = res.FileName
				}
				if err := os.WriteFile(path, res.Export, 0o644); err != nil {
					return sysError("write export", err)
				}
				if abs, err := filepath.Abs(path); err == nil {
					path = abs
				}
				res.FileName = path
				if a.opts.jsonMode {
					return a.out.notice(res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Notice.Message, path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", store.FormatJSON, "export format (json|csv)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all customers with a JSON export",
		Long: `Import replaces every stored customer with the records in file, which
must be a JSON array as written by export. Records are not validated. A
file that is not a JSON array is rejected and nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.dispatch(cmd, session.Import{Path: args[0]})
				if err != nil {
					return err
				}
				return a.out.notice(res)
			})
		},
	}
}
