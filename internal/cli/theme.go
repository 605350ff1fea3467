package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", string(types.ThemeLight), string(types.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if len(args) == 0 {
					theme, err := a.store.Theme(cmd.Context())
					if err != nil {
						return sysError("load theme", err)
					}
					if a.opts.jsonMode {
						return a.out.encode(map[string]types.Theme{"theme": theme})
					}
					fmt.Fprintln(cmd.OutOrStdout(), theme)
					return nil
				}

				var c session.Command = session.SetTheme{Theme: types.Theme(args[0])}
				if args[0] == "toggle" {
					c = session.ToggleTheme{}
				}
				res, err := a.dispatch(cmd, c)
				if err != nil {
					return err
				}
				return a.out.notice(res)
			})
		},
	}
}
