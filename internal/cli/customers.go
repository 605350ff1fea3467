package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// customerFlags are the contact fields shared by add and update.
type customerFlags struct {
	name, email, phone, company string
}

func (f *customerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "customer name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.company, "company", "", "company name")
}

// apply overlays the flags the user actually set onto c.
func (f *customerFlags) apply(cmd *cobra.Command, c types.Customer) types.Customer {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("name", &c.Name, f.name)
	set("email", &c.Email, f.email)
	set("phone", &c.Phone, f.phone)
	set("company", &c.Company, f.company)
	return c
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, userError(fmt.Sprintf("invalid index %q", arg), nil)
	}
	return i, nil
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f customerFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Long: `Add appends a customer. Every field is required and the email must look
like name@domain.tld.

Example:
  rolodex add --name "Ada Lovelace" --email ada@example.com --phone 555-0100 --company "Analytical Engines"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.dispatch(cmd, session.Add{Customer: f.apply(cmd, types.Customer{})})
				if err != nil {
					return err
				}
				return a.out.notice(res)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var f customerFlags
	cmd := &cobra.Command{
		Use:   "update <index>",
		Short: "Edit a customer",
		Long: `Update changes the fields given as flags on the customer at index, as
shown by list. Other fields keep their values.

Example:
  rolodex update 2 --email ada@newmail.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.dispatch(cmd, session.Edit{Index: index})
				if err != nil {
					return err
				}
				res, err = a.dispatch(cmd, session.Save{Customer: f.apply(cmd, *res.Record)})
				if err != nil {
					return err
				}
				return a.out.notice(res)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>...",
		Short: "Delete one or more customers",
		Long: `Delete removes the customers at the given indices. Several indices are
removed together: if any is out of range nothing is deleted.

Example:
  rolodex delete 3
  rolodex delete 1 4 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices := make([]int, len(args))
			for i, arg := range args {
				index, err := parseIndex(arg)
				if err != nil {
					return err
				}
				indices[i] = index
			}
			return withApp(cmd, opts, func(a *app) error {
				if len(indices) == 1 {
					res, err := a.dispatch(cmd, session.Delete{Index: indices[0]})
					if err != nil {
						return err
					}
					return a.out.notice(res)
				}
				for _, index := range indices {
					if _, err := a.dispatch(cmd, session.Select{Index: index, On: true}); err != nil {
						return err
					}
				}
				res, err := a.dispatch(cmd, session.BulkDelete{})
				if err != nil {
					return err
				}
				return a.out.notice(res)
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.dispatch(cmd, session.View{Index: index})
				if err != nil {
					return err
				}
				return a.out.customer(index, *res.Record)
			})
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var search, sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long: `List prints customers in insertion order, optionally filtered and sorted.

Search matches name, email or company, ignoring case. Sort takes
field-direction where field is name, email, phone or company and
direction is asc or desc.

Example:
  rolodex list
  rolodex list --search acme --sort name-desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sortCmd session.Sort
			if sortBy != "" {
				field, dir, err := types.ParseSort(sortBy)
				if err != nil {
					return userError(fmt.Sprintf("invalid sort %q", sortBy), err)
				}
				sortCmd = session.Sort{Field: field, Direction: dir}
			}
			return withApp(cmd, opts, func(a *app) error {
				if _, err := a.dispatch(cmd, sortCmd); err != nil {
					return err
				}
				res, err := a.dispatch(cmd, session.Search{Term: search})
				if err != nil {
					return err
				}
				if len(res.Rows) == 0 && !a.opts.jsonMode {
					fmt.Fprintln(cmd.ErrOrStderr(), res.Notice.Message)
					return nil
				}
				return a.out.rows(res.Rows)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name, email or company")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort as field-direction, e.g. name-asc")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show customer totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				stats := a.store.Stats()
				if a.opts.jsonMode {
					return a.out.encode(stats)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Total customers:  %d\nUnique companies: %d\n", stats.Total, stats.UniqueCompanies)
				return nil
			})
		},
	}
}
