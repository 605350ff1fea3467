package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/rolodex/internal/session"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// printer writes command output as text tables or JSON.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, jsonMode bool) *printer {
	return &printer{w: w, json: jsonMode}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// rows prints a customer view. Text mode is a table keyed by store index.
func (p *printer) rows(rows []types.Entry) error {
	if p.json {
		return p.encode(rows)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tEMAIL\tPHONE\tCOMPANY\tCREATED")
	for _, r := range rows {
		c := r.Customer
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.Index, c.Name, c.Email, c.Phone, c.Company, created(c.CreatedAt))
	}
	return tw.Flush()
}

// customer prints one record.
func (p *printer) customer(index int, c types.Customer) error {
	if p.json {
		return p.encode(types.Entry{Index: index, Customer: c})
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Index:\t%d\n", index)
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", c.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", c.Phone)
	fmt.Fprintf(tw, "Company:\t%s\n", c.Company)
	fmt.Fprintf(tw, "Created:\t%s\n", created(c.CreatedAt))
	fmt.Fprintf(tw, "Status:\t%s\n", c.Status)
	return tw.Flush()
}

// notice prints the outcome of a mutation.
func (p *printer) notice(res session.Result) error {
	if p.json {
		return p.encode(res)
	}
	_, err := fmt.Fprintln(p.w, res.Notice.Message)
	return err
}

func created(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}
