package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/query"
)

// List prints every application, optionally narrowed to one status given
// as argument (e.g. "list offer received").
func (a *App) List(ctx context.Context, args []string) error {
	status, err := query.ParseStatusFilter(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return a.show("", status)
}

// Search filters by text in company name or job title and by status. The
// text may be given inline ("search acme"); otherwise both criteria are
// prompted for.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.show(strings.Join(args, " "), query.AllStatuses)
	}

	text, err := getSimpleText(a.reader, "Search company or job title (empty for any)", a.out)
	if err != nil {
		return err
	}
	s, err := getSimpleText(a.reader, "Status (empty or 'all' for any)", a.out)
	if err != nil {
		return err
	}
	status, err := query.ParseStatusFilter(s)
	if err != nil {
		return err
	}
	return a.show(text, status)
}

// Stats prints the counters over all applications.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.session.Stats()
	if err != nil {
		return err
	}
	printStats(a.out, st)
	return nil
}

func (a *App) show(search string, status models.Status) error {
	matches, err := a.session.Filter(search, status)
	if err != nil {
		return err
	}
	st, err := a.session.Stats()
	if err != nil {
		return err
	}

	printStats(a.out, st)
	if len(matches) == 0 {
		if st.Total == 0 {
			fmt.Fprintln(a.out, "No job applications yet. Add your first one with 'add'.")
		} else {
			fmt.Fprintln(a.out, "No job applications match.")
		}
		return nil
	}
	printTable(a.out, matches)
	return nil
}

func printStats(w io.Writer, st query.Stats) {
	fmt.Fprintf(w, "Total: %d  Interviews: %d  Offers: %d  Pending: %d\n",
		st.Total, st.Interviews, st.Offers, st.Pending)
}

// printTable numbers rows by their position in the full collection, which
// is what edit and delete expect.
func printTable(w io.Writer, matches []query.Match) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOMPANY\tJOB TITLE\tSTATUS\tAPPLIED\tPACKAGE")
	for _, m := range matches {
		app := m.Application
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.Index+1, app.CompanyName, app.JobTitle, app.Status, app.AppliedDate, app.Package)
	}
	_ = tw.Flush()
}
