package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bluby/brew-parser/internal/formula"
)

const (
	// Description column widths keep the tables readable in a terminal;
	// the 4-column updated table gets a slightly narrower one.
	descWidth        = 60
	updatedDescWidth = 50
)

// Tables renders a diff as up to three labeled tables (new, removed,
// updated formulas) followed by a one-line numeric summary. Empty buckets
// are skipped entirely; the summary line is always written.
func Tables(w io.Writer, diff *formula.DiffResult) error {
	if len(diff.Added) > 0 {
		fmt.Fprintln(w, "New Formulas")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Name\tVersion\tDescription")
		for _, f := range diff.Added {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, versionOrNA(f.StableVersion()), truncate(descOrDefault(f.Desc), descWidth))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing added table: %w", err)
		}
		fmt.Fprintln(w)
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintln(w, "Removed Formulas")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Name\tVersion\tDescription")
		for _, f := range diff.Removed {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, versionOrNA(f.StableVersion()), truncate(descOrDefault(f.Desc), descWidth))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing removed table: %w", err)
		}
		fmt.Fprintln(w)
	}

	if len(diff.Updated) > 0 {
		fmt.Fprintln(w, "Updated Formulas")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Name\tOld Version\tNew Version\tDescription")
		for _, f := range diff.Updated {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				f.Name, versionOrNA(f.OldVersion), versionOrNA(f.NewVersion), truncate(descOrDefault(f.Desc), updatedDescWidth))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing updated table: %w", err)
		}
		fmt.Fprintln(w)
	}

	added, removed, updated := diff.Summary()
	fmt.Fprintf(w, "Summary: %d added, %d removed, %d updated\n", added, removed, updated)
	return nil
}

func versionOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func descOrDefault(desc string) string {
	if desc == "" {
		return "No description"
	}
	return desc
}

// truncate shortens s to at most max runes, appending an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
