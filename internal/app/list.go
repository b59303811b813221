package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"spotwatch/internal/model"
)

// List prints the fixed selection tables: sources, currencies, weight
// units, and chart ranges.
func (a *App) List() error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "SOURCES")
	fmt.Fprintln(writer, "ID\tName\tSymbol")
	for _, s := range model.Sources {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", s.ID, s.DisplayName, s.Symbol)
	}

	fmt.Fprintln(writer, "\nCURRENCIES")
	fmt.Fprintln(writer, "Code\tSymbol")
	for _, c := range model.Currencies {
		fmt.Fprintf(writer, "%s\t%s\n", c.Code, c.Symbol)
	}

	fmt.Fprintln(writer, "\nUNITS")
	fmt.Fprintln(writer, "Code\tPer troy ounce")
	for _, u := range model.Units {
		fmt.Fprintf(writer, "%s\t%s\n", u.Code, u.Multiplier.StringFixed(9))
	}

	fmt.Fprintln(writer, "\nRANGES")
	fmt.Fprintln(writer, "Label\tWindow (days)\tSlice")
	for _, r := range model.Ranges {
		fmt.Fprintf(writer, "%s\t%d\t%s\n", r.Label, r.RequestWindowDays, r.SliceMode)
	}

	return writer.Flush()
}
