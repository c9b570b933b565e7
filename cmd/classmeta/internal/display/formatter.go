package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// TypesTable writes one row per class.
func TypesTable(w io.Writer, types []typeregistry.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ALIAS\tCLASS\tSUPERCLASS\tFIELDS\tABSTRACT")
	fmt.Fprintln(tw, "-----\t-----\t----------\t------\t--------")

	if len(types) == 0 {
		fmt.Fprintln(tw, "No classes registered")
	}
	for _, d := range types {
		super := d.Superclass
		if super == "" {
			super = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\n", d.Alias, d.Class, super, len(d.Fields), d.Abstract)
	}
	return tw.Flush()
}

// TypeDetail writes one class with its field layout.
func TypeDetail(w io.Writer, d typeregistry.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Alias:\t%s\n", d.Alias)
	fmt.Fprintf(tw, "Class:\t%s\n", d.Class)
	if d.Superclass != "" {
		fmt.Fprintf(tw, "Superclass:\t%s\n", d.Superclass)
	}
	fmt.Fprintf(tw, "Abstract:\t%t\n", d.Abstract)
	fmt.Fprintf(tw, "Sequence:\t%d\n", d.Sequence)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.Fields) == 0 {
		_, err := fmt.Fprintln(w, "\nNo managed fields")
		return err
	}
	fmt.Fprintln(w, "\nFields:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, f := range d.Fields {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", i, f.Name, f.Type)
	}
	return tw.Flush()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// CheckFormat rejects output formats other than table and json.
func CheckFormat(format string) error {
	switch strings.ToLower(format) {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", format)
}
