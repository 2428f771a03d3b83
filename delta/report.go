package delta

import (
	"fmt"
	"io"

	"github.com/hazyhaar/domdiff/diff"
)

// WriteText renders a comparison result as a human-readable report:
// a header with the four counts, one line per added/removed node, and per
// modified entry the node reference followed by an indented line per change
// descriptor. Sections are printed only when they have entries.
func WriteText(w io.Writer, title string, res *diff.Result) error {
	if _, err := fmt.Fprintf(w, "===== %s =====\n", title); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d elements added\n", len(res.Added))
	fmt.Fprintf(w, "%d elements removed\n", len(res.Removed))
	fmt.Fprintf(w, "%d elements modified\n", len(res.Modified))
	fmt.Fprintf(w, "%d elements unchanged\n", len(res.Unchanged))

	if len(res.Added) > 0 {
		fmt.Fprintln(w, "----- added -----")
		for i, n := range res.Added {
			fmt.Fprintf(w, "%d. %s\n", i+1, nodeLine(n.Tag, n.XPath))
		}
	}
	if len(res.Removed) > 0 {
		fmt.Fprintln(w, "----- removed -----")
		for i, n := range res.Removed {
			fmt.Fprintf(w, "%d. %s\n", i+1, nodeLine(n.Tag, n.XPath))
		}
	}
	if len(res.Modified) > 0 {
		fmt.Fprintln(w, "----- modified -----")
		for i, m := range res.Modified {
			fmt.Fprintf(w, "%d. %s\n", i+1, nodeLine(m.Old.Tag, m.Old.XPath))
			for _, ch := range m.Changes {
				fmt.Fprintf(w, "   - %s\n", ch)
			}
		}
	}
	return nil
}

func nodeLine(tag, xpath string) string {
	if xpath == "" {
		return tag
	}
	return fmt.Sprintf("%s (%s)", tag, xpath)
}
