package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/rustdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	idx, err := deps.Indexes.ReadIndex(deps.Ctx, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmerge.ErrorMessage(err))
		return err
	}

	if len(idx.Entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No units found.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range idx.Entries {
		summary := rustdoc.Summary(e.Record)
		if summary == "" {
			desc, err := deps.Describer.Describe(deps.Ctx, c.Dir, e.Name)
			// Missing landing pages are reported by check; list just shows nothing.
			if err != nil && docmerge.ErrorCode(err) != docmerge.ENOTFOUND {
				fmt.Fprintf(deps.Stderr, "error: %s\n", docmerge.ErrorMessage(err))
				return err
			}
			summary = desc
		}
		fmt.Fprintf(w, "%s\t%s\n", e.Name, summary)
	}
	return w.Flush()
}
