package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/difflib"
	"github.com/fwojciec/docmerge/merge"
	"github.com/fwojciec/docmerge/rustdoc"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	result, err := deps.Merger.Merge(deps.Ctx, merge.Request{
		Sources:    c.Sources,
		Dest:       c.Dest,
		IndexUnit:  c.IndexUnit,
		CreateDest: c.CreateDest,
		DryRun:     c.DryRun,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmerge.ErrorMessage(err))
		return err
	}

	for _, ch := range result.Changes {
		line := fmt.Sprintf("%-9s %s", ch.Status, ch.Unit)
		if ch.Source != "" {
			line += " (from " + ch.Source + ")"
		}
		if c.DryRun {
			line += " " + ch.Digest
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	if c.DryRun {
		diff, err := crateListDiff(c.Dest, result.Merged)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docmerge.ErrorMessage(err))
			return err
		}
		if diff != "" {
			fmt.Fprint(deps.Stdout, diff)
		}
		fmt.Fprintln(deps.Stdout, "Dry run: nothing was written.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Merged %d units into %s\n", len(result.Merged.Entries), c.Dest)
	if result.Linked != "" {
		fmt.Fprintf(deps.Stdout, "Linked %s to %s\n",
			filepath.Join(c.Dest, docmerge.EntryPointFile), docmerge.EntryPage(result.Linked))
	}
	return nil
}

// crateListDiff returns the diff between the destination's crate list and
// the one the merge would write.
func crateListDiff(dest string, merged *docmerge.SearchIndex) (string, error) {
	after, err := rustdoc.EncodeCrateList(merged.Names())
	if err != nil {
		return "", err
	}
	before, err := os.ReadFile(filepath.Join(dest, docmerge.CrateListFile))
	if errors.Is(err, os.ErrNotExist) {
		before = nil
	} else if err != nil {
		return "", fmt.Errorf("read crate list: %w", err)
	}
	return difflib.Unified(docmerge.CrateListFile, before, after)
}
