package main

import (
	"fmt"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/merge"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	problems, err := merge.Verify(deps.Ctx, deps.Indexes, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmerge.ErrorMessage(err))
		return err
	}

	if len(problems) == 0 {
		fmt.Fprintf(deps.Stdout, "%s is consistent.\n", c.Dir)
		return nil
	}

	for _, p := range problems {
		fmt.Fprintln(deps.Stdout, p)
	}
	return docmerge.Errorf(docmerge.EFORMAT, "found %d problems in %s", len(problems), c.Dir)
}
