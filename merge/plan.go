package merge

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docmerge"
)

// Status describes what a merge does to one unit.
type Status string

// Status constants for Change.
const (
	StatusAdded     Status = "added"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
)

// Change reports the fate of one unit in a merge.
type Change struct {
	Unit   string
	Status Status
	// Source is the site that supplied the unit's record, "" when the
	// record was kept from the destination.
	Source string
	// Digest identifies the merged record, so a dry run shows which
	// version of a unit would be written.
	Digest string
}

// Plan compares the destination's previous index with the merged one.
// sources and indexes are parallel slices in merge order.
func Plan(previous *docmerge.SearchIndex, sources []string, indexes []*docmerge.SearchIndex, merged *docmerge.SearchIndex) []Change {
	owner := make(map[string]string)
	for i, idx := range indexes {
		for _, name := range idx.Names() {
			owner[name] = sources[i]
		}
	}

	changes := make([]Change, 0, len(merged.Entries))
	for _, e := range merged.Entries {
		c := Change{Unit: e.Name, Source: owner[e.Name], Status: StatusAdded, Digest: Digest(e.Record)}
		if previous != nil {
			if old, ok := previous.Lookup(e.Name); ok {
				c.Status = StatusUpdated
				if bytes.Equal(old, e.Record) {
					c.Status = StatusUnchanged
				}
			}
		}
		changes = append(changes, c)
	}
	return changes
}

// Digest returns a short content hash of a record.
func Digest(record []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(record))
}
