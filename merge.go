package docmerge

import (
	"bytes"
	"slices"
)

// Merge folds the search indexes of several sites into one. existing is the
// destination's current index and may be nil; it is applied first, then each
// source in order, so a later source replaces the record of any unit it
// shares with an earlier source or with existing.
//
// At least two indexes are required, counting existing. The result holds
// every unit exactly once, sorted by name, and carries the wrapper of the
// last source.
func Merge(existing *SearchIndex, sources ...*SearchIndex) (*SearchIndex, error) {
	inputs := len(sources)
	if existing != nil {
		inputs++
	}
	if inputs < 2 {
		return nil, Errorf(EINVALID, "at least two sources are required unless the destination already has a search index")
	}

	records := make(map[string][]byte)
	fold := func(idx *SearchIndex) {
		for _, e := range idx.Entries {
			records[e.Name] = e.Record
		}
	}

	wrapper := Wrapper{}
	if existing != nil {
		fold(existing)
		wrapper = existing.Wrapper
	}
	for _, src := range sources {
		fold(src)
		wrapper = src.Wrapper
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)

	merged := &SearchIndex{
		Wrapper: wrapper,
		Entries: make([]Entry, 0, len(names)),
	}
	for _, name := range names {
		merged.Entries = append(merged.Entries, Entry{
			Name:   name,
			Record: bytes.Clone(records[name]),
		})
	}
	return merged, nil
}
