package docmerge

import "encoding/json"

// Dialect identifies the shape of the payload embedded in a search index.
type Dialect int

const (
	// DialectMap is an array of [name, record] pairs loaded into a Map.
	DialectMap Dialect = iota
	// DialectObject is a single object keyed by unit name.
	DialectObject
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectMap:
		return "map"
	case DialectObject:
		return "object"
	default:
		return "unknown"
	}
}

// Wrapper is the text surrounding the quoted payload of a search index:
// everything before the opening quote and everything after the closing one.
type Wrapper struct {
	Prefix  string
	Suffix  string
	Dialect Dialect
}

// Entry is one unit's record in a search index. The record is owned by the
// client-side search script and is kept as raw JSON.
type Entry struct {
	Name   string
	Record json.RawMessage
}

// SearchIndex is a decoded search-index artifact.
type SearchIndex struct {
	Wrapper Wrapper
	Entries []Entry
}

// Names returns the unit names in entry order.
func (idx *SearchIndex) Names() []string {
	names := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Lookup returns the record of the named unit. When a name occurs more than
// once the last occurrence wins.
func (idx *SearchIndex) Lookup(name string) (json.RawMessage, bool) {
	for i := len(idx.Entries) - 1; i >= 0; i-- {
		if idx.Entries[i].Name == name {
			return idx.Entries[i].Record, true
		}
	}
	return nil, false
}
