// Package docmerge combines independently generated rustdoc sites into a
// single site with one search index, one crate listing and one entry point.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., afs/, goquery/, fs/).
package docmerge

import "context"

// Well-known file names at the root of a rustdoc site.
const (
	SearchIndexFile = "search-index.js"
	CrateListFile   = "crates.js"
	EntryPointFile  = "index.html"
)

// DefaultSource is the directory `cargo doc` writes to.
const DefaultSource = "./target/doc"

// UniteStats reports what a Uniter copied.
type UniteStats struct {
	Dirs  int
	Files int
}

// Uniter copies the page trees of one documentation site into another.
type Uniter interface {
	// Unite copies every directory and every rendered page at the root of
	// src into dest, overwriting files that already exist.
	// Returns ENOTFOUND if src or dest does not exist.
	Unite(ctx context.Context, src, dest string) (UniteStats, error)
}

// IndexStore reads and writes the generated artifacts of a site.
type IndexStore interface {
	// ReadIndex decodes the search index found at the root of a site.
	// Returns ENOTFOUND if the site has no search index and EFORMAT if it
	// cannot be decoded.
	ReadIndex(ctx context.Context, root string) (*SearchIndex, error)

	// ReadCrateList returns the unit names listed by the site's crate list.
	// Returns ENOTFOUND if the site has no crate list.
	ReadCrateList(ctx context.Context, root string) ([]string, error)

	// WriteIndex replaces the site's search index and crate list with the
	// contents of idx.
	WriteIndex(ctx context.Context, root string, idx *SearchIndex) error
}

// Linker points the entry point of a site at one unit's landing page.
type Linker interface {
	Link(ctx context.Context, root, unit string) error
}

// Describer returns a short human-readable description of a unit.
type Describer interface {
	// Describe reads the unit's landing page under root.
	// Returns ENOTFOUND if the landing page does not exist.
	Describe(ctx context.Context, root, unit string) (string, error)
}
