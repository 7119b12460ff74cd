package goquery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmerge"
)

// Ensure Describer implements docmerge.Describer at compile time.
var _ docmerge.Describer = (*Describer)(nil)

// Describer reads a unit's description from its landing page.
type Describer struct{}

// NewDescriber creates a new Describer.
func NewDescriber() *Describer {
	return &Describer{}
}

// Describe returns the landing page's meta description, falling back to its
// title. Returns "" when the page has neither.
func (d *Describer) Describe(ctx context.Context, root, unit string) (string, error) {
	if err := docmerge.ValidateUnitName(unit); err != nil {
		return "", err
	}

	path := filepath.Join(root, filepath.FromSlash(docmerge.EntryPage(unit)))
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", docmerge.Errorf(docmerge.ENOTFOUND, "landing page %s not found", path)
	} else if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", docmerge.Errorf(docmerge.EFORMAT, "failed to parse %s: %v", path, err)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc = collapseSpace(desc); desc != "" {
			return desc, nil
		}
	}
	return collapseSpace(doc.Find("title").First().Text()), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
