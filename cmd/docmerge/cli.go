package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/merge"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Indexes   docmerge.IndexStore
	Describer docmerge.Describer
	Merger    *merge.Merger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag defaults from a TOML file" placeholder:"FILE"`
	Verbose bool            `short:"v" help:"Log every step"`

	Merge MergeCmd `cmd:"" help:"Merge documentation sites into a destination site"`
	List  ListCmd  `cmd:"" help:"List the units of a merged site"`
	Check CheckCmd `cmd:"" help:"Check a merged site for inconsistencies"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Sources    []string `arg:"" optional:"" name:"source" help:"Documentation directories to merge, later ones win (default: ${default_source})"`
	Dest       string   `short:"d" env:"DOCMERGE_DEST" help:"Destination directory"`
	IndexUnit  string   `short:"i" name:"index-unit" aliases:"index-crate" env:"DOCMERGE_INDEX_UNIT" help:"Unit whose landing page becomes the site's index.html"`
	CreateDest bool     `help:"Create the destination directory if it does not exist"`
	DryRun     bool     `short:"n" help:"Show what would change without writing anything"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Dir string `arg:"" help:"Merged site directory"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Dir string `arg:"" help:"Merged site directory"`
}
