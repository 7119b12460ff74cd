package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/afs"
	"github.com/fwojciec/docmerge/fs"
	"github.com/fwojciec/docmerge/goquery"
	"github.com/fwojciec/docmerge/merge"
	dmslog "github.com/fwojciec/docmerge/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// DefaultConfigFile is loaded from the working directory when present.
const DefaultConfigFile = "docmerge.toml"

// Main represents the program.
type Main struct {
	// Configuration files consulted for flag defaults, lowest precedence
	// first. Set before calling Run().
	ConfigPaths []string

	// Services for end-to-end testing. Defaults are used when nil.
	Indexes   docmerge.IndexStore
	Uniter    docmerge.Uniter
	Linker    docmerge.Linker
	Describer docmerge.Describer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{DefaultConfigFile},
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	var helped bool
	parser, err := kong.New(cli,
		kong.Name("docmerge"),
		kong.Description("Merge rustdoc sites into one site with a single search index."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { helped = true }), // Don't exit on help
		kong.Configuration(TOML, m.ConfigPaths...),
		kong.Vars{"default_source": docmerge.DefaultSource},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return docmerge.Errorf(docmerge.EINVALID, "no command specified. Run 'docmerge --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if helped {
		return nil
	}
	if err != nil {
		return docmerge.Errorf(docmerge.EINVALID, "%s", err)
	}

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger
	deps.Indexes = dmslog.NewLoggingIndexStore(orDefault[docmerge.IndexStore](m.Indexes, fs.NewIndexStore()), logger)
	deps.Describer = dmslog.NewLoggingDescriber(orDefault[docmerge.Describer](m.Describer, goquery.NewDescriber()), logger)
	deps.Merger = &merge.Merger{
		Indexes: deps.Indexes,
		Uniter:  dmslog.NewLoggingUniter(orDefault[docmerge.Uniter](m.Uniter, afs.NewUniter()), logger),
		Linker:  dmslog.NewLoggingLinker(orDefault[docmerge.Linker](m.Linker, fs.NewLinker()), logger),
	}

	return kongCtx.Run(deps)
}

// newLogger returns a logger writing to w through a charmbracelet/log
// handler. Only warnings and errors are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "docmerge",
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

func orDefault[T any](v, def T) T {
	if any(v) == nil {
		return def
	}
	return v
}

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch docmerge.ErrorCode(err) {
	case docmerge.EINVALID:
		return 2
	case docmerge.EFORMAT:
		return 3
	case docmerge.ENOTFOUND:
		return 4
	default:
		return 1
	}
}
