// Package optics wires the generator pipeline: workspace aggregation,
// source scanning, canonicalization, emission and the incremental rebuild
// decision, strictly in that order.
//
// A run either completes or aborts; the persisted output is only touched
// after the full pipeline has produced a complete rendering, so partial runs
// never leave partial output behind.
package optics

import (
	"io"
	"path/filepath"
	"time"

	"github.com/lens-go/opticgen/config"
	"github.com/lens-go/opticgen/gen"
	"github.com/lens-go/opticgen/logger"
	"github.com/lens-go/opticgen/scan"
	"github.com/lens-go/opticgen/workspace"
)

// Summary describes one completed generator run
type Summary struct {
	// Manifests are the rebuild-trigger keys of the scanned members
	Manifests []string

	// SourceFiles are the paths scanned, in aggregation order
	SourceFiles []string

	// FileCount is the number of source files scanned
	FileCount int

	// NameCount is the number of declarations generated
	NameCount int

	// OutputPath is where the generated file was persisted
	OutputPath string

	// Unchanged reports whether the output matched the previous run and
	// rebuild suppression was declared
	Unchanged bool

	// Duration is the wall-clock time of the run
	Duration time.Duration
}

// Run executes one full generation pass. Rebuild-trigger directives are
// written to out, which in the CLI is stdout.
func Run(cfg *config.Config, provider workspace.Provider, out io.Writer) (*Summary, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manifests, sources, err := workspace.Aggregate(provider, cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var opts []scan.Option
	if cfg.Structx {
		opts = append(opts, scan.WithStructx())
	}
	if cfg.NamedArgs {
		opts = append(opts, scan.WithNamedArgs())
	}
	scanner := scan.New(opts...)

	names := scan.NewNameSet()
	for _, src := range sources {
		if err := scanner.ScanFile(src.Path, src.Text, names); err != nil {
			return nil, err
		}
	}

	canonical := gen.Canonicalize(names)
	output := gen.Render(cfg.Package, canonical)
	outputPath := filepath.Join(cfg.OutDir, config.GeneratedFileName)

	unchanged, err := gen.Decide(output, outputPath, manifests, out)
	if err != nil {
		return nil, err
	}

	sourcePaths := make([]string, 0, len(sources))
	for _, src := range sources {
		sourcePaths = append(sourcePaths, src.Path)
	}

	summary := &Summary{
		Manifests:   manifests,
		SourceFiles: sourcePaths,
		FileCount:   len(sources),
		NameCount:   len(canonical),
		OutputPath:  outputPath,
		Unchanged:   unchanged,
		Duration:    time.Since(start),
	}

	logger.Infow("generation complete",
		logger.FieldFileCount, summary.FileCount,
		logger.FieldNameCount, summary.NameCount,
		logger.FieldOutput, summary.OutputPath,
		logger.FieldDurationMS, summary.Duration.Milliseconds())

	return summary, nil
}
