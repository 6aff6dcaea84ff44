package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lens-go/opticgen/errors"
	"github.com/lens-go/opticgen/logger"
)

// RerunDirectivePrefix starts every rebuild-trigger directive written to the
// build orchestration's stdout. The orchestration re-invokes the generator
// only when a named file changes.
const RerunDirectivePrefix = "opticgen:rerun-if-changed="

// Decide compares newOutput against the previously persisted file at
// outputPath and then unconditionally persists newOutput.
//
// When the previous output exists and is byte-identical, one rebuild-trigger
// directive per manifest path is written to out: the generator only needs to
// run again if a manifest changes. When the previous output is missing or
// differs, no directives are emitted and the orchestration's default
// re-run-on-any-change behavior applies. The returned bool reports whether
// rebuild suppression was declared.
func Decide(newOutput string, outputPath string, manifestPaths []string, out io.Writer) (bool, error) {
	unchanged := false

	existing, err := os.ReadFile(outputPath)
	if err == nil && string(existing) == newOutput {
		unchanged = true
		for _, manifest := range manifestPaths {
			fmt.Fprintf(out, "%s%s\n", RerunDirectivePrefix, manifest)
		}
		logger.Debugw("output unchanged, rebuild suppressed",
			logger.FieldOutput, outputPath,
			logger.FieldCount, len(manifestPaths))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return unchanged, errors.Wrapf(errors.ErrOutputWrite, "%s: %v", outputPath, err)
	}
	if err := os.WriteFile(outputPath, []byte(newOutput), 0644); err != nil {
		return unchanged, errors.Wrapf(errors.ErrOutputWrite, "%s: %v", outputPath, err)
	}

	return unchanged, nil
}
