// Package commands implements the opticgen CLI.
package commands

import (
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lens-go/opticgen/config"
	"github.com/lens-go/opticgen/logger"
	"github.com/lens-go/opticgen/optics"
	"github.com/lens-go/opticgen/workspace"
)

var (
	flagOut       string
	flagPackage   string
	flagStructx   bool
	flagNamedArgs bool
	flagJSON      bool
	flagVerbosity int
	flagWatch     bool
)

// Status printers write to stderr: stdout is reserved for rebuild-trigger
// directives consumed by the build orchestration.
var (
	statusInfo    = pterm.Info.WithWriter(os.Stderr)
	statusSuccess = pterm.Success.WithWriter(os.Stderr)
	statusWarning = pterm.Warning.WithWriter(os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "opticgen [patterns]",
	Short: "Generate optics declarations from tagged workspace source",
	Long: `opticgen scans the Go source of a workspace for fields and enum-style
constants tagged for optics generation and emits one generic wrapper type
per discovered name into a generated file for the downstream optics library.

Tagging:
  struct fields    - an optic key in the field's struct tag
  const variants   - an //optic directive on the const spec
  structx literals - structx{...} / Structx{...} (enable with --structx)
  named_args funcs - a //named_args directive comment (enable with --named-args)

The generated file is written to $OPTICS_OUT_DIR/optics.go. When the output
is byte-identical to the previous run, one rebuild-trigger directive per
workspace manifest is printed to stdout so the orchestration can skip
re-running the generator until a manifest changes.

Examples:
  opticgen                        # scan ./... into $OPTICS_OUT_DIR
  opticgen --out gen ./types/...  # scan one subtree, write to gen/
  opticgen --structx --named-args # enable the sugar scanning rules
  opticgen --watch -v             # regenerate on source changes`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
	// Directives are machine-parsed; cobra noise on stdout is not
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output directory (default: $OPTICS_OUT_DIR)")
	rootCmd.Flags().StringVar(&flagPackage, "package", "", "Package clause of the generated file (default: optics)")
	rootCmd.Flags().BoolVar(&flagStructx, "structx", false, "Enable the structx/Structx literal rule")
	rootCmd.Flags().BoolVar(&flagNamedArgs, "named-args", false, "Enable the named_args function rule")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON logs")
	rootCmd.Flags().CountVarP(&flagVerbosity, "verbose", "v", "Increase verbosity (-v, -vv)")
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Re-run generation when sources change")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig merges flags over env vars, config file and defaults
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	v := config.NewViper()

	if cmd.Flags().Changed("out") {
		v.Set("out_dir", flagOut)
	}
	if cmd.Flags().Changed("package") {
		v.Set("package", flagPackage)
	}
	if cmd.Flags().Changed("structx") {
		v.Set("structx", flagStructx)
	}
	if cmd.Flags().Changed("named-args") {
		v.Set("named_args", flagNamedArgs)
	}
	if cmd.Flags().Changed("json") {
		v.Set("log.json", flagJSON)
	}
	if cmd.Flags().Changed("verbose") {
		v.Set("log.verbosity", flagVerbosity)
	}
	if len(args) > 0 {
		v.Set("patterns", args)
	}

	return config.LoadWithViper(v)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return err
	}
	defer logger.Cleanup()

	provider := &workspace.GoPackagesProvider{}

	summary, err := runOnce(cfg, provider, cmd.OutOrStdout(), flagWatch)
	if err != nil {
		return err
	}

	if flagWatch {
		return watch(cfg, provider, cmd.OutOrStdout(), summary)
	}
	return nil
}

// runOnce executes one generation pass. When watching, a failed pass is
// reported and swallowed (returning a nil summary) so the watch loop can
// retry after the next edit; otherwise the failure propagates.
func runOnce(cfg *config.Config, provider workspace.Provider, out io.Writer, watching bool) (*optics.Summary, error) {
	summary, err := optics.Run(cfg, provider, out)
	if err != nil {
		if !watching {
			return nil, err
		}
		statusWarning.Printf("Generation failed: %v\n", err)
		return nil, nil
	}
	reportSummary(summary)
	return summary, nil
}

func reportSummary(summary *optics.Summary) {
	if summary.Unchanged {
		statusInfo.Printf("Output unchanged (%d optics), rebuild suppressed for %d manifest(s)\n",
			summary.NameCount, len(summary.Manifests))
		return
	}
	statusSuccess.Printf("Generated %s (%d optics from %d files in %s)\n",
		summary.OutputPath, summary.NameCount, summary.FileCount, summary.Duration.Round(time.Millisecond))
}
