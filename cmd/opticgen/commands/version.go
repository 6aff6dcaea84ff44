package commands

import (
	"github.com/spf13/cobra"

	"github.com/lens-go/opticgen/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		cmd.Println(info.String())
		cmd.Printf("  go:       %s\n", info.GoVersion)
		cmd.Printf("  platform: %s\n", info.Platform)
	},
}
