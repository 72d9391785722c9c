package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd reports how the running binary was built.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gitpulse.",
	Long: `Show the release version along with the commit, build date and Go
runtime the binary was compiled with. Handy when filing bug reports or
checking that an upgrade actually landed.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gitpulse CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
