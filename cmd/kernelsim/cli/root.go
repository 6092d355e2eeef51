// Package cli implements the kernelsim command-line interface using Cobra,
// grounded on majorcontext-moat/cmd/moat/cli's root-command shape.
package cli

import (
	"github.com/spf13/cobra"

	kernellog "github.com/opkernel/miniker/internal/log"
)

var (
	verbose    bool
	jsonLog    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "kernelsim",
	Short: "A cooperatively-scheduled text-mode kernel, simulated in process",
	Long: `kernelsim boots a simulated x86 protected-mode kernel: a fixed task
table, a round-robin scheduler, a partitioned text-mode display, a PS/2
keyboard decoder, and a shell task with spawnable heartbeat tasks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		kernellog.Init(kernellog.Options{Verbose: verbose, JSON: jsonLog})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "boot config YAML path (defaults built in if omitted)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(selftestCmd)
}
