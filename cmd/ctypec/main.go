// Command ctypec inspects the C type-representation engine's built-in
// sample catalog: printing declarator syntax, computing ABI layouts against
// a chosen target profile, running those computations in parallel over the
// whole catalog, and exporting/importing the results as a small disk cache.
// Structured the way the teacher's cmd/surge root command is: one cobra.Command
// per verb, global flags on the root, registered in main.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"

	"ctypes/internal/version"
)

var caseFolder = cases.Fold()

var traceCleanup func()

var rootCmd = &cobra.Command{
	Use:   "ctypec",
	Short: "C type representation and layout toolkit",
	Long:  `ctypec inspects the sample type catalog: declarator printing, ABI layout, and batch/cache tooling.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		foldFlag(cmd, "target")
		foldFlag(cmd, "dialect")
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			return err
		}
		resolveColorMode(colorMode)

		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if traceCleanup != nil {
			traceCleanup()
			traceCleanup = nil
		}
		return nil
	},
}

// foldFlag case-folds a persistent string flag in place (Unicode-aware,
// unlike strings.ToLower) so "--target X86_64-Linux-GNU" matches the
// registry's lowercase triples the same way golang.org/x/text/cases folds
// it for comparison elsewhere in the toolchain.
func foldFlag(cmd *cobra.Command, name string) {
	f := cmd.Root().PersistentFlags().Lookup(name)
	if f == nil {
		return
	}
	folded := caseFolder.String(f.Value.String())
	if folded != f.Value.String() {
		_ = f.Value.Set(folded)
	}
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(sizeofCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("target", "x86_64-linux-gnu", "target triple profile")
	rootCmd.PersistentFlags().String("dialect", "", "override the profile's compiler dialect (gcc|clang|msvc)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("profile-file", "", "load the target/dialect profile from a TOML file instead of --target's built-in registry")

	rootCmd.PersistentFlags().String("trace", "", "write a trace of layout/builder events to path (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring tracer capacity in events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
