// Command pycpp is a C preprocessor that preserves source formatting:
// indentation, comments, and blank lines survive directive processing,
// macro expansion, and conditional compilation.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lubomilko/gocpp/pkg/cpp"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	includeDirs    []string
	preprocessOnly []string
	fullOutput     bool
	verbosity      int
	showVersion    bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pycpp [-i DIR...] [-p FILE...] [-f] [-v {0,1,2}] [-V] IN1 OUT1 [IN2 OUT2 ...]",
		Short: "pycpp preprocesses C source while preserving formatting",
		Long: `pycpp runs directive processing, macro expansion, conditional
compilation, and file inclusion over C source, while keeping the
indentation, comments, and blank lines of the surviving code intact.`,
		Args:          cobra.MinimumNArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(out, "pycpp "+version)
				return nil
			}
			if len(args)%2 != 0 {
				return fmt.Errorf("input/output files must be given in pairs, got %d", len(args))
			}
			if verbosity < 0 || verbosity > 2 {
				return fmt.Errorf("invalid verbosity %d, must be 0, 1, or 2", verbosity)
			}
			return runPycpp(out, errOut, args)
		},
	}
	rootCmd.Version = version
	rootCmd.SetOut(out)
	rootCmd.Flags().StringArrayVarP(&includeDirs, "include-dir", "i", nil, "add a directory to the include search list")
	rootCmd.Flags().StringArrayVarP(&preprocessOnly, "process-only", "p", nil, "preprocess a file for its macro/condition side effects, discarding its output")
	rootCmd.Flags().BoolVarP(&fullOutput, "full", "f", false, "write the verbatim output stream instead of the trimmed one")
	rootCmd.Flags().IntVarP(&verbosity, "verbosity", "v", 0, "message verbosity level (0, 1, or 2)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print the version and exit")
	return rootCmd
}

func runPycpp(out, errOut io.Writer, args []string) error {
	engine := cpp.NewEngine(cpp.EngineOptions{
		IncludeDirs: includeDirs,
		Verbosity:   verbosity,
	})
	engine.Log.SetPrinters(
		func(text string) { fmt.Fprintln(out, text) },
		func(text string, severity cpp.Severity) { fmt.Fprintf(errOut, "%s: %s\n", severity, text) },
	)

	for _, procFile := range preprocessOnly {
		engine.ProcessFile(procFile, false, false)
	}

	for i := 0; i+1 < len(args); i += 2 {
		inPath, outPath := args[i], args[i+1]
		result := engine.ProcessFile(inPath, true, fullOutput)
		if err := os.WriteFile(outPath, []byte(result), 0644); err != nil {
			return fmt.Errorf("writing output file %q: %w", outPath, err)
		}
		engine.ResetOutput()
	}
	return nil
}
