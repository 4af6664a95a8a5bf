package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "clint <file_or_directory> <fix:true|false>",
	Short: "C source style checker",
	Long: `clint checks C sources for pointer declaration spacing and opening
brace placement, and can rewrite the offending code in place`,
	Args: cobra.ExactArgs(2),
	RunE: runLint,
}

// main настраивает корневую команду: версия, флаги — и выполняет её.
// При ошибке выполнения процесс завершается с кодом 1.
func main() {
	rootCmd.Version = version.Version

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	rootCmd.Flags().Bool("json", false, "emit diagnostics as JSON instead of pretty output")
	rootCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	rootCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
	rootCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
