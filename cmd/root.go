package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// verbose 打开调试日志（输出到 stderr）。
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "heatline [project-path] [metric] [template]",
	Short: "Per-line profile heatmap for editor gutters",
	Long: `Convert a per-line execution profile (stats.prof) into per-line labels
and red/green colors, printed as JSON for an editor gutter.

Arguments mirror the editor plugin invocation:
  project-path  project directory, or any file inside the project (default ".")
  metric        1 - calls, 2 - exec time, 3 - total time (clamped to 1-3)
  template      label template, tokens: %calls, %exec_time, total_time

Flags must come before project-path; everything after it is taken literally.`,
	Example: `  heatline ~/code/app 3 "[%calls] %exec_time"
  heatline -m 1 -t "%calls calls" ~/code/app/main.py
  heatline -o csv .
  heatline . -1 "- %calls"`,
	Args:         cobra.MaximumNArgs(3),
	SilenceUsage: true,
	RunE:         runRender,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	addRunFlags(rootCmd)
	addRenderFlags(rootCmd)
}
