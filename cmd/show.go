package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"heatline/internal/heat"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// 命令行标志变量
var (
	showNoLegend  bool   // 是否隐藏图例
	showNoSummary bool   // 是否隐藏摘要
	showTop       int    // 摘要中列出的最热行数
	showColor     string // 颜色模式：auto/always/never
)

// showCmd 实现 show 子命令，在终端中以表格形式查看每行的标签和热度。
// 用法: heatline show [project-path] [metric] [template] [-m metric] [-t template]
var showCmd = &cobra.Command{
	Use:          "show [project-path] [metric] [template]",
	Short:        "Show the per-line heatmap in the terminal",
	Args:         cobra.MaximumNArgs(3),
	SilenceUsage: true,
	RunE:         runShow,
}

// init 注册 show 命令并添加与根命令相同的加载标志。
func init() {
	addRunFlags(showCmd)
	addShowFlags(showCmd)

	rootCmd.AddCommand(showCmd)
}

// addShowFlags 添加 show 独有的显示标志。
func addShowFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&showNoLegend, "no-legend", false, "Hide the cold/hot legend")
	cmd.Flags().BoolVar(&showNoSummary, "no-summary", false, "Hide the summary and hottest lines")
	cmd.Flags().IntVar(&showTop, "top", 5, "Number of hottest lines in the summary")
	cmd.Flags().StringVar(&showColor, "color", "auto", "Color mode: auto/always/never")
}

// runShow 是 show 命令的核心逻辑。
func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	color, err := useColor(out, showColor)
	if err != nil {
		return err
	}

	runCtx, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}

	files := heat.Transform(runCtx.Profile, runCtx.Options)
	if len(files) == 0 {
		fmt.Fprintln(out, "no profiled files")
		return nil
	}

	fmt.Fprintf(out, "profile: %s (metric: %s)\n\n", runCtx.Location.ProfilePath, heat.ClampMetric(runCtx.Options.Metric))
	fmt.Fprint(out, heat.RenderTable(files, color))

	if !showNoLegend {
		steepness := runCtx.Options.Steepness
		if steepness <= 0 {
			steepness = heat.DefaultSteepness
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, heat.RenderLegend(steepness, color))
	}

	if !showNoSummary {
		fmt.Fprintln(out)
		fmt.Fprint(out, heat.RenderSummary(heat.Summarize(runCtx.Profile, showTop)))
	}
	return nil
}

// useColor 根据颜色模式决定是否输出 ANSI 颜色。
// auto 模式下仅当输出是终端时启用。
func useColor(out io.Writer, mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (supported: auto, always, never)", mode)
	}
}
