package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"heatline/internal/heat"

	"github.com/spf13/cobra"
)

// renderOutput 是根命令的输出格式：json/csv
var renderOutput string

// addRenderFlags 添加根命令独有的输出标志。
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&renderOutput, "output", "o", "json", "Output format: json/csv")
}

// runRender 是根命令的核心逻辑：加载 profile，转换后写到 stdout。
// 任何加载错误都会在写出结果之前返回，失败时 stdout 没有输出。
func runRender(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(strings.TrimSpace(renderOutput))
	if format != "" && format != "json" && format != "csv" {
		return fmt.Errorf("unsupported output %q (supported: json, csv)", renderOutput)
	}

	runCtx, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}

	files := heat.Transform(runCtx.Profile, runCtx.Options)
	runCtx.logger.Debug("profile rendered", "files", len(files))

	out := cmd.OutOrStdout()
	if format == "csv" {
		return writeCSV(out, files)
	}
	return writeJSON(out, files)
}

// writeJSON 将结果以单个 JSON 数组输出。
// 格式：[{"file_path": ..., "stats": [[index, label, [r, g, b]], ...], "longest": ...}]
func writeJSON(out io.Writer, files []heat.RenderedFile) error {
	if files == nil {
		files = []heat.RenderedFile{}
	}
	return json.NewEncoder(out).Encode(files)
}

// writeCSV 将结果以 CSV 格式输出，每行一个 profiled line。
// 表头为 file_path,index,label,r,g,b，index 为 0-based。
func writeCSV(out io.Writer, files []heat.RenderedFile) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"file_path", "index", "label", "r", "g", "b"}); err != nil {
		return err
	}
	for _, f := range files {
		for _, line := range f.Lines {
			record := []string{
				f.FilePath,
				strconv.Itoa(line.Index),
				line.Label,
				formatChannel(line.Color.R),
				formatChannel(line.Color.G),
				formatChannel(line.Color.B),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
