package heat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const colorReset = "\033[0m"

// legendSteps 是图例中展示的相对热度（value / max）。
var legendSteps = []float64{0, 0.05, 0.1, 0.2, 0.4, 1}

// RenderTable 将渲染结果输出为终端表格。
// 每个文件先输出路径，再逐行输出 "行号 │ 色块 标签"，标签按文件内最长标签对齐。
// color 为 false 时不输出 ANSI 颜色代码。
func RenderTable(files []RenderedFile, color bool) string {
	var b strings.Builder

	for i, f := range files {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.FilePath)
		b.WriteByte('\n')

		if len(f.Lines) == 0 {
			b.WriteString("  (no profiled lines)\n")
			continue
		}

		width := utf8.RuneCountInString(f.Longest)
		numWidth := lineNumberWidth(f.Lines)
		for _, line := range f.Lines {
			fmt.Fprintf(&b, "  %*d │ ", numWidth, line.Index+1)
			b.WriteString(swatch(line.Color, color))
			b.WriteByte(' ')
			b.WriteString(line.Label)
			if pad := width - utf8.RuneCountInString(line.Label); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderLegend 渲染冷热图例，steepness 与渲染时使用的值一致。
func RenderLegend(steepness float64, color bool) string {
	var b strings.Builder

	b.WriteString("Cold ")
	for _, step := range legendSteps {
		b.WriteString(swatch(ColorFor(step, 1, steepness), color))
		b.WriteByte(' ')
	}
	b.WriteString("Hot\n")
	return b.String()
}

// swatch 返回一个使用 24 位真彩色背景的色块。
// 不使用颜色时按热度输出不同字符，保证在纯文本中仍可区分。
func swatch(c RGB, color bool) string {
	if !color {
		return heatGlyph(c)
	}
	return "\033[48;2;" + channel(c.R) + ";" + channel(c.G) + ";" + channel(c.B) + "m  " + colorReset
}

// heatGlyph 根据红色分量选择字符。
func heatGlyph(c RGB) string {
	switch {
	case c.R < 64:
		return "░░"
	case c.R < 128:
		return "▒▒"
	case c.R < 192:
		return "▓▓"
	default:
		return "██"
	}
}

func channel(v float64) string {
	n := int(v + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return strconv.Itoa(n)
}

func lineNumberWidth(lines []RenderedLine) int {
	width := 1
	for _, line := range lines {
		if w := len(strconv.Itoa(line.Index + 1)); w > width {
			width = w
		}
	}
	return width
}
