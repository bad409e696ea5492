package heat

import (
	"fmt"
	"sort"
	"strings"

	"heatline/internal/profile"
)

// HotLine 是排行榜中的一行。
type HotLine struct {
	FilePath  string
	Line      int // 1-based
	Calls     int
	TotalTime float64 // seconds
}

// Summary 是一次 profile 的整体摘要。
type Summary struct {
	Files      int
	Lines      int
	TotalCalls int
	TotalTime  float64 // seconds
	Hottest    []HotLine
}

// Summarize 计算整个 profile 的摘要，并按总耗时返回最热的 limit 行。
// limit <= 0 时返回全部行。
//
// 排序规则：按 TotalTime 倒序；相同时按文件路径、行号升序。
func Summarize(p *profile.Profile, limit int) Summary {
	var out Summary
	out.Files = len(p.Files)

	rows := make([]HotLine, 0)
	for _, f := range p.Files {
		for _, sample := range f.Lines {
			m := DeriveMetrics(sample)
			out.Lines++
			out.TotalCalls += m.Calls
			out.TotalTime += m.TotalTime
			rows = append(rows, HotLine{
				FilePath:  f.Path,
				Line:      sample.Number,
				Calls:     m.Calls,
				TotalTime: m.TotalTime,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalTime != rows[j].TotalTime {
			return rows[i].TotalTime > rows[j].TotalTime
		}
		if rows[i].FilePath != rows[j].FilePath {
			return rows[i].FilePath < rows[j].FilePath
		}
		return rows[i].Line < rows[j].Line
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	out.Hottest = rows
	return out
}

// RenderSummary 将摘要渲染为多行文本。
func RenderSummary(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Files: %d  Lines: %d  Calls: %d  Total time: %s\n",
		s.Files, s.Lines, s.TotalCalls, strings.TrimSpace(FormatDuration(s.TotalTime).String()))

	if len(s.Hottest) == 0 {
		return b.String()
	}

	b.WriteString("Hottest lines:\n")
	for i, h := range s.Hottest {
		fmt.Fprintf(&b, "  %d. %s:%d  %s (%d calls)\n",
			i+1, h.FilePath, h.Line, strings.TrimSpace(FormatDuration(h.TotalTime).String()), h.Calls)
	}
	return b.String()
}
