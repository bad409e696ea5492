package heat

import (
	"encoding/json"
	"os"
	"time"
	"unicode/utf8"

	"heatline/internal/profile"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Options 控制一次转换。
type Options struct {
	Metric    int     // 1-3，越界值会被收敛
	Template  string  // 行标签模板
	Steepness float64 // 渐变陡峭度，<= 0 时使用 DefaultSteepness
}

// DefaultOptions 返回默认选项。
func DefaultOptions() Options {
	return Options{
		Metric:    int(DefaultMetric),
		Template:  DefaultTemplate,
		Steepness: DefaultSteepness,
	}
}

// LineMetrics 是从一行原始计数派生出的三个指标。
type LineMetrics struct {
	Index       int // 0-based
	Calls       int
	PerCallTime float64 // seconds
	TotalTime   float64 // seconds, PerCallTime * Calls
}

// DeriveMetrics 计算一行的派生指标，TotalTime 使用未取整的原始值。
func DeriveMetrics(s profile.LineSample) LineMetrics {
	return LineMetrics{
		Index:       s.Number - 1,
		Calls:       s.Calls,
		PerCallTime: s.PerCallTime,
		TotalTime:   s.PerCallTime * float64(s.Calls),
	}
}

// RenderedLine 是一行的渲染结果，序列化为 [index, label, [r, g, b]]。
type RenderedLine struct {
	Index int
	Label string
	Color RGB
}

// MarshalJSON 输出编辑器插件期望的三元组格式。
func (l RenderedLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Index, l.Label, l.Color})
}

// RenderedFile 是单个文件的渲染结果。
type RenderedFile struct {
	FilePath string         `json:"file_path"`
	Lines    []RenderedLine `json:"stats"`
	Longest  string         `json:"longest"`
}

// Transform 按输入顺序转换 profile 中的所有文件。
// 文件之间互不影响，颜色只相对于各自文件内的最大值归一化。
func Transform(p *profile.Profile, opts Options) []RenderedFile {
	out := make([]RenderedFile, len(p.Files))

	bar := newFileProgressBar(p.Files)
	if bar != nil {
		defer func() { _ = bar.Finish() }()
	}

	for i, fp := range p.Files {
		if bar != nil {
			bar.Describe(progressDescription(fp.Path))
		}
		out[i] = TransformFile(fp, opts)
		if bar != nil {
			_ = bar.Add(len(fp.Lines))
		}
	}
	return out
}

// TransformFile 转换单个文件：派生指标、渲染标签、计算颜色并记录最长标签。
// 行顺序与输入一致。
func TransformFile(fp profile.FileProfile, opts Options) RenderedFile {
	steepness := opts.Steepness
	if steepness <= 0 {
		steepness = DefaultSteepness
	}

	n := len(fp.Lines)
	calls := make([]int, n)
	execTimes := make([]float64, n)
	totalTimes := make([]float64, n)
	lines := make([]RenderedLine, n)

	for i, sample := range fp.Lines {
		m := DeriveMetrics(sample)
		calls[i] = m.Calls
		execTimes[i] = m.PerCallTime
		totalTimes[i] = m.TotalTime

		lines[i] = RenderedLine{
			Index: m.Index,
			Label: RenderLabel(opts.Template, m.Calls, FormatDuration(m.PerCallTime), FormatDuration(m.TotalTime)),
		}
	}

	values := SelectMetric(opts.Metric, calls, execTimes, totalTimes)
	maxValue := maxOf(values)

	longest := ""
	for i := range lines {
		lines[i].Color = ColorFor(values[i], maxValue, steepness)
		if utf8.RuneCountInString(lines[i].Label) > utf8.RuneCountInString(longest) {
			longest = lines[i].Label
		}
	}

	return RenderedFile{
		FilePath: fp.Path,
		Lines:    lines,
		Longest:  longest,
	}
}

// progressMinLines 以下的 profile 转换几乎是瞬时的，不值得画进度条。
const progressMinLines = 20000

// progressDescWidth 限制进度条描述中文件路径的宽度。
const progressDescWidth = 32

// wantsProgress 判断 files 是否大到需要进度条：至少两个文件，且总行数达到 progressMinLines。
func wantsProgress(files []profile.FileProfile) bool {
	return len(files) > 1 && totalLines(files) >= progressMinLines
}

func totalLines(files []profile.FileProfile) int {
	n := 0
	for _, fp := range files {
		n += len(fp.Lines)
	}
	return n
}

// progressDescription 返回当前文件的描述，过长的路径只保留末尾部分。
func progressDescription(path string) string {
	r := []rune(path)
	if len(r) <= progressDescWidth {
		return path
	}
	return "…" + string(r[len(r)-progressDescWidth+1:])
}

// newFileProgressBar 创建按行计数的进度条，描述显示正在处理的文件。
// stderr 不是终端时返回 nil。
func newFileProgressBar(files []profile.FileProfile) *progressbar.ProgressBar {
	if !wantsProgress(files) {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		totalLines(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(progressDescription(files[0].Path)),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
}
