package heat

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"heatline/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetrics(t *testing.T) {
	m := DeriveMetrics(profile.LineSample{Number: 5, PerCallTime: 0.25, Calls: 4})
	assert.Equal(t, LineMetrics{Index: 4, Calls: 4, PerCallTime: 0.25, TotalTime: 1}, m)
}

func TestTransformFile_CallsScenario(t *testing.T) {
	fp := profile.FileProfile{
		Path: "/proj/main.py",
		Lines: []profile.LineSample{
			{Number: 1, PerCallTime: 0.002, Calls: 10},
			{Number: 2, PerCallTime: 0.01, Calls: 1},
		},
	}

	got := TransformFile(fp, Options{Metric: 1, Template: "%calls calls", Steepness: DefaultSteepness})

	assert.Equal(t, "/proj/main.py", got.FilePath)
	require.Len(t, got.Lines, 2)

	assert.Equal(t, 0, got.Lines[0].Index)
	assert.Equal(t, "10 calls", got.Lines[0].Label)
	assert.InDelta(t, 255*(1-math.Exp(-6)), got.Lines[0].Color.R, 1e-9)

	assert.Equal(t, 1, got.Lines[1].Index)
	assert.Equal(t, "1 calls", got.Lines[1].Label)
	assert.InDelta(t, 255*(1-math.Exp(-0.6)), got.Lines[1].Color.R, 1e-9)
	assert.InDelta(t, 255*math.Exp(-0.6), got.Lines[1].Color.G, 1e-9)

	assert.Equal(t, "10 calls", got.Longest)
}

func TestTransformFile_TimeLabels(t *testing.T) {
	fp := profile.FileProfile{
		Path: "a.py",
		Lines: []profile.LineSample{
			{Number: 3, PerCallTime: 1.2345, Calls: 10},
		},
	}

	got := TransformFile(fp, Options{Metric: 3, Template: "[%calls] %exec_time total_time", Steepness: DefaultSteepness})

	require.Len(t, got.Lines, 1)
	// 总耗时使用未取整的每次调用耗时计算：1.2345 * 10 = 12.345s
	assert.Equal(t, "[10] 1200ms 12s ", got.Lines[0].Label)
	assert.Equal(t, 2, got.Lines[0].Index)
}

func TestTransformFile_MetricChoosesHottestLine(t *testing.T) {
	fp := profile.FileProfile{
		Path: "a.py",
		Lines: []profile.LineSample{
			{Number: 1, PerCallTime: 0.002, Calls: 10}, // total 0.02
			{Number: 2, PerCallTime: 0.01, Calls: 1},   // total 0.01
		},
	}

	byExec := TransformFile(fp, Options{Metric: 2, Template: "x"})
	assert.Greater(t, byExec.Lines[1].Color.R, byExec.Lines[0].Color.R)

	byTotal := TransformFile(fp, Options{Metric: 3, Template: "x"})
	assert.Greater(t, byTotal.Lines[0].Color.R, byTotal.Lines[1].Color.R)

	// 越界指标被收敛到 3
	clamped := TransformFile(fp, Options{Metric: 99, Template: "x"})
	assert.Equal(t, byTotal, clamped)
}

func TestTransformFile_DegenerateMetricIsCold(t *testing.T) {
	fp := profile.FileProfile{
		Path: "a.py",
		Lines: []profile.LineSample{
			{Number: 1, PerCallTime: 0, Calls: 3},
			{Number: 2, PerCallTime: 0, Calls: 5},
		},
	}

	got := TransformFile(fp, Options{Metric: 2, Template: "%exec_time"})
	for _, line := range got.Lines {
		assert.Equal(t, Cold, line.Color)
		assert.Equal(t, "0ms", line.Label)
	}
}

func TestTransformFile_LongestFirstSeenWins(t *testing.T) {
	fp := profile.FileProfile{
		Path: "a.py",
		Lines: []profile.LineSample{
			{Number: 1, PerCallTime: 0.001, Calls: 12},
			{Number: 2, PerCallTime: 0.001, Calls: 34},
			{Number: 3, PerCallTime: 0.001, Calls: 5},
		},
	}

	got := TransformFile(fp, Options{Metric: 1, Template: "%calls ×"})
	assert.Equal(t, "12 ×", got.Longest)
}

func TestTransformFile_Empty(t *testing.T) {
	got := TransformFile(profile.FileProfile{Path: "empty.py"}, DefaultOptions())
	assert.Empty(t, got.Lines)
	assert.Equal(t, "", got.Longest)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file_path":"empty.py","stats":[],"longest":""}`, string(data))
}

func TestTransform_PreservesFileAndLineOrder(t *testing.T) {
	p := &profile.Profile{Files: []profile.FileProfile{
		{Path: "c.py", Lines: []profile.LineSample{
			{Number: 30, PerCallTime: 0.1, Calls: 1},
			{Number: 2, PerCallTime: 0.2, Calls: 2},
			{Number: 11, PerCallTime: 0.3, Calls: 3},
		}},
		{Path: "a.py", Lines: []profile.LineSample{
			{Number: 5, PerCallTime: 0.1, Calls: 1},
			{Number: 9, PerCallTime: 0.1, Calls: 1},
			{Number: 1, PerCallTime: 0.1, Calls: 1},
		}},
		{Path: "b.py", Lines: []profile.LineSample{
			{Number: 8, PerCallTime: 0.1, Calls: 1},
			{Number: 7, PerCallTime: 0.1, Calls: 1},
			{Number: 100, PerCallTime: 0.1, Calls: 1},
		}},
	}}

	got := Transform(p, DefaultOptions())
	require.Len(t, got, 3)

	paths := make([]string, 0, len(got))
	for _, f := range got {
		paths = append(paths, f.FilePath)
	}
	assert.Equal(t, []string{"c.py", "a.py", "b.py"}, paths)

	indexes := func(f RenderedFile) []int {
		out := make([]int, 0, len(f.Lines))
		for _, l := range f.Lines {
			out = append(out, l.Index)
		}
		return out
	}
	assert.Equal(t, []int{29, 1, 10}, indexes(got[0]))
	assert.Equal(t, []int{4, 8, 0}, indexes(got[1]))
	assert.Equal(t, []int{7, 6, 99}, indexes(got[2]))
}

func TestTransform_NormalizesPerFile(t *testing.T) {
	p := &profile.Profile{Files: []profile.FileProfile{
		{Path: "big.py", Lines: []profile.LineSample{{Number: 1, PerCallTime: 1, Calls: 1000}}},
		{Path: "small.py", Lines: []profile.LineSample{{Number: 1, PerCallTime: 1, Calls: 2}}},
	}}

	got := Transform(p, Options{Metric: 1, Template: "%calls"})
	// 每个文件中最热的行颜色相同，与其他文件无关
	assert.Equal(t, got[0].Lines[0].Color, got[1].Lines[0].Color)
}

func TestRenderedLineMarshalJSON(t *testing.T) {
	data, err := json.Marshal(RenderedLine{Index: 3, Label: "[1] 2ms", Color: Cold})
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "[1] 2ms", [0, 255, 0]]`, string(data))
}

func TestWantsProgress(t *testing.T) {
	big := profile.FileProfile{Path: "big.py", Lines: make([]profile.LineSample, progressMinLines)}
	small := profile.FileProfile{Path: "small.py", Lines: make([]profile.LineSample, 3)}

	assert.False(t, wantsProgress(nil))
	assert.False(t, wantsProgress([]profile.FileProfile{big}), "single file never shows a bar")
	assert.False(t, wantsProgress([]profile.FileProfile{small, small}))
	assert.True(t, wantsProgress([]profile.FileProfile{big, small}))
}

func TestProgressDescription(t *testing.T) {
	assert.Equal(t, "/proj/main.py", progressDescription("/proj/main.py"))

	long := "/home/user/code/project/very/deep/package/module_name.py"
	got := progressDescription(long)
	assert.Equal(t, progressDescWidth, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "package/module_name.py"))
}
