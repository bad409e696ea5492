package heat

import (
	"testing"

	"heatline/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryProfile() *profile.Profile {
	return &profile.Profile{Files: []profile.FileProfile{
		{Path: "b.py", Lines: []profile.LineSample{
			{Number: 4, PerCallTime: 0.5, Calls: 2}, // 1s
			{Number: 1, PerCallTime: 0.1, Calls: 1}, // 0.1s
		}},
		{Path: "a.py", Lines: []profile.LineSample{
			{Number: 9, PerCallTime: 1, Calls: 1},   // 1s
			{Number: 2, PerCallTime: 2, Calls: 10},  // 20s
			{Number: 3, PerCallTime: 0, Calls: 100}, // 0s
		}},
	}}
}

func TestSummarize(t *testing.T) {
	s := Summarize(summaryProfile(), 0)

	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 5, s.Lines)
	assert.Equal(t, 114, s.TotalCalls)
	assert.InDelta(t, 22.1, s.TotalTime, 1e-9)

	require.Len(t, s.Hottest, 5)
	assert.Equal(t, HotLine{FilePath: "a.py", Line: 2, Calls: 10, TotalTime: 20}, s.Hottest[0])
	// 总耗时相同时按路径排序
	assert.Equal(t, "a.py", s.Hottest[1].FilePath)
	assert.Equal(t, "b.py", s.Hottest[2].FilePath)
	assert.Equal(t, 3, s.Hottest[4].Line)
}

func TestSummarize_Limit(t *testing.T) {
	s := Summarize(summaryProfile(), 2)
	require.Len(t, s.Hottest, 2)
	assert.Equal(t, 5, s.Lines)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(&profile.Profile{}, 3)
	assert.Equal(t, Summary{Hottest: []HotLine{}}, s)
	assert.Equal(t, "Files: 0  Lines: 0  Calls: 0  Total time: 0ms\n", RenderSummary(s))
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(Summarize(summaryProfile(), 1))
	assert.Contains(t, out, "Files: 2  Lines: 5  Calls: 114  Total time: 22s\n")
	assert.Contains(t, out, "Hottest lines:\n  1. a.py:2  20s (10 calls)\n")
}
