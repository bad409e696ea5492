// Package profile 读取行级 profiler 写出的 stats.prof 文件。
//
// 文件是一个 JSON 对象，文件条目位于 h.heatmaps 数组中，每个条目包含：
//   - name: 源文件路径
//   - heatmap: 行号字符串 -> 每次调用耗时（秒）
//   - executionCount: 行号字符串 -> 调用次数
//
// 行的顺序保持 heatmap 对象中的键顺序，而不是按行号排序。
package profile
