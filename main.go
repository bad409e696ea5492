// heatline 将行级 profiler 的输出转换为编辑器 gutter 可直接渲染的每行标签和热度颜色。
package main

import (
	"heatline/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
