package cmd

import (
	"fmt"
	"io"

	"heatline/internal/config"
	"heatline/internal/profile"
	"heatline/internal/project"

	"github.com/spf13/cobra"
)

// doctorCmd 实现 doctor 子命令，一站式诊断配置和 profile 问题。
// 依次执行 5 项检查：配置合法性、项目定位、profile 可读性、源文件存在性、profile 新鲜度。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: heatline doctor [project-path]
var doctorCmd = &cobra.Command{
	Use:          "doctor [project-path]",
	Short:        "Diagnose configuration and profile issues",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runDoctor,
}

// init 注册 doctor 命令。
func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 是 doctor 命令的核心逻辑，按顺序执行 5 项诊断检查：
//  1. 配置合法性（metric、steepness、template、profile 文件名）
//  2. 项目定位（路径存在，Git 工作区检测）
//  3. profile 可读且结构正确
//  4. profile 引用的源文件存在
//  5. profile 新鲜度（早于 Git HEAD 提交时给出警告）
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error（exit 非零）。
func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性检查
	profileName := profile.DefaultFileName
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		hasError = true
		fmt.Fprintf(out, "❌ Config: %v\n", cfgErr)
	} else {
		issues := config.ValidateConfig(cfg)
		if len(issues) == 0 {
			fmt.Fprintln(out, "✅ Config: OK")
		} else {
			fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
			printLines(out, issues)
		}
		if cfg.ProfileName != "" {
			profileName = cfg.ProfileName
		}
	}

	// 2. 项目定位
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	loc, locErr := project.Locate(path, profileName)
	if locErr != nil {
		fmt.Fprintf(out, "❌ Project: %v\n", locErr)
		return fmt.Errorf("doctor found issues")
	}
	if loc.InRepository {
		fmt.Fprintf(out, "✅ Project: %s (git worktree)\n", loc.Root)
	} else {
		fmt.Fprintf(out, "✅ Project: %s\n", loc.Root)
	}

	// 3. profile 可读性检查
	p, loadErr := profile.Load(loc.ProfilePath)
	if loadErr != nil {
		fmt.Fprintf(out, "❌ Profile: %v\n", loadErr)
		fmt.Fprintln(out, "⚠️  Source files: skipped (no profile)")
		fmt.Fprintln(out, "⚠️  Freshness: skipped (no profile)")
		return fmt.Errorf("doctor found issues")
	}
	lines := 0
	for _, f := range p.Files {
		lines += len(f.Lines)
	}
	fmt.Fprintf(out, "✅ Profile: %d file(s), %d line(s)\n", len(p.Files), lines)

	// 4. 源文件存在性（仅警告，profile 可能来自其他机器）
	missing := project.CheckSourceFiles(loc.Root, p)
	if len(missing) == 0 {
		fmt.Fprintln(out, "✅ Source files: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Source files: %d missing\n", len(missing))
		printLines(out, missing)
	}

	// 5. 新鲜度检查
	warning, freshErr := project.CheckFreshness(loc.Root, loc.ProfilePath)
	switch {
	case freshErr != nil:
		hasError = true
		fmt.Fprintf(out, "❌ Freshness: %v\n", freshErr)
	case warning != "":
		fmt.Fprintln(out, "⚠️  Freshness: 1 warning")
		printLines(out, []string{warning})
	default:
		fmt.Fprintln(out, "✅ Freshness: OK")
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
