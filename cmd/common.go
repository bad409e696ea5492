package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"heatline/internal/config"
	"heatline/internal/heat"
	"heatline/internal/profile"
	"heatline/internal/project"

	"github.com/spf13/cobra"
)

// 根命令和 show 共享的标志变量
var (
	runMetric    int     // 着色指标 1-3
	runTemplate  string  // 行标签模板
	runSteepness float64 // 渐变陡峭度
	runProfile   string  // 项目目录下的 profile 文件名
)

// addRunFlags 为指定命令添加加载和转换相关的标志。
// 这样根命令和 show 子命令可以共享相同的标志。
// 第一个位置参数之后不再解析标志，"-1" 或 "- %calls" 会按原样作为指标和模板。
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVarP(&runMetric, "metric", "m", 0, "Color metric: 1 calls, 2 exec time, 3 total time (default: config value)")
	cmd.Flags().StringVarP(&runTemplate, "template", "t", "", "Label template (default: config value)")
	cmd.Flags().Float64VarP(&runSteepness, "steepness", "k", 0, "Color gradient steepness (default: config value)")
	cmd.Flags().StringVarP(&runProfile, "profile", "p", "", "Profile file name inside the project (default: config value)")
}

// RunContext holds the common initialization result for commands.
type RunContext struct {
	Location project.Location
	Profile  *profile.Profile
	Options  heat.Options

	logger *slog.Logger
}

// prepareRun performs common command initialization:
// load config, merge positional arguments and flags, locate and load the profile.
//
// 优先级：显式标志 > 位置参数 > 配置文件 > 内置默认值。
func prepareRun(cmd *cobra.Command, args []string) (*RunContext, error) {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := "."
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		path = args[0]
	}

	opts := heat.Options{
		Metric:    cfg.Metric,
		Template:  cfg.Template,
		Steepness: cfg.Steepness,
	}
	if len(args) > 1 {
		metric, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid metric %q: %w", args[1], err)
		}
		opts.Metric = metric
	}
	if len(args) > 2 {
		opts.Template = args[2]
	}

	flags := cmd.Flags()
	if flags.Changed("metric") {
		opts.Metric = runMetric
	}
	if flags.Changed("template") {
		opts.Template = runTemplate
	}
	if flags.Changed("steepness") {
		if runSteepness <= 0 {
			return nil, fmt.Errorf("steepness must be > 0, got %g", runSteepness)
		}
		opts.Steepness = runSteepness
	}

	profileName := cfg.ProfileName
	if flags.Changed("profile") {
		profileName = runProfile
	}
	profileName = strings.TrimSpace(profileName)
	if profileName == "" {
		profileName = profile.DefaultFileName
	}

	if clamped := int(heat.ClampMetric(opts.Metric)); clamped != opts.Metric {
		logger.Debug("metric clamped", "requested", opts.Metric, "used", clamped)
	}

	loc, err := project.Locate(path, profileName)
	if err != nil {
		return nil, err
	}
	logger.Debug("project located", "root", loc.Root, "profile", loc.ProfilePath, "git", loc.InRepository)

	p, err := profile.Load(loc.ProfilePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("profile loaded", "files", len(p.Files), "metric", heat.ClampMetric(opts.Metric).String())

	return &RunContext{
		Location: loc,
		Profile:  p,
		Options:  opts,
		logger:   logger,
	}, nil
}

// newLogger 创建输出到 w 的文本日志，verbose 时输出 Debug 级别。
// stdout 只用于输出结果，日志始终写到 stderr。
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
