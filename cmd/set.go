package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"heatline/internal/config"

	"github.com/spf13/cobra"
)

// setCmd 实现 set 子命令，用于查看或修改默认配置。
// 支持两种模式：
// 1. heatline set - 显示当前配置
// 2. heatline set <key> <value> - 设置配置项（支持 metric、template、steepness、profile）
var setCmd = newSetCmd()

// newSetCmd 构建 set 命令，便于在测试中复用。
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set or show default configuration",
		Long: `View or modify default configuration (metric, template, steepness, profile).

Without arguments, displays the current configuration.
With key/value, sets the specified option.`,
		Example: `  heatline set
  heatline set metric 1
  heatline set template "[%calls] %exec_time total_time"
  heatline set steepness 4
  heatline set profile stats.prof`,
		Args:         validateSetArgs,
		SilenceUsage: true,
		RunE:         runSet,
	}
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// validateSetArgs 校验 set 参数格式。
func validateSetArgs(cmd *cobra.Command, args []string) error {
	// 无参数：显示配置
	if len(args) == 0 {
		return nil
	}
	// 设置配置需要正好两个参数
	if len(args) != 2 {
		return fmt.Errorf("usage: heatline set [metric|template|steepness|profile] <value>")
	}
	return nil
}

// runSet 执行 set 逻辑（显示或设置配置项）。
func runSet(cmd *cobra.Command, args []string) error {
	// 加载当前配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 无参数时显示当前配置
	if len(args) == 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "metric: %d\ntemplate: %q\nsteepness: %g\nprofile: %s\n",
			cfg.Metric, cfg.Template, cfg.Steepness, cfg.ProfileName)
		return nil
	}

	key := args[0]
	val := args[1]

	// 根据 key 修改对应配置项
	switch key {
	case "metric":
		metric, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("invalid metric %q: %w", val, err)
		}
		if metric < 1 || metric > 3 {
			return fmt.Errorf("metric must be 1, 2 or 3, got %d", metric)
		}
		cfg.Metric = metric
	case "template":
		if val == "" {
			return fmt.Errorf("template must not be empty")
		}
		cfg.Template = val
	case "steepness":
		steepness, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("invalid steepness %q: %w", val, err)
		}
		if steepness <= 0 {
			return fmt.Errorf("steepness must be > 0, got %g", steepness)
		}
		cfg.Steepness = steepness
	case "profile":
		name := strings.TrimSpace(val)
		if name == "" || strings.ContainsRune(name, filepath.Separator) {
			return fmt.Errorf("invalid profile file name %q", val)
		}
		cfg.ProfileName = name
	default:
		return fmt.Errorf("unsupported key %q (supported: metric, template, steepness, profile)", key)
	}

	// 保存修改后的配置
	return config.Save(*cfg)
}
