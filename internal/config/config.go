package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"heatline/internal/heat"
	"heatline/internal/profile"

	"github.com/spf13/viper"
)

const envPrefix = "HEATLINE"

// Config 保存命令行未显式指定时使用的默认值。
type Config struct {
	Metric      int
	Template    string
	Steepness   float64
	ProfileName string
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Metric:      int(heat.DefaultMetric),
		Template:    heat.DefaultTemplate,
		Steepness:   heat.DefaultSteepness,
		ProfileName: profile.DefaultFileName,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "heatline"), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func Load() (*Config, error) {
	configFile, err := File()
	if err != nil {
		return nil, err
	}

	def := Default()

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("metric", def.Metric)
	v.SetDefault("template", def.Template)
	v.SetDefault("steepness", def.Steepness)
	v.SetDefault("profile", def.ProfileName)

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile 指定的文件不存在时 viper 返回的是 fs 错误而不是 ConfigFileNotFoundError
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		Metric:      v.GetInt("metric"),
		Template:    v.GetString("template"),
		Steepness:   v.GetFloat64("steepness"),
		ProfileName: v.GetString("profile"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("metric", config.Metric)
	v.Set("template", config.Template)
	v.Set("steepness", config.Steepness)
	v.Set("profile", config.ProfileName)

	return v.WriteConfigAs(configFile)
}

// ValidateConfig 返回配置中的问题描述，为空表示没有问题。
// 越界的 metric 仍然可用（会被收敛），这里只作为提示。
func ValidateConfig(cfg *Config) []string {
	issues := make([]string, 0)

	if cfg.Metric < int(heat.MetricCalls) || cfg.Metric > int(heat.MetricTotalTime) {
		issues = append(issues, fmt.Sprintf("metric %d is out of range 1-3, will be clamped to %d", cfg.Metric, int(heat.ClampMetric(cfg.Metric))))
	}
	if cfg.Steepness <= 0 {
		issues = append(issues, fmt.Sprintf("steepness must be > 0, got %g", cfg.Steepness))
	}
	if !containsToken(cfg.Template) {
		issues = append(issues, fmt.Sprintf("template %q has no %s, %s or %s token", cfg.Template, heat.TokenCalls, heat.TokenExecTime, heat.TokenTotalTime))
	}
	name := strings.TrimSpace(cfg.ProfileName)
	if name == "" {
		issues = append(issues, "profile file name must not be empty")
	} else if strings.ContainsRune(name, filepath.Separator) {
		issues = append(issues, fmt.Sprintf("profile file name %q must not contain a path separator", name))
	}

	return issues
}

func containsToken(template string) bool {
	for _, token := range []string{heat.TokenCalls, heat.TokenExecTime, heat.TokenTotalTime} {
		if strings.Contains(template, token) {
			return true
		}
	}
	return false
}
