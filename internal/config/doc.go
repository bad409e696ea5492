// Package config 提供 heatline 的默认参数管理。
//
// 配置文件存储在 ~/.config/heatline/config.yaml，使用 YAML 格式。
// 支持的配置项包括着色指标、行标签模板、渐变陡峭度和 profile 文件名，
// 也可以通过 HEATLINE_ 前缀的环境变量覆盖（如 HEATLINE_METRIC=1）。
package config
