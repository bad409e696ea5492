// Package project 定位被 profile 的项目及其 profile 文件，并提供 doctor 使用的诊断检查。
//
// 主要功能：
//   - Locate: 从目录或项目内的文件解析项目根目录（支持 Git 工作区检测）
//   - CheckSourceFiles / CheckFreshness: 诊断 profile 与源码是否匹配
package project
