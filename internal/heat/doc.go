// Package heat 将行级 profile 转换为可直接渲染的结构：
// 每行一个格式化标签和一个表示"热度"的红绿渐变颜色。
package heat
