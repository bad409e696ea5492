package heat

import (
	"math"
	"strconv"
)

// 时间单位，宽度固定为两个字符，便于在 gutter 中对齐。
const (
	UnitSeconds      = "s "
	UnitMilliseconds = "ms"
)

// secondsThreshold 以上用秒显示，以下用毫秒显示。
const secondsThreshold = 10

// Duration 是已按两位有效数字取整的时间值及其单位。
type Duration struct {
	Value float64
	Unit  string
}

// String 返回 "<value><unit>"，value 始终为普通小数形式（不使用指数表示）。
func (d Duration) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit
}

// FormatDuration 将秒数转换为紧凑的显示值。
// seconds >= 10 时以秒为单位，否则换算为毫秒；数值保留两位有效数字。
func FormatDuration(seconds float64) Duration {
	if seconds >= secondsThreshold {
		return Duration{Value: roundSignificant(seconds, 2), Unit: UnitSeconds}
	}
	return Duration{Value: roundSignificant(seconds*1000, 2), Unit: UnitMilliseconds}
}

// roundSignificant 将 x 取整到 digits 位有效数字。
// 基于 x 的精确二进制值正确舍入，恰好居中时取偶数（与 strconv 'g' 格式一致）。
func roundSignificant(x float64, digits int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', digits, 64), 64)
	if err != nil {
		return x
	}
	return v
}
