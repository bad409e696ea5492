package heat

import (
	"encoding/json"
	"math"
)

// 渐变参数。
const (
	EulerConstant    = math.E
	DefaultSteepness = 6.0
	maxChannel       = 255.0
)

// RGB 是 0-255 范围内的浮点颜色分量。
type RGB struct {
	R, G, B float64
}

// MarshalJSON 输出 [r, g, b]。
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.R, c.G, c.B})
}

// Cold 是值为 0（或整个文件指标全为 0）时的颜色：纯绿。
var Cold = RGB{R: 0, G: maxChannel, B: 0}

// ColorFor 计算 value 相对 maxValue 的红绿渐变色：
//
//	amount = 255 * (1 - e^(-steepness * value / maxValue))
//	color  = (amount, 255 - amount, 0)
//
// maxValue <= 0 时直接返回 Cold，不做除法。
func ColorFor(value, maxValue, steepness float64) RGB {
	if maxValue <= 0 {
		return Cold
	}
	amount := maxChannel * (1 - math.Pow(EulerConstant, -steepness*value/maxValue))
	return RGB{R: amount, G: maxChannel - amount, B: 0}
}

// maxOf 返回 values 中的最大值，空切片返回 0。
func maxOf(values []float64) float64 {
	m := 0.0
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
