package heat

import "fmt"

// Metric 选择驱动颜色的指标。
type Metric int

const (
	MetricCalls     Metric = 1 // 调用次数
	MetricExecTime  Metric = 2 // 每次调用耗时
	MetricTotalTime Metric = 3 // 总耗时
)

// DefaultMetric 是未配置时使用的指标。
const DefaultMetric = MetricTotalTime

func (m Metric) String() string {
	switch m {
	case MetricCalls:
		return "calls"
	case MetricExecTime:
		return "exec_time"
	case MetricTotalTime:
		return "total_time"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ClampMetric 将任意整数收敛到 [1,3]，越界值不报错。
func ClampMetric(choice int) Metric {
	switch {
	case choice < int(MetricCalls):
		return MetricCalls
	case choice > int(MetricTotalTime):
		return MetricTotalTime
	default:
		return Metric(choice)
	}
}

// SelectMetric 按 choice（先收敛）返回对应的指标数组。
func SelectMetric(choice int, calls []int, execTimes, totalTimes []float64) []float64 {
	switch ClampMetric(choice) {
	case MetricCalls:
		values := make([]float64, len(calls))
		for i, c := range calls {
			values[i] = float64(c)
		}
		return values
	case MetricExecTime:
		return execTimes
	default:
		return totalTimes
	}
}
