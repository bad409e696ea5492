package heat

import (
	"strconv"
	"strings"
)

// 标签模板中可识别的占位符。
// total_time 没有 % 前缀，因此模板中的 "%total_time" 会渲染为 "%<value><unit>"。
const (
	TokenCalls     = "%calls"
	TokenExecTime  = "%exec_time"
	TokenTotalTime = "total_time"
)

// DefaultTemplate 是默认的行标签模板。
const DefaultTemplate = "[%calls] %exec_time"

// RenderLabel 对模板做字面量替换，不是通用模板引擎：
// 只识别三个占位符，其余文本原样保留；嵌在单词中的占位符同样会被替换。
func RenderLabel(template string, calls int, perCall, total Duration) string {
	r := strings.NewReplacer(
		TokenCalls, strconv.Itoa(calls),
		TokenExecTime, perCall.String(),
		TokenTotalTime, total.String(),
	)
	return r.Replace(template)
}
