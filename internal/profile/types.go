package profile

// DefaultFileName 是 profiler 在项目根目录下写出的文件名。
const DefaultFileName = "stats.prof"

// Profile 是一次 profiler 运行的全部结果。
type Profile struct {
	Files []FileProfile
}

// FileProfile 是单个源文件的行级统计，Lines 保持输入顺序。
type FileProfile struct {
	Path  string
	Lines []LineSample
}

// LineSample 是一行的原始计数。
type LineSample struct {
	Number      int     // 1-based line number
	PerCallTime float64 // seconds
	Calls       int
}
