package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrInputMissing 表示 profile 文件不存在。
	ErrInputMissing = errors.New("no profile file found in project directory")
	// ErrInputMalformed 表示 JSON 可解析但缺少必要的键或结构不符。
	ErrInputMalformed = errors.New("malformed profile")
)

// Load 读取并校验 path 处的 profile 文件。
// 文件不存在时返回包装 ErrInputMissing 的错误，结构不符时返回包装 ErrInputMalformed 的错误。
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析 profile 文件内容。
func Parse(data []byte) (*Profile, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, malformed("document is not a JSON object")
	}

	hRaw, ok := top["h"]
	if !ok || isNull(hRaw) {
		return nil, malformed("missing key %q", "h")
	}
	var h map[string]json.RawMessage
	if err := json.Unmarshal(hRaw, &h); err != nil {
		return nil, malformed("%q is not an object", "h")
	}

	heatmapsRaw, ok := h["heatmaps"]
	if !ok || isNull(heatmapsRaw) {
		return nil, malformed("missing key %q", "h.heatmaps")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(heatmapsRaw, &entries); err != nil {
		return nil, malformed("%q is not an array", "h.heatmaps")
	}

	p := &Profile{Files: make([]FileProfile, 0, len(entries))}
	for i, raw := range entries {
		fp, err := parseFile(fmt.Sprintf("h.heatmaps[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		p.Files = append(p.Files, fp)
	}
	return p, nil
}

// parseFile 解析单个文件条目。where 是条目在文档中的位置，用于错误信息。
func parseFile(where string, raw json.RawMessage) (FileProfile, error) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
		return FileProfile{}, malformed("%s: not an object", where)
	}

	nameRaw, ok := entry["name"]
	if !ok || isNull(nameRaw) {
		return FileProfile{}, malformed("%s: missing key %q", where, "name")
	}
	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		return FileProfile{}, malformed("%s.name: not a string", where)
	}

	heatmapRaw, ok := entry["heatmap"]
	if !ok || isNull(heatmapRaw) {
		return FileProfile{}, malformed("%s: missing key %q", where, "heatmap")
	}
	heatmap := orderedmap.New[string, float64]()
	if err := json.Unmarshal(heatmapRaw, heatmap); err != nil {
		return FileProfile{}, malformed("%s.heatmap: expected an object of line -> seconds", where)
	}

	countsRaw, ok := entry["executionCount"]
	if !ok || isNull(countsRaw) {
		return FileProfile{}, malformed("%s: missing key %q", where, "executionCount")
	}
	counts := orderedmap.New[string, int]()
	if err := json.Unmarshal(countsRaw, counts); err != nil {
		return FileProfile{}, malformed("%s.executionCount: expected an object of line -> call count", where)
	}

	fp := FileProfile{
		Path:  name,
		Lines: make([]LineSample, 0, heatmap.Len()),
	}
	// heatmap 决定行的顺序，executionCount 必须包含相同的键
	for pair := heatmap.Oldest(); pair != nil; pair = pair.Next() {
		number, err := strconv.Atoi(pair.Key)
		if err != nil {
			return FileProfile{}, malformed("%s.heatmap: line key %q is not an integer", where, pair.Key)
		}
		if number < 1 {
			return FileProfile{}, malformed("%s.heatmap: line number %d must be >= 1", where, number)
		}
		if pair.Value < 0 {
			return FileProfile{}, malformed("%s.heatmap: line %q has negative time %g", where, pair.Key, pair.Value)
		}
		calls, ok := counts.Get(pair.Key)
		if !ok {
			return FileProfile{}, malformed("%s.executionCount: missing line %q", where, pair.Key)
		}
		if calls < 0 {
			return FileProfile{}, malformed("%s.executionCount: line %q has negative call count %d", where, pair.Key, calls)
		}
		fp.Lines = append(fp.Lines, LineSample{
			Number:      number,
			PerCallTime: pair.Value,
			Calls:       calls,
		})
	}
	return fp, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputMalformed, fmt.Sprintf(format, args...))
}
