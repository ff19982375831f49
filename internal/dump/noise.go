package dump

import "strings"

// copyrightMark 版权符号
const copyrightMark = "©"

// NoiseFilter 判断单行文本是否为结构性噪声
type NoiseFilter struct {
	labels map[string]struct{}
}

// NewNoiseFilter 使用给定的噪声标签创建过滤器 (精确匹配,大小写敏感)
func NewNoiseFilter(labels []string) *NoiseFilter {
	set := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		set[label] = struct{}{}
	}
	return &NoiseFilter{labels: set}
}

// IsGarbage 以下任一情况视为噪声:
//   - 去掉首尾空白后为空
//   - 仅由'-'、'.'、空格组成
//   - 包含版权符号
//   - 与噪声标签完全相同
func (f *NoiseFilter) IsGarbage(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	if strings.Trim(line, "-. ") == "" {
		return true
	}
	if strings.Contains(line, copyrightMark) {
		return true
	}
	_, ok := f.labels[line]
	return ok
}
