package models

import "fmt"

// FetchErrorKind 页面抓取失败的类别
type FetchErrorKind string

const (
	FetchErrorTransport FetchErrorKind = "fetch" // 网络/传输/HTTP状态错误
	FetchErrorParse     FetchErrorKind = "parse" // 响应解压或HTML解析错误
)

// FetchError 单个页面抓取失败
// 两种类别处理方式相同: 记录日志,页面不产生内容,爬取继续
type FetchError struct {
	URL        string
	Kind       FetchErrorKind
	StatusCode int // 无HTTP响应时为0
	Cause      error
}

// Error 实现error接口
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s失败 [%s] (HTTP %d): %v", e.Kind, e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s失败 [%s]: %v", e.Kind, e.URL, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ConfigError 配置文件错误
type ConfigError struct {
	// FilePath 配置文件路径
	FilePath string

	// Cause 底层错误 (如viper.ConfigParseError)
	Cause error
}

// Error 实现error接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("配置文件错误 [%s]: %v", e.FilePath, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ValidationError 头部验证错误
type ValidationError struct {
	Field      string // 出错的字段 ("name" 或 "value")
	HeaderName string
	Reason     string
	Suggestion string // 修复建议 (可选)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("头部验证失败 [%s]: %s", e.HeaderName, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (建议: %s)", e.Suggestion)
	}
	return msg
}
