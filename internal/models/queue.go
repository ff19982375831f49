package models

// URLItem 表示待爬队列中的一个URL项
type URLItem struct {
	// URL 规范化后的URL
	URL string

	// SourceURL 发现此URL的页面 (种子为空,仅用于调试日志)
	SourceURL string
}
