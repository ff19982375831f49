// Package dump 读写爬取阶段的中间文本,并把它还原为结构化记录
//
// 中间文本每个页面一块:
//
//	(空行)
//	URL: <url>
//	Headings:
//	<标题,每行一个>
//	Paragraphs:
//	<段落,每行一个>
//	(空行)
//	============================================================
//
// 解析时任意长度的'='行都视为分隔线。
package dump

import "strings"

const (
	URLPrefix        = "URL:"
	HeadingsMarker   = "Headings:"
	ParagraphsMarker = "Paragraphs:"

	// DividerWidth 写出时分隔线的长度
	DividerWidth = 60
)

// Divider 写出时使用的分隔线
var Divider = strings.Repeat("=", DividerWidth)

// IsDivider 一个或多个'='组成的行
func IsDivider(line string) bool {
	return line != "" && strings.Trim(line, "=") == ""
}
