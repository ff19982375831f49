package crawlers

import (
	"net/url"
	"strings"
)

// NormalizeURL 将URL转换为去重用的规范形式
// 规则(按顺序):
//  1. 去掉片段 (第一个'#'及其后内容)
//  2. 去掉首尾空白
//  3. 去掉恰好一个结尾的'/'
//
// 不做百分号解码、查询参数排序或大小写转换。
// 注意: ".../about//" 只会去掉一个斜杠,结果为 ".../about/"。
func NormalizeURL(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	return strings.TrimSuffix(raw, "/")
}

// ResolveURL 以base为基准解析href并规范化
// base或href无法解析时,直接规范化href原文
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)

	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return NormalizeURL(href)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return NormalizeURL(href)
	}

	return NormalizeURL(baseURL.ResolveReference(ref).String())
}
