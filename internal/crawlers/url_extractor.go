package crawlers

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/utils"
)

// LinkExtractor 链接提取器
// 职责: 把页面上的href解析为绝对URL,规范化,并过滤掉站外链接和静态资源
type LinkExtractor struct {
	// 规范化后的站点根URL (前缀匹配用)
	baseURL string

	// 站点主机名 (精确匹配用)
	baseHost string

	// 小写的资源扩展名
	assetExtensions []string
}

// NewLinkExtractor 创建链接提取器
func NewLinkExtractor(baseURL string, assetExtensions []string) (*LinkExtractor, error) {
	normalized := NormalizeURL(baseURL)
	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("解析base_url失败: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base_url缺少主机名: %s", baseURL)
	}

	exts := make([]string, 0, len(assetExtensions))
	for _, ext := range assetExtensions {
		exts = append(exts, strings.ToLower(ext))
	}

	return &LinkExtractor{
		baseURL:         normalized,
		baseHost:        parsed.Host,
		assetExtensions: exts,
	}, nil
}

// BaseURL 返回规范化后的站点根URL
func (e *LinkExtractor) BaseURL() string {
	return e.baseURL
}

// Extract 解析并过滤页面上的href
// 返回去重后的站内URL,按字典序排列
func (e *LinkExtractor) Extract(pageURL string, hrefs []string) []string {
	seen := make(map[string]struct{})
	for _, href := range hrefs {
		link := ResolveURL(pageURL, href)

		if ok, reason := e.ShouldFollowLink(link); !ok {
			utils.Debugf("跳过链接: %s (%s)", link, reason)
			continue
		}
		seen[link] = struct{}{}
	}

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// ShouldFollowLink 判断规范化后的链接是否在爬取范围内
// 主机名相等与前缀匹配必须同时满足,避免仅协议不同的同主机链接被误收
func (e *LinkExtractor) ShouldFollowLink(link string) (bool, string) {
	parsed, err := url.Parse(link)
	if err != nil {
		return false, "URL格式无效"
	}

	if parsed.Host != e.baseHost {
		return false, "跨域链接"
	}

	if !strings.HasPrefix(link, e.baseURL) {
		return false, "不匹配站点前缀"
	}

	lower := strings.ToLower(link)
	for _, ext := range e.assetExtensions {
		if strings.HasSuffix(lower, ext) {
			return false, "静态资源"
		}
	}

	return true, ""
}
