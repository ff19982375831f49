package crawlers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PageContent 从单个HTML页面提取的内容
type PageContent struct {
	Headings   []string // h1-h3文本,文档顺序
	Paragraphs []string // p文本,文档顺序
	Hrefs      []string // a[href]原始值
}

// ExtractPage 解析HTML并提取标题、段落和链接
// 文本去掉标签,内部连续空白折叠为单个空格,空文本丢弃;
// 这样每个标题/段落在中间文本里恰好占一行
func ExtractPage(body []byte) (*PageContent, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	content := &PageContent{
		Headings:   collectText(doc.Find("h1, h2, h3")),
		Paragraphs: collectText(doc.Find("p")),
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			content.Hrefs = append(content.Hrefs, href)
		}
	})

	return content, nil
}

func collectText(sel *goquery.Selection) []string {
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// cleanText 折叠空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
