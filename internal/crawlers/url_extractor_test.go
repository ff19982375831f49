package crawlers

import (
	"reflect"
	"strings"
	"testing"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

func newTestExtractor(t *testing.T) *LinkExtractor {
	t.Helper()
	e, err := NewLinkExtractor("https://www.example.com/", models.DefaultAssetExtensions)
	if err != nil {
		t.Fatalf("NewLinkExtractor() error = %v", err)
	}
	return e
}

func TestNewLinkExtractor(t *testing.T) {
	e := newTestExtractor(t)
	if e.BaseURL() != "https://www.example.com" {
		t.Errorf("BaseURL() = %q", e.BaseURL())
	}

	if _, err := NewLinkExtractor("not-a-url", nil); err == nil {
		t.Error("缺少主机名应返回错误")
	}
}

func TestLinkExtractor_ShouldFollowLink(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		link string
		want bool
	}{
		{"站内页面", "https://www.example.com/about", true},
		{"站点根", "https://www.example.com", true},
		{"带查询参数", "https://www.example.com/search?q=1", true},
		{"其它主机", "https://example.com/about", false},
		{"子域名", "https://blog.www.example.com/", false},
		{"主机名前缀相同", "https://www.example.com.evil.net/x", false},
		{"协议不同", "http://www.example.com/about", false},
		{"显式端口", "https://www.example.com:443/about", false},
		{"PDF", "https://www.example.com/files/deck.pdf", false},
		{"大写扩展名", "https://www.example.com/img/LOGO.PNG", false},
		{"JPEG", "https://www.example.com/a.jpeg", false},
		{"SVG", "https://www.example.com/a.svg", false},
		{"WEBP", "https://www.example.com/a.webp", false},
		{"GIF", "https://www.example.com/a.gif", false},
		{"扩展名不在结尾", "https://www.example.com/a.pdf?download=1", true},
		{"邮件链接", "mailto:hi@www.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := e.ShouldFollowLink(tt.link)
			if got != tt.want {
				t.Errorf("ShouldFollowLink(%q) = %v (%s), want %v", tt.link, got, reason, tt.want)
			}
			if !got && reason == "" {
				t.Error("过滤时应给出原因")
			}
		})
	}
}

func TestLinkExtractor_Extract(t *testing.T) {
	e := newTestExtractor(t)

	hrefs := []string{
		"/about-us/",
		"/about-us",
		"/about-us/#team",
		"contact",
		"https://www.example.com/products/",
		"https://other.com/",
		"/brochure.PDF",
		"/logo.png",
		"javascript:void(0)",
		"#",
	}

	got := e.Extract("https://www.example.com/blog", hrefs)
	want := []string{
		"https://www.example.com/about-us",
		"https://www.example.com/blog",
		"https://www.example.com/contact",
		"https://www.example.com/products",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestLinkExtractor_ExtractExcludesAssetsAndForeignHosts(t *testing.T) {
	e := newTestExtractor(t)

	hrefs := []string{
		"https://www.example.com/a.pdf", "/b.png", "/c.jpg", "/d.jpeg", "/e.svg", "/f.webp", "/g.gif",
		"https://cdn.example.com/page", "http://www.example.com/page", "//other.org/x",
	}

	for _, link := range e.Extract("https://www.example.com", hrefs) {
		lower := strings.ToLower(link)
		for _, ext := range models.DefaultAssetExtensions {
			if strings.HasSuffix(lower, ext) {
				t.Errorf("资源链接未被过滤: %s", link)
			}
		}
		if !strings.HasPrefix(link, "https://www.example.com") {
			t.Errorf("站外链接未被过滤: %s", link)
		}
	}
}

func TestLinkExtractor_ExtractEmpty(t *testing.T) {
	e := newTestExtractor(t)
	if got := e.Extract("https://www.example.com", nil); len(got) != 0 {
		t.Errorf("空输入应返回空集合, got %v", got)
	}
}
