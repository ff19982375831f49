package models

import "net/http"

// PageRecord 单个页面抓取得到的原始文本
// 创建后不再修改
type PageRecord struct {
	URL        string   `json:"url"`
	Headings   []string `json:"headings"`   // h1-h3, 文档顺序
	Paragraphs []string `json:"paragraphs"` // p, 文档顺序
}

// CleanedRecord 清洗后的结构化记录
type CleanedRecord struct {
	URL      string   `json:"url"`
	Headings []string `json:"headings"`
	Content  string   `json:"content"`
}

// FetchResult 一次页面抓取的结果
// 成功时Page非空; 失败时Err非空,Links为空
type FetchResult struct {
	URL   string
	Page  *PageRecord
	Links []string
	Err   error
}

// OK 是否抓取成功
func (r FetchResult) OK() bool {
	return r.Err == nil && r.Page != nil
}

// HeaderProvider 抓取时使用的HTTP请求头来源
type HeaderProvider interface {
	GetHeaders() (http.Header, error)
}

// SiteData URL -> 页面记录,按首次写入顺序迭代
type SiteData struct {
	order []string
	pages map[string]*PageRecord
}

// NewSiteData 创建空的页面集合
func NewSiteData() *SiteData {
	return &SiteData{pages: make(map[string]*PageRecord)}
}

// Put 保存页面; 同一URL再次写入时覆盖内容但保留原顺序
func (s *SiteData) Put(page *PageRecord) {
	if _, ok := s.pages[page.URL]; !ok {
		s.order = append(s.order, page.URL)
	}
	s.pages[page.URL] = page
}

// Get 按URL查找页面
func (s *SiteData) Get(url string) (*PageRecord, bool) {
	p, ok := s.pages[url]
	return p, ok
}

// Len 页面数量
func (s *SiteData) Len() int {
	return len(s.order)
}

// Pages 按写入顺序返回所有页面
func (s *SiteData) Pages() []*PageRecord {
	result := make([]*PageRecord, 0, len(s.order))
	for _, u := range s.order {
		result = append(result, s.pages[u])
	}
	return result
}
