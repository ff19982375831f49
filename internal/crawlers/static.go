package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
)

// resultCtxKey colly上下文中保存本次抓取结果的键
const resultCtxKey = "fetch_result"

// StaticFetcher 静态页面抓取器(使用Colly)
// 每次Fetch同步发出一个GET请求,不做重试
type StaticFetcher struct {
	collector *colly.Collector
	extractor *LinkExtractor

	// HTTP头部提供者
	headerProvider models.HeaderProvider
}

// NewStaticFetcher 创建静态抓取器
func NewStaticFetcher(config models.CrawlConfig, extractor *LinkExtractor, headerProvider models.HeaderProvider) *StaticFetcher {
	// 去重由URLQueue负责,这里允许重复访问,避免Colly内部的visited记录干扰
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(config.Timeout)

	utils.Debugf("静态抓取器: 请求超时 %v", config.Timeout)

	sf := &StaticFetcher{
		collector:      c,
		extractor:      extractor,
		headerProvider: headerProvider,
	}

	sf.setupCallbacks()

	return sf
}

// setupCallbacks 设置Colly回调
func (sf *StaticFetcher) setupCallbacks() {
	sf.collector.OnRequest(func(r *colly.Request) {
		utils.Debugf("请求: %s", r.URL.String())
	})

	// 处理响应: 解压 -> 解析HTML -> 提取文本与链接
	sf.collector.OnResponse(func(r *colly.Response) {
		result := resultFromContext(r.Ctx)
		if result == nil {
			return
		}

		body := r.Body
		if contentEncoding := r.Headers.Get("Content-Encoding"); contentEncoding != "" {
			decompressed, err := decompressResponse(contentEncoding, r.Body)
			if err != nil {
				// 传输层可能已经解压过,继续使用原始body
				utils.Debugf("解压响应失败 [%s] (编码=%s): %v", result.URL, contentEncoding, err)
			} else {
				body = decompressed
			}
		}

		content, err := ExtractPage(body)
		if err != nil {
			result.Err = &models.FetchError{
				URL:        result.URL,
				Kind:       models.FetchErrorParse,
				StatusCode: r.StatusCode,
				Cause:      err,
			}
			return
		}

		result.Page = &models.PageRecord{
			URL:        result.URL,
			Headings:   content.Headings,
			Paragraphs: content.Paragraphs,
		}
		result.Links = sf.extractor.Extract(result.URL, content.Hrefs)
	})

	// 网络错误与HTTP错误状态
	sf.collector.OnError(func(r *colly.Response, err error) {
		result := resultFromContext(r.Ctx)
		if result == nil || result.Err != nil {
			return
		}
		result.Err = &models.FetchError{
			URL:        result.URL,
			Kind:       models.FetchErrorTransport,
			StatusCode: r.StatusCode,
			Cause:      err,
		}
	})
}

// Fetch 抓取单个规范化URL
// 任何失败都记录日志并以FetchResult.Err返回,不会中断爬取
func (sf *StaticFetcher) Fetch(pageURL string) models.FetchResult {
	result := &models.FetchResult{URL: pageURL}

	var headers http.Header
	if sf.headerProvider != nil {
		h, err := sf.headerProvider.GetHeaders()
		if err != nil {
			utils.Warnf("获取HTTP头部失败: %v", err)
		} else {
			headers = h.Clone()
		}
	}

	ctx := colly.NewContext()
	ctx.Put(resultCtxKey, result)

	if err := sf.collector.Request(http.MethodGet, pageURL, nil, ctx, headers); err != nil && result.Err == nil {
		result.Err = &models.FetchError{
			URL:   pageURL,
			Kind:  models.FetchErrorTransport,
			Cause: err,
		}
	}

	if result.Err == nil && result.Page == nil {
		result.Err = &models.FetchError{
			URL:   pageURL,
			Kind:  models.FetchErrorParse,
			Cause: fmt.Errorf("未收到可解析的响应"),
		}
	}

	if result.Err != nil {
		utils.Warnf("抓取失败 %s: %v", pageURL, result.Err)
		result.Page = nil
		result.Links = nil
	}

	return *result
}

func resultFromContext(ctx *colly.Context) *models.FetchResult {
	if ctx == nil {
		return nil
	}
	result, _ := ctx.GetAny(resultCtxKey).(*models.FetchResult)
	return result
}

// decompressResponse 按Content-Encoding解压响应体
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip读取失败: %w", err)
		}
		return decompressed, nil

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("deflate读取失败: %w", err)
		}
		return decompressed, nil

	case "br":
		reader := brotli.NewReader(bytes.NewReader(body))
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("brotli读取失败: %w", err)
		}
		return decompressed, nil

	case "", "identity":
		return body, nil

	default:
		// 未知编码,仍然返回原始内容
		utils.Warnf("未知的Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}
