// Package crawlers 提供单站点页面抓取所需的组件
//
// # 概述
//
// crawlers包只负责"一页一页"的工作: URL规范化、链接过滤、待爬队列、
// 以及单页抓取与文本提取。爬取循环本身在core包中。
//
// # 核心组件
//
// ## NormalizeURL / ResolveURL
//
// 规范化URL作为去重键: 去片段、去首尾空白、去掉一个结尾斜杠。
//
//	ResolveURL("https://example.com/a", "b/#top") // "https://example.com/b"
//
// ## LinkExtractor (链接提取器)
//
// 解析href并过滤: 主机名必须等于站点主机名,且URL以站点根URL为前缀,
// 且不以资源扩展名结尾(.pdf/.png/.jpg/...)。
//
//	extractor, err := NewLinkExtractor("https://example.com", models.DefaultAssetExtensions)
//	links := extractor.Extract(pageURL, hrefs)
//
// ## URLQueue (待爬队列)
//
// 先进先出的待爬队列与已访问集合。已访问的URL不能再次入队。
//
//	queue := NewURLQueue()
//	_ = queue.Push("https://example.com", "")
//	item, ok := queue.Pop()
//	queue.MarkVisited(item.URL)
//
// ## StaticFetcher (静态抓取器)
//
// 基于Colly的同步抓取器,每次Fetch发出一个请求,
// 使用goquery提取h1-h3、p以及a[href]。失败以FetchResult.Err返回。
//
//	fetcher := NewStaticFetcher(config, extractor, headerManager)
//	result := fetcher.Fetch("https://example.com/about")
//
// # 并发
//
// 所有组件都只在单个爬取循环中使用,不做并发保护。
package crawlers
