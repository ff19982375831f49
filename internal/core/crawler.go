package core

import (
	"fmt"
	"os"
	"time"

	"github.com/RecoveryAshes/sitescrape/internal/crawlers"
	"github.com/RecoveryAshes/sitescrape/internal/dump"
	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// PageFetcher 抓取单个规范化URL
// 失败通过FetchResult.Err返回,不应panic
type PageFetcher interface {
	Fetch(pageURL string) models.FetchResult
}

// Crawler 单站点爬取器
// 每次运行新建一个实例; 待爬队列、已访问集合与页面数据都归实例所有
type Crawler struct {
	config    models.CrawlConfig
	task      *models.CrawlTask
	extractor *crawlers.LinkExtractor
	fetcher   PageFetcher
	queue     *crawlers.URLQueue
	pages     *models.SiteData

	// sleep 每次抓取后的固定等待,测试中替换
	sleep func(time.Duration)

	log zerolog.Logger
}

// NewCrawler 创建使用Colly抓取器的爬取器
func NewCrawler(config models.CrawlConfig, headerProvider models.HeaderProvider) (*Crawler, error) {
	extractor, err := crawlers.NewLinkExtractor(config.BaseURL, config.AssetExtensions)
	if err != nil {
		return nil, err
	}

	fetcher := crawlers.NewStaticFetcher(config, extractor, headerProvider)
	return newCrawler(config, extractor, fetcher)
}

// NewCrawlerWithFetcher 创建使用自定义抓取器的爬取器
func NewCrawlerWithFetcher(config models.CrawlConfig, fetcher PageFetcher) (*Crawler, error) {
	extractor, err := crawlers.NewLinkExtractor(config.BaseURL, config.AssetExtensions)
	if err != nil {
		return nil, err
	}
	return newCrawler(config, extractor, fetcher)
}

func newCrawler(config models.CrawlConfig, extractor *crawlers.LinkExtractor, fetcher PageFetcher) (*Crawler, error) {
	seeds, err := collectSeeds(config, extractor)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("没有可用的种子URL")
	}

	task, err := models.NewCrawlTask(extractor.BaseURL(), seeds)
	if err != nil {
		return nil, fmt.Errorf("创建爬取任务失败: %w", err)
	}

	c := &Crawler{
		config:    config,
		task:      task,
		extractor: extractor,
		fetcher:   fetcher,
		queue:     crawlers.NewURLQueue(),
		pages:     models.NewSiteData(),
		sleep:     time.Sleep,
		log:       utils.With().Str("run_id", task.ID).Logger(),
	}

	for _, seed := range seeds {
		// 重复种子忽略
		_ = c.queue.Push(seed, "")
	}

	return c, nil
}

// checkSeedScope 配置中的种子规范化后必须在站点范围内
func checkSeedScope(extractor *crawlers.LinkExtractor, seeds []string) error {
	for _, seed := range seeds {
		if ok, reason := extractor.ShouldFollowLink(crawlers.NormalizeURL(seed)); !ok {
			return fmt.Errorf("种子URL不在站点范围内 [%s] (base_url: %s): %s", seed, extractor.BaseURL(), reason)
		}
	}
	return nil
}

// collectSeeds 合并配置种子与种子文件, 规范化并去重
// 种子文件中超出站点范围的URL被跳过
func collectSeeds(config models.CrawlConfig, extractor *crawlers.LinkExtractor) ([]string, error) {
	if err := checkSeedScope(extractor, config.Seeds); err != nil {
		return nil, err
	}

	seeds := make([]string, 0, len(config.Seeds))
	seen := make(map[string]bool)

	add := func(raw string) {
		normalized := crawlers.NormalizeURL(raw)
		if normalized == "" || seen[normalized] {
			return
		}
		seen[normalized] = true
		seeds = append(seeds, normalized)
	}

	for _, seed := range config.Seeds {
		add(seed)
	}

	if config.SeedsFile != "" {
		fileSeeds, err := utils.ReadURLsFromFile(config.SeedsFile)
		if err != nil {
			return nil, fmt.Errorf("读取种子文件失败: %w", err)
		}
		for _, seed := range fileSeeds {
			if ok, reason := extractor.ShouldFollowLink(crawlers.NormalizeURL(seed)); !ok {
				utils.Warnf("跳过种子 %s: %s", seed, reason)
				continue
			}
			add(seed)
		}
	}

	return seeds, nil
}

// Crawl 执行爬取, 直到待爬队列为空
// 单个页面失败只计数, 不会中止运行
func (c *Crawler) Crawl() error {
	c.task.Start()
	c.log.Info().
		Str("base_url", c.task.BaseURL).
		Strs("seeds", c.task.Seeds).
		Dur("delay", c.config.Delay).
		Msg("开始爬取")

	var bar *progressbar.ProgressBar
	if c.config.Progress {
		bar = utils.NewProgressBar(os.Stderr, -1, "爬取中")
	}

	stats := &c.task.Stats
	for {
		item, ok := c.queue.Pop()
		if !ok {
			break
		}

		if c.queue.IsVisited(item.URL) {
			continue
		}
		c.queue.MarkVisited(item.URL)
		stats.VisitedURLs++

		c.log.Info().Str("url", item.URL).Int("pending", c.queue.PendingCount()).Msg("抓取页面")
		result := c.fetcher.Fetch(item.URL)

		if result.OK() {
			c.pages.Put(result.Page)
			stats.Pages++

			for _, link := range result.Links {
				if err := c.queue.Push(link, item.URL); err == nil {
					stats.DiscoveredURLs++
				}
			}
		} else {
			stats.FailedPages++
			c.log.Debug().Str("url", item.URL).Str("source", item.SourceURL).Err(result.Err).Msg("页面失败, 不重试")
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		c.sleep(c.config.Delay)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	c.task.Finish(nil)
	c.log.Info().
		Int("visited", stats.VisitedURLs).
		Int("pages", stats.Pages).
		Int("failed", stats.FailedPages).
		Float64("duration", stats.Duration).
		Msg("爬取完成")

	return nil
}

// Run 爬取并写出文本转储; 配置了report_file时额外写出JSON报告
func (c *Crawler) Run() error {
	if err := c.Crawl(); err != nil {
		return err
	}

	if err := dump.WriteFile(c.config.DumpFile, c.pages); err != nil {
		return err
	}
	utils.Infof("已写入 %d 个页面到 %s", c.pages.Len(), c.config.DumpFile)

	if c.config.ReportFile != "" {
		if err := utils.SaveJSON(c.config.ReportFile, c.task); err != nil {
			return fmt.Errorf("写入爬取报告失败: %w", err)
		}
	}

	return nil
}

// Pages 返回已抓取的页面
func (c *Crawler) Pages() *models.SiteData {
	return c.pages
}

// Task 返回本次运行的任务信息
func (c *Crawler) Task() *models.CrawlTask {
	return c.task
}

// GetStats 获取统计信息
func (c *Crawler) GetStats() models.CrawlStats {
	return c.task.Stats
}
