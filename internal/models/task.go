package models

import (
	"fmt"
	"net/url"
	"time"
)

// TaskStatus 任务状态
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"   // 待执行
	TaskStatusRunning   TaskStatus = "running"   // 执行中
	TaskStatusCompleted TaskStatus = "completed" // 已完成
	TaskStatusFailed    TaskStatus = "failed"    // 失败
)

// 默认值 (与原始抓取脚本保持一致)
const (
	DefaultBaseURL    = "https://www.powerconnect.ai"
	DefaultDelay      = 800 * time.Millisecond
	DefaultTimeout    = 12 * time.Second
	DefaultDumpFile   = "pcai_site_data.txt"
	DefaultOutputFile = "pcai_cleaned_data.json"
	MaxTimeout        = 5 * time.Minute
)

// DefaultSeeds 默认种子URL
var DefaultSeeds = []string{
	"https://www.powerconnect.ai/",
	"https://www.powerconnect.ai/about-us/",
}

// DefaultAssetExtensions 不跟随的静态资源扩展名
var DefaultAssetExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".svg", ".webp", ".gif"}

// DefaultNoiseLabels 导航/页脚等固定噪声标签 (大小写敏感)
var DefaultNoiseLabels = []string{
	"Home", "Solutions", "Products", "Product", "About", "About us", "About Us", "Contact",
	"Book a Demo", "Privacy Policy", "Terms", "Careers", "Blog", "LinkedIn", "X",
}

// CrawlStats 爬取统计
type CrawlStats struct {
	VisitedURLs    int     `json:"visited_urls"`    // 已访问URL数 (含失败)
	Pages          int     `json:"pages"`           // 成功抓取页面数
	FailedPages    int     `json:"failed_pages"`    // 失败页面数
	DiscoveredURLs int     `json:"discovered_urls"` // 新加入待爬队列的URL数
	Duration       float64 `json:"duration"`        // 总耗时(秒)
}

// CrawlConfig 爬取配置
type CrawlConfig struct {
	BaseURL         string            `mapstructure:"base_url" yaml:"base_url" json:"base_url"`                         // 站点根URL (scheme+host)
	Seeds           []string          `mapstructure:"seeds" yaml:"seeds" json:"seeds"`                                  // 种子URL
	SeedsFile       string            `mapstructure:"seeds_file" yaml:"seeds_file,omitempty" json:"seeds_file,omitempty"` // 额外种子文件(每行一个URL)
	Delay           time.Duration     `mapstructure:"delay" yaml:"delay" json:"delay"`                                  // 每次抓取后的固定等待
	Timeout         time.Duration     `mapstructure:"timeout" yaml:"timeout" json:"timeout"`                            // 单次请求超时
	AssetExtensions []string          `mapstructure:"asset_extensions" yaml:"asset_extensions" json:"asset_extensions"` // 跳过的资源扩展名
	Headers         map[string]string `mapstructure:"headers" yaml:"headers,omitempty" json:"headers,omitempty"`        // 自定义HTTP头部
	DumpFile        string            `mapstructure:"dump_file" yaml:"dump_file" json:"dump_file"`                      // 中间文本输出
	ReportFile      string            `mapstructure:"report_file" yaml:"report_file,omitempty" json:"report_file,omitempty"` // 爬取报告(JSON), 为空则不写
	Progress        bool              `mapstructure:"progress" yaml:"progress" json:"progress"`                         // 是否显示进度条
}

// DefaultCrawlConfig 默认爬取配置
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		BaseURL:         DefaultBaseURL,
		Seeds:           append([]string(nil), DefaultSeeds...),
		Delay:           DefaultDelay,
		Timeout:         DefaultTimeout,
		AssetExtensions: append([]string(nil), DefaultAssetExtensions...),
		DumpFile:        DefaultDumpFile,
		Progress:        true,
	}
}

// Validate 验证配置
func (c *CrawlConfig) Validate() error {
	if err := ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base_url无效: %w", err)
	}
	if len(c.Seeds) == 0 && c.SeedsFile == "" {
		return fmt.Errorf("至少需要一个种子URL")
	}
	// 站点范围检查需要URL规范化, 在core中完成
	for _, seed := range c.Seeds {
		if err := ValidateURL(seed); err != nil {
			return fmt.Errorf("种子URL无效 [%s]: %w", seed, err)
		}
	}
	if c.Delay <= 0 {
		return fmt.Errorf("抓取间隔必须大于0: %v", c.Delay)
	}
	if c.Timeout <= 0 || c.Timeout > MaxTimeout {
		return fmt.Errorf("请求超时必须在0-%v之间: %v", MaxTimeout, c.Timeout)
	}
	if c.DumpFile == "" {
		return fmt.Errorf("dump_file不能为空")
	}
	return nil
}

// CleanConfig 清洗配置
type CleanConfig struct {
	InputFile   string   `mapstructure:"input_file" yaml:"input_file" json:"input_file"`       // 爬取阶段生成的文本
	OutputFile  string   `mapstructure:"output_file" yaml:"output_file" json:"output_file"`    // 结构化JSON输出
	NoiseLabels []string `mapstructure:"noise_labels" yaml:"noise_labels" json:"noise_labels"` // 噪声标签
}

// DefaultCleanConfig 默认清洗配置
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		InputFile:   DefaultDumpFile,
		OutputFile:  DefaultOutputFile,
		NoiseLabels: append([]string(nil), DefaultNoiseLabels...),
	}
}

// Validate 验证配置
func (c *CleanConfig) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input_file不能为空")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file不能为空")
	}
	if c.InputFile == c.OutputFile {
		return fmt.Errorf("input_file与output_file不能相同: %s", c.InputFile)
	}
	return nil
}

// CrawlTask 一次爬取运行
type CrawlTask struct {
	ID          string     `json:"id"`                     // 运行唯一ID (UUID)
	BaseURL     string     `json:"base_url"`               // 站点根URL
	Host        string     `json:"host"`                   // 解析出的主机名
	Seeds       []string   `json:"seeds"`                  // 规范化后的种子
	CreatedAt   time.Time  `json:"created_at"`             // 创建时间
	StartedAt   *time.Time `json:"started_at,omitempty"`   // 开始时间
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 完成时间
	Status      TaskStatus `json:"status"`                 // 任务状态
	Stats       CrawlStats `json:"stats"`                  // 统计
}

// NewCrawlTask 创建新任务
func NewCrawlTask(baseURL string, seeds []string) (*CrawlTask, error) {
	if err := ValidateURL(baseURL); err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(baseURL)

	return &CrawlTask{
		ID:        generateID(),
		BaseURL:   baseURL,
		Host:      parsed.Host,
		Seeds:     seeds,
		CreatedAt: time.Now(),
		Status:    TaskStatusPending,
	}, nil
}

// Start 标记任务开始
func (t *CrawlTask) Start() {
	now := time.Now()
	t.StartedAt = &now
	t.Status = TaskStatusRunning
}

// Finish 标记任务结束并记录耗时
func (t *CrawlTask) Finish(err error) {
	now := time.Now()
	t.CompletedAt = &now
	if t.StartedAt != nil {
		t.Stats.Duration = now.Sub(*t.StartedAt).Seconds()
	}
	if err != nil {
		t.Status = TaskStatusFailed
		return
	}
	t.Status = TaskStatusCompleted
}
