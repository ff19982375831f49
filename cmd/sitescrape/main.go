package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/sitescrape/internal/core"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string

	// HTTP头部参数
	headers        []string // 自定义HTTP请求头
	validateConfig bool     // 验证配置文件

	// config init 参数
	forceInit bool
)

// appConfig 在PersistentPreRunE中加载
var appConfig *core.Config

var rootCmd = &cobra.Command{
	Use:   "sitescrape",
	Short: "单站点文本爬取与清洗工具",
	Long: `sitescrape - 单站点文本爬取与清洗工具

两个阶段:
  • crawl: 从种子URL开始广度优先爬取同一站点,提取标题和段落,写出文本转储
  • clean: 解析文本转储,过滤导航/页脚噪声,输出JSON记录

示例:
  # 爬取并清洗 (使用 configs/config.yaml 或默认配置)
  sitescrape run

  # 只爬取, 自定义请求头
  sitescrape crawl -H "User-Agent: MyBot/1.0" --delay 1s

  # 只清洗已有的转储文件
  sitescrape clean -i pcai_site_data.txt -o cleaned.json

  # 生成默认配置文件
  sitescrape config init configs/config.yaml

  # 验证配置文件
  sitescrape --validate-config

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		appConfig = config

		logConfig := config.Logging.LogConfig()

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		} else if verbose {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfig {
			return runValidateConfig()
		}
		return cmd.Help()
	},
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "爬取站点并写出文本转储",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfig {
			return runValidateConfig()
		}
		if err := applyCrawlFlags(cmd, &appConfig.Crawl); err != nil {
			return err
		}
		return runCrawl()
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "解析文本转储并输出JSON记录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyCleanFlags(cmd, &appConfig.Clean); err != nil {
			return err
		}
		return runClean()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "依次执行爬取和清洗",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateConfig {
			return runValidateConfig()
		}
		if err := applyCrawlFlags(cmd, &appConfig.Crawl); err != nil {
			return err
		}
		if err := applyCleanFlags(cmd, &appConfig.Clean); err != nil {
			return err
		}
		// 清洗阶段读取本次爬取的输出
		if !cmd.Flags().Changed("input") {
			appConfig.Clean.InputFile = appConfig.Crawl.DumpFile
		}

		if err := runCrawl(); err != nil {
			return err
		}
		return runClean()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置文件管理",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "写出默认配置文件",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "configs/config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := core.WriteDefaultConfig(path, forceInit); err != nil {
			return err
		}
		utils.Infof("✅ 默认配置已写入: %s", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitescrape %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
	},
}

// newHeaderManager 按 默认 < crawl.headers < -H 合并请求头
func newHeaderManager() (*core.HeaderManager, error) {
	headerManager, err := core.NewHeaderManager(appConfig.Crawl.Headers, headers)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP头部管理器失败: %w", err)
	}
	return headerManager, nil
}

// runValidateConfig 验证配置与HTTP头部, 输出脱敏后的有效头部
func runValidateConfig() error {
	utils.Info("🔍 验证配置...")

	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	headerManager, err := newHeaderManager()
	if err != nil {
		return err
	}
	if err := headerManager.Validate(); err != nil {
		return fmt.Errorf("HTTP头部验证失败: %w", err)
	}

	safeHeaders := headerManager.GetSafeHeaders()
	utils.Info("✅ 配置验证通过!")
	utils.Infof("当前有效的HTTP头部 (%d个):", len(safeHeaders))
	for name, value := range safeHeaders {
		utils.Infof("  %s: %s", name, value)
	}
	return nil
}

func runCrawl() error {
	if err := core.ValidateCrawlConfig(appConfig.Crawl); err != nil {
		return fmt.Errorf("爬取配置无效: %w", err)
	}

	headerManager, err := newHeaderManager()
	if err != nil {
		return err
	}
	if err := headerManager.Validate(); err != nil {
		return fmt.Errorf("HTTP头部验证失败: %w", err)
	}
	utils.Debugf("HTTP头部: %v", headerManager.GetSafeHeaders())

	crawler, err := core.NewCrawler(appConfig.Crawl, headerManager)
	if err != nil {
		return fmt.Errorf("创建爬取器失败: %w", err)
	}

	if err := crawler.Run(); err != nil {
		return fmt.Errorf("爬取失败: %w", err)
	}

	stats := crawler.GetStats()
	fmt.Println("\n==================================================")
	fmt.Println("📊 爬取统计")
	fmt.Println("==================================================")
	fmt.Printf("🆔 运行ID: %s\n", crawler.Task().ID)
	fmt.Printf("✅ 访问URL数: %d\n", stats.VisitedURLs)
	fmt.Printf("✅ 成功页面: %d\n", stats.Pages)
	fmt.Printf("❌ 失败页面: %d\n", stats.FailedPages)
	fmt.Printf("⏱️  总耗时: %.2f秒\n", stats.Duration)
	fmt.Printf("📄 转储文件: %s\n", appConfig.Crawl.DumpFile)
	fmt.Println("==================================================")

	return nil
}

func runClean() error {
	if err := appConfig.Clean.Validate(); err != nil {
		return fmt.Errorf("清洗配置无效: %w", err)
	}

	count, err := core.NewCleaner(appConfig.Clean).Run()
	if err != nil {
		return fmt.Errorf("清洗失败: %w", err)
	}

	fmt.Printf("已保存 %d 条记录到 %s\n", count, appConfig.Clean.OutputFile)
	return nil
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// HTTP头部参数
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "验证配置文件正确性")

	addCrawlFlags(crawlCmd)
	addCrawlFlags(runCmd)
	addCleanFlags(cleanCmd)
	addCleanFlags(runCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "覆盖已存在的配置文件")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(crawlCmd, cleanCmd, runCmd, configCmd, versionCmd)
}

func main() {
	// 设置信号处理(Ctrl+C退出)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		utils.Warnf("收到中断信号: %v, 退出", sig)
		os.Exit(130)
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
