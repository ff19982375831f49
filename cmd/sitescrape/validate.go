package main

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/spf13/cobra"
)

// addCrawlFlags 注册覆盖crawl配置的命令行参数
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "站点根URL (覆盖 crawl.base_url)")
	cmd.Flags().StringSlice("seed", nil, "种子URL,可多次指定 (覆盖 crawl.seeds)")
	cmd.Flags().String("seeds-file", "", "种子URL文件,每行一个")
	cmd.Flags().Duration("delay", 0, "每次抓取后的等待时间 (如 800ms)")
	cmd.Flags().Duration("timeout", 0, "单次请求超时 (如 12s)")
	cmd.Flags().String("dump-file", "", "文本转储输出路径")
	cmd.Flags().String("report", "", "爬取报告(JSON)输出路径")
	cmd.Flags().Bool("no-progress", false, "不显示进度条")
}

// addCleanFlags 注册覆盖clean配置的命令行参数
func addCleanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "文本转储输入路径")
	cmd.Flags().StringP("output", "o", "", "JSON输出路径")
}

// applyCrawlFlags 只应用用户显式设置的参数
func applyCrawlFlags(cmd *cobra.Command, config *models.CrawlConfig) error {
	flags := cmd.Flags()

	if flags.Changed("base-url") {
		v, _ := flags.GetString("base-url")
		if err := models.ValidateURL(v); err != nil {
			return fmt.Errorf("无效的 --base-url: %w", err)
		}
		config.BaseURL = v
		// 未同时指定种子时,从站点根开始
		if !flags.Changed("seed") {
			config.Seeds = []string{v}
		}
	}
	if flags.Changed("seed") {
		v, _ := flags.GetStringSlice("seed")
		config.Seeds = v
	}
	if flags.Changed("seeds-file") {
		config.SeedsFile, _ = flags.GetString("seeds-file")
	}
	if flags.Changed("delay") {
		v, _ := flags.GetDuration("delay")
		if err := validateDelay(v); err != nil {
			return err
		}
		config.Delay = v
	}
	if flags.Changed("timeout") {
		config.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("dump-file") {
		config.DumpFile, _ = flags.GetString("dump-file")
	}
	if flags.Changed("report") {
		config.ReportFile, _ = flags.GetString("report")
	}
	if flags.Changed("no-progress") {
		noProgress, _ := flags.GetBool("no-progress")
		config.Progress = !noProgress
	}

	return nil
}

// applyCleanFlags 只应用用户显式设置的参数
func applyCleanFlags(cmd *cobra.Command, config *models.CleanConfig) error {
	flags := cmd.Flags()

	if flags.Changed("input") {
		config.InputFile, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		config.OutputFile, _ = flags.GetString("output")
	}
	if config.InputFile == "" || config.OutputFile == "" {
		return fmt.Errorf("输入和输出路径不能为空")
	}

	return nil
}

// validateDelay 抓取间隔必须大于0且不超过60秒
func validateDelay(d time.Duration) error {
	if d <= 0 || d > time.Minute {
		return fmt.Errorf("抓取间隔必须在(0, 60s]之间,当前值: %v", d)
	}
	return nil
}
