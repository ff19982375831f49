package core

import (
	"fmt"
	"os"

	"github.com/RecoveryAshes/sitescrape/internal/dump"
	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
)

// Cleaner 把文本转储解析为结构化记录并写出JSON
type Cleaner struct {
	config models.CleanConfig
	filter *dump.NoiseFilter
}

// NewCleaner 创建清洗器
func NewCleaner(config models.CleanConfig) *Cleaner {
	return &Cleaner{
		config: config,
		filter: dump.NewNoiseFilter(config.NoiseLabels),
	}
}

// Run 执行清洗, 返回写出的记录数
func (c *Cleaner) Run() (int, error) {
	f, err := os.Open(c.config.InputFile)
	if err != nil {
		return 0, fmt.Errorf("打开输入文件失败 [%s]: %w", c.config.InputFile, err)
	}
	defer f.Close()

	records, stats, err := dump.Parse(f, c.filter)
	if err != nil {
		return 0, fmt.Errorf("读取输入文件失败 [%s]: %w", c.config.InputFile, err)
	}

	utils.Debugf("解析统计: 行=%d 噪声=%d 位置错误=%d 空URL=%d",
		stats.Lines, stats.Garbage, stats.OutOfPlace, stats.EmptyURLs)

	if err := dump.WriteRecordsFile(c.config.OutputFile, records); err != nil {
		return 0, err
	}

	utils.Infof("已保存 %d 条记录到 %s", len(records), c.config.OutputFile)
	return len(records), nil
}
