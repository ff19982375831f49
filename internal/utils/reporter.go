package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// SaveJSON 以缩进JSON写入文件
func SaveJSON(path string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if err := WriteFileAtomic(path, jsonData); err != nil {
		return err
	}

	Debugf("保存报告: %s", path)
	return nil
}

// NewProgressBar 创建进度条
// max为-1时显示为不定长的计数器
func NewProgressBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
