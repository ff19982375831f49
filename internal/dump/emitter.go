package dump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
)

// EncodeRecords 把记录编码为缩进的JSON数组
// 不转义HTML字符,非ASCII原样输出
func EncodeRecords(w io.Writer, records []models.CleanedRecord) error {
	if records == nil {
		records = []models.CleanedRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("写入JSON失败: %w", err)
	}
	return nil
}

// WriteRecordsFile 把记录写入文件,覆盖已有内容
func WriteRecordsFile(path string, records []models.CleanedRecord) error {
	var buf bytes.Buffer
	if err := EncodeRecords(&buf, records); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, buf.Bytes())
}
