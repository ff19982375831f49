package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

// Write 按顺序把页面写成中间文本格式,不做任何过滤
func Write(w io.Writer, pages []*models.PageRecord) error {
	bw := bufio.NewWriter(w)
	for _, page := range pages {
		fmt.Fprintf(bw, "\n%s %s\n", URLPrefix, page.URL)
		fmt.Fprintf(bw, "%s\n%s\n", HeadingsMarker, strings.Join(page.Headings, "\n"))
		fmt.Fprintf(bw, "%s\n%s\n", ParagraphsMarker, strings.Join(page.Paragraphs, "\n"))
		fmt.Fprintf(bw, "\n%s\n", Divider)
	}
	return bw.Flush()
}

// WriteFile 把整个页面集合写入文件,覆盖已有内容
func WriteFile(path string, data *models.SiteData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败 [%s]: %w", path, err)
	}

	if err := Write(f, data.Pages()); err != nil {
		f.Close()
		return fmt.Errorf("写入输出文件失败 [%s]: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("关闭输出文件失败 [%s]: %w", path, err)
	}
	return nil
}
