package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

// maxLineSize 单行最大长度,长段落可能远超bufio默认的64KB
const maxLineSize = 16 * 1024 * 1024

// State 解析器所处的区块
type State int

const (
	StateIdle         State = iota // 不在任何区块内
	StateInHeadings                // Headings: 之后
	StateInParagraphs              // Paragraphs: 之后
)

// String 实现fmt.Stringer
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInHeadings:
		return "headings"
	case StateInParagraphs:
		return "paragraphs"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseStats 解析统计
type ParseStats struct {
	Lines       int // 非空行数
	Garbage     int // 被噪声过滤器丢弃的行
	OutOfPlace  int // 不在任何区块内而被丢弃的行
	EmptyURLs   int // 内容为空的URL行
	RecordCount int // 输出记录数
}

type pageBuilder struct {
	url        string
	headings   []string
	paragraphs []string
}

// Parser 逐行重建页面记录的状态机
// 格式错误只会导致对应行被丢弃,不会中止解析
type Parser struct {
	filter  *NoiseFilter
	state   State
	current *pageBuilder
	records []models.CleanedRecord
	stats   ParseStats
}

// NewParser 创建解析器
func NewParser(filter *NoiseFilter) *Parser {
	return &Parser{
		filter: filter,
		state:  StateIdle,
	}
}

// State 当前状态
func (p *Parser) State() State {
	return p.state
}

// Stats 当前统计
func (p *Parser) Stats() ParseStats {
	return p.stats
}

// Feed 处理一行输入
func (p *Parser) Feed(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	p.stats.Lines++

	switch {
	case strings.HasPrefix(line, URLPrefix):
		p.flush()
		url := strings.TrimSpace(strings.TrimPrefix(line, URLPrefix))
		if url == "" {
			p.stats.EmptyURLs++
		}
		p.current = &pageBuilder{url: url}
		p.state = StateIdle

	case strings.HasPrefix(line, HeadingsMarker):
		p.state = StateInHeadings

	case strings.HasPrefix(line, ParagraphsMarker):
		p.state = StateInParagraphs

	case IsDivider(line):
		p.state = StateIdle

	case p.filter.IsGarbage(line):
		p.stats.Garbage++

	default:
		p.appendContent(line)
	}
}

func (p *Parser) appendContent(line string) {
	if p.current == nil {
		p.stats.OutOfPlace++
		return
	}

	switch p.state {
	case StateInHeadings:
		p.current.headings = append(p.current.headings, line)
	case StateInParagraphs:
		p.current.paragraphs = append(p.current.paragraphs, line)
	default:
		p.stats.OutOfPlace++
	}
}

// flush 输出当前记录; URL为空的记录被丢弃
func (p *Parser) flush() {
	if p.current == nil || p.current.url == "" {
		p.current = nil
		return
	}

	headings := p.current.headings
	if headings == nil {
		headings = []string{}
	}

	p.records = append(p.records, models.CleanedRecord{
		URL:      p.current.url,
		Headings: headings,
		Content:  strings.Join(p.current.paragraphs, " "),
	})
	p.stats.RecordCount++
	p.current = nil
}

// Finish 输入结束,输出最后一条记录并返回全部记录
func (p *Parser) Finish() []models.CleanedRecord {
	p.flush()
	p.state = StateIdle

	records := p.records
	if records == nil {
		records = []models.CleanedRecord{}
	}
	return records
}

// parseLines 解析内存中的行序列
func parseLines(lines []string, filter *NoiseFilter) []models.CleanedRecord {
	p := NewParser(filter)
	for _, line := range lines {
		p.Feed(line)
	}
	return p.Finish()
}

// Parse 从reader逐行解析
func Parse(r io.Reader, filter *NoiseFilter) ([]models.CleanedRecord, ParseStats, error) {
	p := NewParser(filter)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.Feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, p.Stats(), fmt.Errorf("读取中间文本失败: %w", err)
	}

	records := p.Finish()
	return records, p.Stats(), nil
}
