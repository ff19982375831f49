package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
)

var _ models.HeaderProvider = (*HeaderManager)(nil)

const (
	// DefaultUserAgent 默认User-Agent
	DefaultUserAgent = "Mozilla/5.0"
)

// HeaderManager 管理HTTP请求头部
// 实现 models.HeaderProvider 接口
type HeaderManager struct {
	// defaults 系统默认头部 (硬编码)
	defaults http.Header

	// config 配置文件 crawl.headers
	config http.Header

	// cli 从命令行参数解析的头部
	cli http.Header

	// validated 标记头部是否已通过验证
	validated bool
}

// NewHeaderManager 创建头部管理器
// 参数:
//   - configHeaders: 配置文件中的 crawl.headers
//   - cliHeaders: 命令行传递的头部字符串列表 ("Name: Value")
//
// 返回:
//   - *HeaderManager: 头部管理器实例
//   - error: 如果命令行参数解析失败
func NewHeaderManager(configHeaders map[string]string, cliHeaders []string) (*HeaderManager, error) {
	hm := &HeaderManager{
		defaults: getDefaultHeaders(),
		config:   make(http.Header),
		cli:      make(http.Header),
	}

	for name, value := range configHeaders {
		hm.config.Set(name, value)
	}

	for i, raw := range cliHeaders {
		name, value, err := splitHeaderFlag(raw)
		if err != nil {
			return nil, fmt.Errorf("参数 --header 第%d项格式错误: %w", i+1, err)
		}
		hm.cli.Set(name, value)
	}

	return hm, nil
}

// splitHeaderFlag 拆分 -H 参数 "Name: Value", 值中可以再含冒号
func splitHeaderFlag(raw string) (name, value string, err error) {
	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", fmt.Errorf("缺少冒号分隔符,应为 'Name: Value'")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("头部名称不能为空")
	}

	return name, strings.TrimSpace(value), nil
}

// getDefaultHeaders 返回系统默认头部
func getDefaultHeaders() http.Header {
	return http.Header{
		"User-Agent": []string{DefaultUserAgent},
	}
}

// Validate 验证所有头部的合法性
// 验证顺序: 默认 → 配置 → 命令行
func (hm *HeaderManager) Validate() error {
	if err := utils.ValidateHeaders(hm.defaults); err != nil {
		utils.Errorf("默认头部验证失败: %v", err)
		return err
	}

	if err := utils.ValidateHeaders(hm.config); err != nil {
		utils.Errorf("配置文件头部验证失败: %v", err)
		return err
	}

	if err := utils.ValidateHeaders(hm.cli); err != nil {
		utils.Errorf("命令行头部验证失败: %v", err)
		return err
	}

	hm.validated = true
	utils.Debugf("所有HTTP头部验证通过")
	return nil
}

// GetMergedHeaders 按优先级合并头部 (default < config < cli)
func (hm *HeaderManager) GetMergedHeaders() http.Header {
	result := make(http.Header)

	for name, values := range hm.defaults {
		result[name] = values
	}
	for name, values := range hm.config {
		result[name] = values
	}
	for name, values := range hm.cli {
		result[name] = values
	}

	return result
}

// GetSafeHeaders 返回脱敏后的头部 (用于日志)
func (hm *HeaderManager) GetSafeHeaders() map[string]string {
	return utils.RedactHeaders(hm.GetMergedHeaders())
}

// GetHeaders 实现 HeaderProvider 接口
// 返回当前有效的HTTP请求头部
func (hm *HeaderManager) GetHeaders() (http.Header, error) {
	if !hm.validated {
		if err := hm.Validate(); err != nil {
			return nil, err
		}
	}
	return hm.GetMergedHeaders(), nil
}
