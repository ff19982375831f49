package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RecoveryAshes/sitescrape/internal/crawlers"
	"github.com/RecoveryAshes/sitescrape/internal/models"
	"github.com/RecoveryAshes/sitescrape/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀, 如 SITESCRAPE_CRAWL_DELAY=1s
const EnvPrefix = "SITESCRAPE"

// Config 应用程序配置
type Config struct {
	Crawl   models.CrawlConfig `mapstructure:"crawl" yaml:"crawl"`
	Clean   models.CleanConfig `mapstructure:"clean" yaml:"clean"`
	Logging LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level" yaml:"level"`
	LogDir   string         `mapstructure:"log_dir" yaml:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// LogConfig 转换为utils.LogConfig
func (l LoggingConfig) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      l.Level,
		LogDir:     l.LogDir,
		MaxSize:    l.Rotation.MaxSize,
		MaxBackups: l.Rotation.MaxBackups,
		MaxAge:     l.Rotation.MaxAge,
		Compress:   l.Rotation.Compress,
	}
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	logDefaults := utils.DefaultLogConfig()
	return &Config{
		Crawl: models.DefaultCrawlConfig(),
		Clean: models.DefaultCleanConfig(),
		Logging: LoggingConfig{
			Level:  logDefaults.Level,
			LogDir: logDefaults.LogDir,
			Rotation: RotationConfig{
				MaxSize:    logDefaults.MaxSize,
				MaxBackups: logDefaults.MaxBackups,
				MaxAge:     logDefaults.MaxAge,
				Compress:   logDefaults.Compress,
			},
		},
	}
}

// LoadConfig 加载配置文件
// configPath为空时依次搜索 ./configs, . 和 ~/.sitescrape 下的config.yaml;
// 找不到配置文件时使用默认值
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".sitescrape"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ConfigError{FilePath: configPath, Cause: err}
		}
	} else {
		utils.Debugf("使用配置文件: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{
			FilePath: v.ConfigFileUsed(),
			Cause:    fmt.Errorf("解析配置失败: %w", err),
		}
	}

	// 清洗阶段默认读取爬取阶段的输出
	if config.Clean.InputFile == "" {
		config.Clean.InputFile = config.Crawl.DumpFile
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("crawl.base_url", defaults.Crawl.BaseURL)
	v.SetDefault("crawl.seeds", defaults.Crawl.Seeds)
	v.SetDefault("crawl.seeds_file", "")
	v.SetDefault("crawl.delay", defaults.Crawl.Delay)
	v.SetDefault("crawl.timeout", defaults.Crawl.Timeout)
	v.SetDefault("crawl.asset_extensions", defaults.Crawl.AssetExtensions)
	v.SetDefault("crawl.dump_file", defaults.Crawl.DumpFile)
	v.SetDefault("crawl.report_file", "")
	v.SetDefault("crawl.progress", defaults.Crawl.Progress)

	// 没有默认值的键不读取环境变量; 为空时回退到crawl.dump_file
	v.SetDefault("clean.input_file", "")
	v.SetDefault("clean.output_file", defaults.Clean.OutputFile)
	v.SetDefault("clean.noise_labels", defaults.Clean.NoiseLabels)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	v.SetDefault("logging.rotation.max_size", defaults.Logging.Rotation.MaxSize)
	v.SetDefault("logging.rotation.max_backups", defaults.Logging.Rotation.MaxBackups)
	v.SetDefault("logging.rotation.max_age", defaults.Logging.Rotation.MaxAge)
	v.SetDefault("logging.rotation.compress", defaults.Logging.Rotation.Compress)
}

// Validate 验证爬取与清洗配置
func (c *Config) Validate() error {
	if err := ValidateCrawlConfig(c.Crawl); err != nil {
		return fmt.Errorf("crawl配置无效: %w", err)
	}
	if err := c.Clean.Validate(); err != nil {
		return fmt.Errorf("clean配置无效: %w", err)
	}
	return nil
}

// ValidateCrawlConfig 在字段检查之外, 按规范化后的URL检查种子是否在站点范围内
func ValidateCrawlConfig(config models.CrawlConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	extractor, err := crawlers.NewLinkExtractor(config.BaseURL, config.AssetExtensions)
	if err != nil {
		return err
	}
	return checkSeedScope(extractor, config.Seeds)
}

// WriteDefaultConfig 把默认配置写为YAML
// 文件已存在且force为false时返回错误
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化默认配置失败: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("无法创建配置目录 [%s]: %w", dir, err)
		}
	}

	return utils.WriteFileAtomic(path, data)
}
