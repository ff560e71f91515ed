package client

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 客户端 YAML 配置
// 所有字段均可留空，留空时使用内置默认值（见 Validate）。
type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	DeviceToken    string `yaml:"device_token"`
	Log            struct {
		Level      string `yaml:"level"`
		OutputFile string `yaml:"output_file"`
	} `yaml:"log"`
}

// LoadConfig 从 YAML 文件加载配置
// 文件不存在时返回全默认配置，不报错。
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.Validate()
			return config, nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析YAML配置失败: %w", err)
	}

	config.Validate()
	return config, nil
}

// Validate 填充默认值
func (c *Config) Validate() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Options 把配置转换为 New 可用的 Option 列表
// device_token 留空时由 New 自动生成。
func (c *Config) Options() []Option {
	opts := []Option{
		WithBaseURL(c.BaseURL),
		WithTimeout(time.Duration(c.TimeoutSeconds) * time.Second),
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	if c.DeviceToken != "" {
		opts = append(opts, WithDeviceToken(c.DeviceToken))
	}
	return opts
}
