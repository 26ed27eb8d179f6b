package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Business BusinessConfig `toml:"business"`
	Chart    ChartConfig    `toml:"chart"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// BusinessConfig 业务配置
// 所有分析参数都由这里显式传入分析器，核心代码不读取任何全局常量
type BusinessConfig struct {
	DefaultCommission float64 `toml:"default_commission"` // 佣金比例默认值
	AnomalyThreshold  float64 `toml:"anomaly_threshold"`  // 日销售额突变阈值（0.3 = 30%）
	TopN              int     `toml:"top_n"`              // 热销榜条目数
}

// ChartConfig 图表渲染配置
type ChartConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8000,
			DevMode: false,
		},
		Business: BusinessConfig{
			DefaultCommission: 0.15,
			AnomalyThreshold:  0.3,
			TopN:              5,
		},
		Chart: ChartConfig{
			Width:  1024,
			Height: 512,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置
// 文件不存在时返回默认配置；环境变量 DASHLY_PORT 可覆盖端口
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv 环境变量覆盖（用于 E2E / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("DASHLY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
