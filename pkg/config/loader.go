package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/farmvale.yaml
var defaultConfigYAML []byte

// 配置文件名
const configFileName = "farmvale.yaml"

// Load 加载游戏配置
// 查找顺序: customPath -> ~/.farmvale/farmvale.yaml -> ./configs/farmvale.yaml -> 内嵌默认配置
//
// 指定 customPath 时读取或解析失败直接返回错误；其余位置失败时记录警告并继续查找。
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return Parse(data, customPath)
	}

	candidates := []string{userConfigPath(), filepath.Join("configs", configFileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Parse(data, path)
		if err != nil {
			log.Warn("ignoring config file", "path", path, "error", err)
			continue
		}
		log.Debug("loaded config", "path", path)
		return cfg, nil
	}

	return Default()
}

// Default 返回内嵌的默认配置
func Default() (*Config, error) {
	return Parse(defaultConfigYAML, "embedded default")
}

// Parse 解析 YAML 配置数据，应用默认值并验证
//
// 参数:
//   - data: YAML 内容
//   - source: 配置来源（仅用于错误信息）
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML from %s: %w", source, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", source, err)
	}

	return &cfg, nil
}

// userConfigPath 返回用户目录下的配置文件路径
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".farmvale", configFileName)
}
