package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig TCP 服务器配置
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Greeting string `yaml:"greeting"`  // 连接成功后发送的欢迎语
	DeckFile string `yaml:"deck_file"` // 预洗牌组文件路径
}

// RedisConfig Redis 配置，Addr 为空时禁用排行榜
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4999
	}
	if cfg.Server.Greeting == "" {
		cfg.Server.Greeting = "Welcome to Five Hundred"
	}
	if cfg.Server.DeckFile == "" {
		cfg.Server.DeckFile = "configs/decks.txt"
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     4999,
			Greeting: "Welcome to Five Hundred",
			DeckFile: "configs/decks.txt",
		},
	}
}
