package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/zhouzirui/students/backend/internal/service/upstream"
)

const defaultUpstreamTimeout = 10 * time.Second

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Log      LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	up, err := loadUpstreamConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Upstream: up, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// UpstreamConfig 描述学生数据来源。
type UpstreamConfig struct {
	URL     string
	Timeout time.Duration
}

func loadUpstreamConfig() (UpstreamConfig, error) {
	rawURL := getEnvOrDefault("UPSTREAM_URL", upstream.DefaultURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return UpstreamConfig{}, fmt.Errorf("invalid UPSTREAM_URL value %q: must be an absolute http(s) URL", rawURL)
	}

	timeout, err := parseDurationEnv("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return UpstreamConfig{}, err
	}
	if timeout <= 0 {
		return UpstreamConfig{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT value %q: must be positive", timeout)
	}

	return UpstreamConfig{URL: rawURL, Timeout: timeout}, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  zapcore.Level
	Format string
}

func loadLogConfig() (LogConfig, error) {
	raw := getEnvOrDefault("LOG_LEVEL", "info")
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", raw, err)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
	if format != "json" && format != "console" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q: want json or console", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
