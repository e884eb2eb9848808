package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-playground/validator/v10"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server        ServerConfig
	Chat          ChatConfig
	AI            AIConfig
	Log           LogConfig
	KnowledgeFile string
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server:        server,
		Chat:          chat,
		AI:            ai,
		Log:           loadLogConfig(),
		KnowledgeFile: strings.TrimSpace(os.Getenv("KNOWLEDGE_FILE")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string `validate:"required"`
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

// ChatConfig 描述会话历史的容量。
type ChatConfig struct {
	HistoryCapacity int `validate:"min=1"`
	HistoryWindow   int `validate:"min=1,ltefield=HistoryCapacity"`
	SessionLimit    int `validate:"min=1"`
}

func loadChatConfig() (ChatConfig, error) {
	capacity, err := parseIntEnv("HISTORY_CAPACITY", 10)
	if err != nil {
		return ChatConfig{}, err
	}

	window, err := parseIntEnv("HISTORY_WINDOW", 5)
	if err != nil {
		return ChatConfig{}, err
	}

	sessions, err := parseIntEnv("SESSION_LIMIT", 256)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{
		HistoryCapacity: capacity,
		HistoryWindow:   window,
		SessionLimit:    sessions,
	}, nil
}

// LogConfig 描述日志级别与输出格式。
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console")),
	}
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	FallbackEnabled bool
	APIKey          string
	AccessKey       string
	SecretKey       string
	Model           string
	BaseURL         string `validate:"omitempty,url"`
	Region          string
	Temperature     *float64 `validate:"omitempty,min=0,max=2"`
	MaxTokens       *int     `validate:"omitempty,min=1"`
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	enabled, err := parseBoolEnv("AI_FALLBACK_ENABLED", false)
	if err != nil {
		return AIConfig{}, err
	}

	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		FallbackEnabled: enabled,
		APIKey:          strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:       strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:       strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:           strings.TrimSpace(os.Getenv("Model")),
		BaseURL:         getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:          getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:     temperature,
		MaxTokens:       maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	val, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return defaultValue, nil
	}
	return *val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
