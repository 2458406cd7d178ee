package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Debug bool

	Port int

	FeedURL     string // upstream products.json feed
	ShopBaseURL string // base for product links

	FrontendPath string

	OpenAiAPIKey    string
	GeminiAPIKey    string
	AnthropicAPIKey string

	ScrapeTimeoutSeconds   int
	AnalysisTimeoutSeconds int
}

func NewConfig() *Config {
	return &Config{
		Debug: getBoolEnvDefault("DEBUG", false),

		Port: getIntEnvDefault("PORT", 3000),

		FeedURL:     getStringEnvDefault("FEED_URL", "https://diravena.com/products.json"),
		ShopBaseURL: getStringEnvDefault("SHOP_BASE_URL", "https://diravena.com"),

		FrontendPath: getStringEnvDefault("FRONTEND_PATH", "./public/"),

		OpenAiAPIKey:    getStringEnvDefault("OPENAI_API_KEY", ""),
		GeminiAPIKey:    getStringEnvDefault("GEMINI_API_KEY", ""),
		AnthropicAPIKey: getStringEnvDefault("ANTHROPIC_API_KEY", ""),

		ScrapeTimeoutSeconds:   getIntEnvDefault("SCRAPE_TIMEOUT_SECONDS", 15),
		AnalysisTimeoutSeconds: getIntEnvDefault("ANALYSIS_TIMEOUT_SECONDS", 30),
	}
}

func getBoolEnvDefault(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}

func getStringEnvDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}

func getIntEnvDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	fmt.Printf("Using default value for %s\n", key)
	return defaultValue
}
