// Package config loads the bot and rendering configuration from an
// optional .env file, a YAML policy file and the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/negarbot/negar/layout"
)

// Config is the full application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Assets   AssetsConfig   `yaml:"assets"`
	Layout   layout.Policy  `yaml:"layout"`
	// MaxWords caps accepted submissions before layout even starts;
	// enforced by the bot layer, not the engine.
	MaxWords int `yaml:"maxWords"`
	// OverlayAlpha and JPEGQuality feed the renderer.
	OverlayAlpha int `yaml:"overlayAlpha"`
	JPEGQuality  int `yaml:"jpegQuality"`
}

type TelegramConfig struct {
	Token string `yaml:"-"` // secrets stay out of the YAML file
	// Mode selects "poll" (long polling, default) or "webhook".
	Mode        string `yaml:"mode"`
	ListenAddr  string `yaml:"listenAddr"`
	WebhookPath string `yaml:"webhookPath"`
	// PollTimeout is the getUpdates long-poll timeout in seconds.
	PollTimeout int `yaml:"pollTimeout"`
}

type AssetsConfig struct {
	// BackgroundPath is the card background image.
	BackgroundPath string `yaml:"backgroundPath"`
	// FontChain and TitleFontChain are ordered font fallback paths;
	// policy data consumed by the renderer, never by layout.
	FontChain      []string `yaml:"fontChain"`
	TitleFontChain []string `yaml:"titleFontChain"`
	// OutputDir receives rendered cards in one-shot render mode.
	OutputDir string `yaml:"outputDir"`
}

// Load reads .env (if present), applies defaults, merges the YAML file
// at path (if non-empty) and lets environment variables override the
// runtime settings.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := &Config{
		Telegram: TelegramConfig{
			Mode:        "poll",
			ListenAddr:  ":8080",
			WebhookPath: "/telegram/webhook",
			PollTimeout: 30,
		},
		Assets: AssetsConfig{
			BackgroundPath: "image/image_1.jpg",
			FontChain: []string{
				"fonts/Vazirmatn-Regular.ttf",
				"/usr/share/fonts/truetype/vazirmatn/Vazirmatn-Regular.ttf",
			},
			TitleFontChain: []string{
				"fonts/Vazirmatn-Bold.ttf",
				"/usr/share/fonts/truetype/vazirmatn/Vazirmatn-Bold.ttf",
			},
			OutputDir: "output",
		},
		Layout:       layout.DefaultPolicy,
		MaxWords:     350,
		OverlayAlpha: 100,
		JPEGQuality:  90,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Telegram.Token = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.Token)
	cfg.Telegram.Mode = getEnv("TELEGRAM_MODE", cfg.Telegram.Mode)
	cfg.Telegram.ListenAddr = getEnv("TELEGRAM_LISTEN_ADDR", cfg.Telegram.ListenAddr)
	cfg.Assets.BackgroundPath = getEnv("NEGAR_BACKGROUND", cfg.Assets.BackgroundPath)
	cfg.Assets.OutputDir = getEnv("NEGAR_OUTPUT_DIR", cfg.Assets.OutputDir)
	if chain := getEnvSlice("NEGAR_FONTS", nil); chain != nil {
		cfg.Assets.FontChain = chain
	}
	cfg.MaxWords = getEnvInt("NEGAR_MAX_WORDS", cfg.MaxWords)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
