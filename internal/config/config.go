// Package config はサーバ実行時の環境設定を環境変数から読み込みます。
package config

import (
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel           = "gemini-3-flash-preview"
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultListenAddr      = ":8080"
	DefaultSessionTTL      = 2 * time.Hour
	DefaultCleanupInterval = 15 * time.Minute
	DefaultRateInterval    = 10 * time.Second
)

// Config はアプリケーション全体の環境設定（APIキーやセッション設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	ListenAddr       string

	// SessionTTL はブックセッションの生存時間、CleanupInterval は
	// 失効セッションの掃除間隔です。
	SessionTTL      time.Duration
	CleanupInterval time.Duration

	// RateInterval は画像生成APIへのリクエスト間隔です。
	RateInterval time.Duration
	HTTPTimeout  time.Duration

	// StrictRepair が真の場合、修正リトライ後の再検査で制約検査も
	// 再実行します。
	StrictRepair bool
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ListenAddr:       envutil.GetEnv("LISTEN_ADDR", DefaultListenAddr),
		SessionTTL:       durationEnv("SESSION_TTL", DefaultSessionTTL),
		CleanupInterval:  durationEnv("SESSION_CLEANUP_INTERVAL", DefaultCleanupInterval),
		RateInterval:     durationEnv("IMAGE_RATE_INTERVAL", DefaultRateInterval),
		HTTPTimeout:      durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout),
		StrictRepair:     boolEnv("STRICT_REPAIR", false),
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
