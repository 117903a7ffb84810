package config

import (
	"fmt"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultAPIURL            = "https://api.runware.ai/v1"
	DefaultHTTPTimeout       = 120 * time.Second // 画像生成は遅いので長めに取るのだ
	DefaultUpdateTimeout     = 60                // ロングポーリングの待機秒数
	DefaultWorkerLimit       = 8                 // 同時に処理する対話の上限
	DefaultReferenceCacheTTL = 10 * time.Minute  // 参照画像キャッシュの有効期限
)

// Config はアプリケーション全体の環境設定（APIキーや接続先）を保持する構造体なのだ。
// 起動時に一度だけ構築され、以降は不変の値として各コンストラクタへ渡されるのだ。
type Config struct {
	BotToken          string        // Telegram ボットの認証トークン
	RunwareAPIKey     string        // Runware 生成APIの認証キー
	RunwareAPIURL     string        // 生成APIのエンドポイント
	HTTPTimeout       time.Duration // 送信・取得の両方に適用するHTTPタイムアウト
	UpdateTimeout     int           // Telegram 更新取得のロングポーリング秒数
	WorkerLimit       int           // 同時に処理するユーザー対話の上限
	ReferenceCacheTTL time.Duration // 参照画像バイト列のキャッシュ有効期限
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		BotToken:          envutil.GetEnv("TELEGRAM_BOT_TOKEN", ""),
		RunwareAPIKey:     envutil.GetEnv("RUNWARE_API_KEY", ""),
		RunwareAPIURL:     envutil.GetEnv("RUNWARE_API_URL", DefaultAPIURL),
		HTTPTimeout:       durationEnv("RUNWARE_HTTP_TIMEOUT", DefaultHTTPTimeout),
		UpdateTimeout:     DefaultUpdateTimeout,
		WorkerLimit:       DefaultWorkerLimit,
		ReferenceCacheTTL: DefaultReferenceCacheTTL,
	}
}

// Validate は必須シークレットの存在を確認するのだ。欠けていれば起動を中止すべき致命的エラーなのだ。
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("環境変数 TELEGRAM_BOT_TOKEN が設定されていません。Telegram Bot API の利用には必須なのだ")
	}
	if c.RunwareAPIKey == "" {
		return fmt.Errorf("環境変数 RUNWARE_API_KEY が設定されていません。Runware API の利用には必須なのだ")
	}
	return nil
}

// durationEnv は環境変数を time.Duration として解釈するのだ。未設定や解釈不能ならデフォルトに落ちるのだ。
func durationEnv(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
