package builder

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/httpkit"

	"github.com/shouni/go-cuttlefish-bot/internal/config"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、接続先など）。
	BotAPI     *tgbotapi.BotAPI        // BotAPIは、Telegramとの通信に使う共通クライアントです。
	httpClient httpkit.HTTPClient // httpClient はアセット取得（GET）に使う共通クライアント
	postClient *http.Client            // postClient は生成APIへのジョブ送信（POST）に使うクライアント
	cache      *gocache.Cache          // cache は参照画像バイト列のインメモリキャッシュ
}

// NewAppContext は設定から共通クライアント群を組み立てて AppContext を生成する
func NewAppContext(cfg *config.Config) (*AppContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("Telegramクライアントの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:     cfg,
		BotAPI:     api,
		httpClient: httpkit.New(cfg.HTTPTimeout),
		postClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cache:      gocache.New(cfg.ReferenceCacheTTL, 2*cfg.ReferenceCacheTTL),
	}, nil
}
