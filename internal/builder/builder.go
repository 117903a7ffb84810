package builder

import (
	"fmt"

	"github.com/shouni/go-cuttlefish-bot/internal/bot"
	"github.com/shouni/go-cuttlefish-bot/internal/runner"
	"github.com/shouni/go-cuttlefish-bot/pkg/assets"
	"github.com/shouni/go-cuttlefish-bot/pkg/runware"
)

// BuildBot はボット本体とその依存関係一式を構築します。
func BuildBot(appCtx *AppContext) (*bot.Bot, error) {
	client, err := InitializeGenerationClient(appCtx)
	if err != nil {
		return nil, err
	}

	messenger := bot.NewMessenger(appCtx.BotAPI)

	generateRunner, err := runner.NewGenerateRunner(client, messenger)
	if err != nil {
		return nil, fmt.Errorf("GenerateRunnerの初期化に失敗したのだ: %w", err)
	}

	resolver, err := assets.NewReferenceResolver(
		bot.NewFileLinker(appCtx.BotAPI),
		appCtx.httpClient,
		appCtx.cache,
		appCtx.Config.ReferenceCacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("参照画像リゾルバの初期化に失敗しました: %w", err)
	}

	b, err := bot.New(
		appCtx.BotAPI,
		generateRunner,
		messenger,
		resolver,
		appCtx.Config.UpdateTimeout,
		appCtx.Config.WorkerLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("ボットの初期化に失敗しました: %w", err)
	}
	return b, nil
}

// InitializeGenerationClient は Runware 生成クライアントを初期化します。
func InitializeGenerationClient(appCtx *AppContext) (*runware.Client, error) {
	client, err := runware.NewClient(
		appCtx.Config.RunwareAPIURL,
		appCtx.Config.RunwareAPIKey,
		appCtx.postClient,
		appCtx.httpClient,
	)
	if err != nil {
		return nil, fmt.Errorf("生成クライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}
