// Package bot は Telegram とのトランスポート層です。
// 更新の受信と振り分け、メッセージ・画像の送受信だけを担当し、
// 生成フローそのものは internal/runner に委ねます。
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// Runner は、1回の対話に対する生成フローを駆動する側の窓口です。
// RunWithProgress は掲示済みの進捗メッセージを引き継ぐ変種です。
type Runner interface {
	Run(ctx context.Context, chatID int64, req domain.GenerationRequest) error
	RunWithProgress(ctx context.Context, chatID int64, progressID int, req domain.GenerationRequest) error
}

// ReferenceResolver は、参照画像のファイルIDをバイト列に解決する側の窓口です。
type ReferenceResolver interface {
	Resolve(ctx context.Context, fileID string) ([]byte, error)
}

// Sender は、ハンドラが案内文と進捗メッセージを扱うのに必要な最小の窓口です。
type Sender interface {
	SendText(chatID int64, text string) (messageID int, err error)
	EditText(chatID int64, messageID int, text string) error
}

// Bot は更新ループと各ハンドラを束ねる本体です。
// 対話間で共有される可変状態は持ちません。異なるユーザーの対話は並行に処理されますが、
// 1つの対話の中の処理（N枚の生成）は常に逐次です。
type Bot struct {
	api           *tgbotapi.BotAPI
	runner        Runner
	messenger     Sender
	resolver      ReferenceResolver
	updateTimeout int
	workerLimit   int
}

// New は依存関係を注入して Bot を初期化します。
func New(api *tgbotapi.BotAPI, run Runner, messenger Sender, resolver ReferenceResolver, updateTimeout, workerLimit int) (*Bot, error) {
	if api == nil {
		return nil, fmt.Errorf("api is required")
	}
	if run == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if messenger == nil {
		return nil, fmt.Errorf("messenger is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if workerLimit < 1 {
		workerLimit = 1
	}

	return &Bot{
		api:           api,
		runner:        run,
		messenger:     messenger,
		resolver:      resolver,
		updateTimeout: updateTimeout,
		workerLimit:   workerLimit,
	}, nil
}

// Run はロングポーリングで更新を受信し、対話ごとにハンドラへ振り分けます。
// 起動前に滞留していた更新は破棄します。ctx のキャンセルで受信を止め、
// 処理中の対話が終わるまで待ってから戻ります。
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(u)
	updates.Clear()

	slog.Info("更新の受信を開始するのだ！",
		"bot", b.api.Self.UserName,
		"worker_limit", b.workerLimit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workerLimit)

receive:
	for {
		select {
		case <-ctx.Done():
			break receive
		case update, ok := <-updates:
			if !ok {
				break receive
			}
			g.Go(func() error {
				// 1つの対話の失敗は他の対話へ波及させない
				b.handleUpdate(gctx, update)
				return nil
			})
		}
	}

	b.api.StopReceivingUpdates()
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("更新の受信を終了したのだ")
	return nil
}
