package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-cuttlefish-bot/internal/builder"
	"github.com/shouni/go-cuttlefish-bot/internal/config"

	"github.com/spf13/cobra"
)

// serveCmd は、Telegram の更新受信を開始してボットを常駐させるのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "ボットを起動して更新の受信を開始するのだ。",
	Long: `Telegram のロングポーリングで更新を受信し、画像生成コマンドを処理し続けるのだ。
SIGINT / SIGTERM を受けると、処理中の対話を終えてから静かに停止するのだよ。`,
	PreRunE: preRunAppE,
	RunE:    serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 環境変数から基本設定をロードするのだ
	cfg := config.LoadConfig()

	// 2. コマンドラインフラグによる上書きを反映するのだ
	if opts.HTTPTimeout > 0 {
		cfg.HTTPTimeout = opts.HTTPTimeout
	}
	if opts.WorkerLimit > 0 {
		cfg.WorkerLimit = opts.WorkerLimit
	}

	// 3. 共通クライアント群とボット本体を組み立てるのだ
	appCtx, err := builder.NewAppContext(cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}

	b, err := builder.BuildBot(appCtx)
	if err != nil {
		return fmt.Errorf("ボットの構築に失敗したのだ: %w", err)
	}

	slog.Info("Cuttlefish を起動するのだ！",
		"api_url", cfg.RunwareAPIURL,
		"http_timeout", cfg.HTTPTimeout,
		"workers", cfg.WorkerLimit)

	// 4. ctx がキャンセルされるまで更新を処理し続けるのだ
	if err := b.Run(ctx); err != nil {
		return fmt.Errorf("ボットの実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての対話を終えて停止したのだ")
	return nil
}
