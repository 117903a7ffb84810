package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// flagOverrides はコマンドラインから環境設定を上書きするための値なのだ。
type flagOverrides struct {
	HTTPTimeout time.Duration // --http-timeout
	WorkerLimit int           // --workers
}

var opts flagOverrides

var rootCmd = &cobra.Command{
	Use:   "cuttlefish",
	Short: "Telegram向けの画像生成ボットなのだ。",
	Long:  `Runware の画像生成APIをチャットコマンドから呼び出す Telegram ボットなのだ。`,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags() {
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", 0, "生成APIとの通信タイムアウト（未指定なら環境変数または既定値）なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.WorkerLimit, "workers", 0, "同時に処理する対話の上限（未指定なら既定値）なのだ。")
}

// preRunAppE は、serve 実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if os.Getenv("TELEGRAM_BOT_TOKEN") == "" {
		return fmt.Errorf("エラー: 環境変数 TELEGRAM_BOT_TOKEN が設定されていません。Telegram Bot API の利用には必須なのだ")
	}
	if os.Getenv("RUNWARE_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 RUNWARE_API_KEY が設定されていません。Runware API の利用には必須なのだ")
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags()
	rootCmd.AddCommand(serveCmd, modelsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("コマンドの実行に失敗したのだ", "error", err)
		os.Exit(1)
	}
}
