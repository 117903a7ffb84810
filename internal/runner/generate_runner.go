package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// ErrEmptyPrompt は、フラグを取り除いた後にプロンプトが空だった場合に返されます。
// このエラーは生成クライアントに到達する前に検出されます。
var ErrEmptyPrompt = errors.New("empty prompt")

// ImageGenerator は、1枚分の画像生成を行うクライアントの窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) ([]byte, error)
}

// Messenger は、進捗と結果をユーザーへ届けるトランスポート側の窓口です。
type Messenger interface {
	SendText(chatID int64, text string) (messageID int, err error)
	EditText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	SendPhoto(chatID int64, fileName string, data []byte, caption string) error
}

// GenerateRunner は、1回のユーザー操作に対する生成フロー全体を駆動します。
// 状態遷移は validate → announce → 逐次生成ループ → finalize で、
// N枚の生成は必ず逐次実行され、最初の失敗でループを打ち切ります（fail-fast）。
type GenerateRunner struct {
	generator ImageGenerator
	messenger Messenger
}

// NewGenerateRunner は GenerateRunner の新しいインスタンスを生成して返します。
func NewGenerateRunner(generator ImageGenerator, messenger Messenger) (*GenerateRunner, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if messenger == nil {
		return nil, fmt.Errorf("messenger is required")
	}
	return &GenerateRunner{generator: generator, messenger: messenger}, nil
}

// Run は検証済みの GenerationRequest を受け取り、進捗メッセージを掲示したうえで
// Count 枚の画像を1枚ずつ生成・配信します。
// 全枚成功なら進捗メッセージを削除し、途中で失敗したら進捗メッセージを
// 失敗通知に書き換えて即座に打ち切ります。残りの枚数は試行されません。
func (r *GenerateRunner) Run(ctx context.Context, chatID int64, req domain.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return ErrEmptyPrompt
	}

	progressID, err := r.messenger.SendText(chatID, announceText(req))
	if err != nil {
		return fmt.Errorf("進捗メッセージの送信に失敗しました: %w", err)
	}

	return r.generateLoop(ctx, chatID, progressID, req)
}

// RunWithProgress は、呼び出し側がすでに掲示した進捗メッセージを引き継いで
// 生成フローを駆動します。そのメッセージは announce 文面に書き換えられ、
// 以降の扱い（失敗通知への書き換え・成功時の削除）は Run と同じです。
func (r *GenerateRunner) RunWithProgress(ctx context.Context, chatID int64, progressID int, req domain.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return ErrEmptyPrompt
	}

	if err := r.messenger.EditText(chatID, progressID, announceText(req)); err != nil {
		// 文面の更新に失敗しても生成そのものは続けられる
		slog.Warn("進捗メッセージの書き換えに失敗したのだ", "error", err)
	}

	return r.generateLoop(ctx, chatID, progressID, req)
}

// generateLoop は進捗メッセージ掲示後の逐次生成と finalize を担当します。
func (r *GenerateRunner) generateLoop(ctx context.Context, chatID int64, progressID int, req domain.GenerationRequest) error {
	slog.Info("生成ループを開始するのだ",
		"model", req.Model.Key,
		"orientation", req.Orientation,
		"count", req.Count,
		"edit", req.HasReference())

	for i := 1; i <= req.Count; i++ {
		data, err := r.generator.Generate(ctx, req)
		if err != nil {
			slog.Error("画像生成に失敗したのだ", "index", i, "count", req.Count, "error", err)
			r.failProgress(chatID, progressID, req)
			return err
		}

		if err := r.messenger.SendPhoto(chatID, photoFileName(i), data, captionText(req, i)); err != nil {
			slog.Error("画像の配信に失敗したのだ", "index", i, "count", req.Count, "error", err)
			r.failProgress(chatID, progressID, req)
			return err
		}

		slog.Info("画像を配信したのだ", "index", i, "count", req.Count)
	}

	if err := r.messenger.DeleteMessage(chatID, progressID); err != nil {
		// 削除失敗は結果の配信を妨げないため、警告にとどめる
		slog.Warn("進捗メッセージの削除に失敗したのだ", "error", err)
	}
	return nil
}

// failProgress は進捗メッセージを最終的な失敗通知に書き換えます。
func (r *GenerateRunner) failProgress(chatID int64, progressID int, req domain.GenerationRequest) {
	if err := r.messenger.EditText(chatID, progressID, failureText(req)); err != nil {
		slog.Warn("失敗通知への書き換えに失敗したのだ", "error", err)
	}
}

func photoFileName(index int) string {
	return fmt.Sprintf("image_%d.jpg", index)
}
