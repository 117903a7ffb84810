package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shouni/go-cuttlefish-bot/pkg/args"
	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// handleUpdate は1件の更新を対応するハンドラへ振り分けます。
// 1つの対話に関する処理はすべてこの呼び出しの中で逐次完結します。
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0 && strings.TrimSpace(msg.Caption) != "":
		b.handleEdit(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		b.reply(msg.Chat.ID, helpText())
	}
}

// handleCommand は /start と各モデルコマンドを振り分けます。
// 未登録のコマンドは黙殺せず、ヘルプ応答に落とします。打ち間違えたユーザーが
// 無反応のまま取り残されないための意図的な挙動です。
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	if command == "start" {
		b.reply(msg.Chat.ID, startText())
		return
	}

	model, err := domain.LookupModel(command)
	if err != nil {
		b.reply(msg.Chat.ID, helpText())
		return
	}
	b.handleDirect(ctx, msg, model)
}

// handleDirect は /<model> [flags] <prompt> による直接生成パスです。参照画像は使いません。
func (b *Bot) handleDirect(ctx context.Context, msg *tgbotapi.Message, model domain.ModelDescriptor) {
	tokens := strings.Fields(msg.CommandArguments())
	if len(tokens) == 0 {
		b.reply(msg.Chat.ID, usageText(model.Key))
		return
	}

	parsed := args.Parse(tokens)
	if parsed.Prompt == "" {
		b.reply(msg.Chat.ID, emptyPromptText(model.Key))
		return
	}

	req := domain.NewGenerationRequest(parsed.Prompt, parsed.Orientation, parsed.Count, model, nil)
	if err := b.runner.Run(ctx, msg.Chat.ID, req); err != nil {
		slog.Error("直接生成フローが失敗したのだ", "model", model.Key, "error", err)
	}
}

// handleEdit は、キャプション付き画像による参照編集パスです。
// キャプションの解析結果が空プロンプトになった場合は、キャプション全文を
// そのままプロンプトとして使い、向き・枚数・モデル段位は既定値に戻します。
// 参照画像の解決より先に処理中メッセージを掲示し、以降の進捗表示
// （失敗通知への書き換えを含む）はすべて同じメッセージの上で行います。
func (b *Bot) handleEdit(ctx context.Context, msg *tgbotapi.Message) {
	caption := strings.TrimSpace(msg.Caption)

	parsed := args.Parse(strings.Fields(caption))
	if parsed.Prompt == "" {
		parsed = args.Parsed{
			Orientation: domain.OrientationPortrait,
			Count:       domain.MinImageCount,
			Prompt:      caption,
		}
	}
	model := domain.EditModel(parsed.UseMax)

	progressID, err := b.messenger.SendText(msg.Chat.ID, processingText(model, parsed.Orientation, parsed.Count))
	if err != nil {
		slog.Error("処理中メッセージの送信に失敗したのだ", "error", err)
		return
	}

	// 最も解像度の高い（末尾の）サイズを参照画像として使う
	photo := msg.Photo[len(msg.Photo)-1]
	reference, err := b.resolver.Resolve(ctx, photo.FileID)
	if err != nil {
		slog.Error("参照画像の解決に失敗したのだ", "file_id", photo.FileID, "error", err)
		if editErr := b.messenger.EditText(msg.Chat.ID, progressID, referenceFailedText); editErr != nil {
			slog.Warn("失敗通知への書き換えに失敗したのだ", "error", editErr)
		}
		return
	}

	req := domain.NewGenerationRequest(parsed.Prompt, parsed.Orientation, parsed.Count, model, reference)
	if err := b.runner.RunWithProgress(ctx, msg.Chat.ID, progressID, req); err != nil {
		slog.Error("参照編集フローが失敗したのだ", "model", model.Key, "error", err)
	}
}

// reply は案内文の送信に徹します。失敗しても対話ごと落とさずログに残すだけです。
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.messenger.SendText(chatID, text); err != nil {
		slog.Warn("案内メッセージの送信に失敗したのだ", "error", err)
	}
}
