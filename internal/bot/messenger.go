package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger は runner.Messenger を Telegram Bot API の上に実装します。
// 文面は Markdown として装飾されます。
type Messenger struct {
	api *tgbotapi.BotAPI
}

// NewMessenger は Messenger を初期化します。
func NewMessenger(api *tgbotapi.BotAPI) *Messenger {
	return &Messenger{api: api}
}

// SendText はテキストメッセージを送信し、後で編集・削除できるようメッセージIDを返します。
func (m *Messenger) SendText(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := m.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("メッセージ送信に失敗しました: %w", err)
	}
	return sent.MessageID, nil
}

// EditText は既存メッセージの本文を書き換えます。
func (m *Messenger) EditText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.api.Send(edit); err != nil {
		return fmt.Errorf("メッセージ編集に失敗しました: %w", err)
	}
	return nil
}

// DeleteMessage は既存メッセージを削除します。
func (m *Messenger) DeleteMessage(chatID int64, messageID int) error {
	if _, err := m.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("メッセージ削除に失敗しました: %w", err)
	}
	return nil
}

// SendPhoto は画像のバイト列をキャプション付きで送信します。
func (m *Messenger) SendPhoto(chatID int64, fileName string, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.api.Send(photo); err != nil {
		return fmt.Errorf("画像送信に失敗しました: %w", err)
	}
	return nil
}

// FileLinker は assets.FileLinker を Telegram Bot API の上に実装します。
// file_id をボットトークン込みのダウンロードURLへ解決します。
type FileLinker struct {
	api *tgbotapi.BotAPI
}

// NewFileLinker は FileLinker を初期化します。
func NewFileLinker(api *tgbotapi.BotAPI) *FileLinker {
	return &FileLinker{api: api}
}

// FileURL は Telegram のファイル解決APIを呼び、ダウンロード可能なURLを返します。
func (l *FileLinker) FileURL(ctx context.Context, fileID string) (string, error) {
	file, err := l.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("ファイル情報の取得に失敗しました: %w", err)
	}
	return file.Link(l.api.Token), nil
}
