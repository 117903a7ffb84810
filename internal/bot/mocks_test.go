package bot

import (
	"context"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// --- Mocks ---

type runCall struct {
	chatID       int64
	progressID   int
	withProgress bool
	req          domain.GenerationRequest
}

// mockRunner は生成フローの呼び出しを記録するだけのランナーです。
type mockRunner struct {
	calls []runCall
	err   error
}

func (m *mockRunner) Run(ctx context.Context, chatID int64, req domain.GenerationRequest) error {
	m.calls = append(m.calls, runCall{chatID: chatID, req: req})
	return m.err
}

func (m *mockRunner) RunWithProgress(ctx context.Context, chatID int64, progressID int, req domain.GenerationRequest) error {
	m.calls = append(m.calls, runCall{chatID: chatID, progressID: progressID, withProgress: true, req: req})
	return m.err
}

// mockResolver は固定のバイト列（またはエラー）を返す参照画像リゾルバです。
type mockResolver struct {
	data       []byte
	err        error
	lastFileID string
	calls      int
}

func (m *mockResolver) Resolve(ctx context.Context, fileID string) ([]byte, error) {
	m.calls++
	m.lastFileID = fileID
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

type editedText struct {
	messageID int
	text      string
}

// mockSender は送信・書き換えされた文面を記録します。
type mockSender struct {
	nextMessageID int

	sentTexts []string
	edits     []editedText

	sendTextErr error
}

func (m *mockSender) SendText(chatID int64, text string) (int, error) {
	if m.sendTextErr != nil {
		return 0, m.sendTextErr
	}
	m.nextMessageID++
	m.sentTexts = append(m.sentTexts, text)
	return m.nextMessageID, nil
}

func (m *mockSender) EditText(chatID int64, messageID int, text string) error {
	m.edits = append(m.edits, editedText{messageID: messageID, text: text})
	return nil
}
