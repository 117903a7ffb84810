package runner

import (
	"context"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// --- Mocks ---

// mockGenerator は failAt 枚目（1始まり）で失敗する生成クライアントです。
// failAt が 0 のときはすべて成功します。
type mockGenerator struct {
	failAt  int
	failErr error
	calls   int
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]byte, error) {
	m.calls++
	if m.failAt > 0 && m.calls == m.failAt {
		return nil, m.failErr
	}
	return []byte("jpeg"), nil
}

type sentPhoto struct {
	chatID   int64
	fileName string
	caption  string
}

type mockMessenger struct {
	nextMessageID int

	sentTexts []string
	photos    []sentPhoto
	edits     []string
	deleted   []int

	sendTextErr  error
	sendPhotoErr error
}

func (m *mockMessenger) SendText(chatID int64, text string) (int, error) {
	if m.sendTextErr != nil {
		return 0, m.sendTextErr
	}
	m.nextMessageID++
	m.sentTexts = append(m.sentTexts, text)
	return m.nextMessageID, nil
}

func (m *mockMessenger) EditText(chatID int64, messageID int, text string) error {
	m.edits = append(m.edits, text)
	return nil
}

func (m *mockMessenger) DeleteMessage(chatID int64, messageID int) error {
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *mockMessenger) SendPhoto(chatID int64, fileName string, data []byte, caption string) error {
	if m.sendPhotoErr != nil {
		return m.sendPhotoErr
	}
	m.photos = append(m.photos, sentPhoto{chatID: chatID, fileName: fileName, caption: caption})
	return nil
}
