package assets

import (
	"context"
	"time"
)

// --- Mocks ---

type mockLinker struct {
	url    string
	err    error
	called int
}

func (m *mockLinker) FileURL(ctx context.Context, fileID string) (string, error) {
	m.called++
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type mockHTTPClient struct {
	data   []byte
	err    error
	called int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.called++
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.data[key] = value
}
