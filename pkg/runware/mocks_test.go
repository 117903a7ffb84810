package runware

import (
	"context"
	"errors"
)

// --- Mocks ---

type mockFetcher struct {
	data    []byte
	err     error
	called  bool
	lastURL string
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.called = true
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

var errFetchFailed = errors.New("fetch failed")
