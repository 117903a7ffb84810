// Package assets は、チャット基盤にホストされた画像アセットを
// インメモリのバイト列として解決します。
package assets

import (
	"context"
	"fmt"
	"time"
)

// cacheKeyReference は参照画像バイト列のキャッシュキー接頭辞です。
const cacheKeyReference = "reference_bytes:"

// FileLinker は、チャット基盤のファイルIDをダウンロード可能なURLに解決します。
type FileLinker interface {
	FileURL(ctx context.Context, fileID string) (string, error)
}

// HTTPClient は、URLからデータを取得するための窓口です。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Cacher は、解決済みアセットをキャッシュするためのインターフェースです。
type Cacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// ReferenceResolver は、ユーザーが送った画像のファイルIDを参照画像のバイト列に解決します。
// 同じ画像に対する連続した編集指示で再ダウンロードを避けるため、結果をキャッシュします。
type ReferenceResolver struct {
	linker     FileLinker
	httpClient HTTPClient
	cache      Cacher
	expiration time.Duration
}

// NewReferenceResolver は依存関係を注入して ReferenceResolver を初期化します。
func NewReferenceResolver(linker FileLinker, httpClient HTTPClient, cache Cacher, cacheTTL time.Duration) (*ReferenceResolver, error) {
	if linker == nil {
		return nil, fmt.Errorf("linker is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	return &ReferenceResolver{
		linker:     linker,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
	}, nil
}

// Resolve はファイルIDから画像のバイト列を取得します。
func (r *ReferenceResolver) Resolve(ctx context.Context, fileID string) ([]byte, error) {
	cacheKey := cacheKeyReference + fileID
	if r.cache != nil {
		if val, ok := r.cache.Get(cacheKey); ok {
			if data, ok := val.([]byte); ok {
				return data, nil
			}
		}
	}

	url, err := r.linker.FileURL(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("ファイルURLの解決に失敗しました: %w", err)
	}

	data, err := r.httpClient.FetchBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("参照画像のダウンロードに失敗しました: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(cacheKey, data, r.expiration)
	}
	return data, nil
}
