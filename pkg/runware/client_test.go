package runware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

func newTestRequest(t *testing.T, modelKey string, ref []byte) domain.GenerationRequest {
	t.Helper()
	model, err := domain.LookupModel(modelKey)
	require.NoError(t, err)
	return domain.NewGenerationRequest("a red fox", domain.OrientationLandscape, 1, model, ref)
}

// decodePayload はテストサーバーが受け取ったジョブペイロードを分解する。
func decodePayload(t *testing.T, r *http.Request) (map[string]any, map[string]any) {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload, 2, "ペイロードは認証要素と推論要素の2要素のはず")
	return payload[0], payload[1]
}

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系では相関トークンが一致した結果のURLを取得するのだ", func(t *testing.T) {
		var sentUUID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth, inference := decodePayload(t, r)

			assert.Equal(t, "authentication", auth["taskType"])
			assert.Equal(t, "test-key", auth["apiKey"])
			assert.Equal(t, "imageInference", inference["taskType"])
			assert.Equal(t, "a red fox", inference["positivePrompt"])
			assert.Equal(t, "runware:101@1", inference["model"])
			assert.Equal(t, "JPEG", inference["outputFormat"])
			assert.Equal(t, float64(1), inference["numberResults"])
			// landscape は幅 > 高さ
			assert.Equal(t, float64(1344), inference["width"])
			assert.Equal(t, float64(704), inference["height"])
			// 参照画像なしのリクエストに referenceImages があってはならない
			assert.NotContains(t, inference, "referenceImages")

			sentUUID = inference["taskUUID"].(string)
			fmt.Fprintf(w, `[{"taskType":"imageInference","taskUUID":%q,"imageURL":"https://im.runware.ai/out.jpg"}]`, sentUUID)
		}))
		defer server.Close()

		fetcher := &mockFetcher{data: []byte("jpeg-bytes")}
		client, err := NewClient(server.URL, "test-key", server.Client(), fetcher)
		require.NoError(t, err)

		data, err := client.Generate(ctx, newTestRequest(t, "flux", nil))

		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)
		assert.Equal(t, "https://im.runware.ai/out.jpg", fetcher.lastURL)
		assert.NotEmpty(t, sentUUID)
	})

	t.Run("オブジェクト形（data配列）の応答も受理できるのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, inference := decodePayload(t, r)
			fmt.Fprintf(w, `{"data":[{"taskType":"imageInference","taskUUID":%q,"imageURL":"https://im.runware.ai/alt.jpg"}]}`, inference["taskUUID"])
		}))
		defer server.Close()

		fetcher := &mockFetcher{data: []byte("alt")}
		client, err := NewClient(server.URL, "test-key", server.Client(), fetcher)
		require.NoError(t, err)

		data, err := client.Generate(ctx, newTestRequest(t, "flux", nil))

		require.NoError(t, err)
		assert.Equal(t, []byte("alt"), data)
	})

	t.Run("対応モデルには参照画像が生のbase64で添付されるのだ", func(t *testing.T) {
		ref := []byte{0xFF, 0xD8, 0xFF}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, inference := decodePayload(t, r)

			refs, ok := inference["referenceImages"].([]any)
			require.True(t, ok, "referenceImages が必要")
			require.Len(t, refs, 1)
			encoded := refs[0].(string)
			assert.NotContains(t, encoded, "data:", "データURIではなく生のbase64のはず")
			decoded, err := base64.StdEncoding.DecodeString(encoded)
			require.NoError(t, err)
			assert.Equal(t, ref, decoded)
			// Kontext 系統の landscape 寸法
			assert.Equal(t, float64(1392), inference["width"])
			assert.Equal(t, float64(752), inference["height"])

			fmt.Fprintf(w, `[{"taskType":"imageInference","taskUUID":%q,"imageURL":"https://im.runware.ai/edit.jpg"}]`, inference["taskUUID"])
		}))
		defer server.Close()

		fetcher := &mockFetcher{data: []byte("edited")}
		client, err := NewClient(server.URL, "test-key", server.Client(), fetcher)
		require.NoError(t, err)

		data, err := client.Generate(ctx, newTestRequest(t, "kontext", ref))

		require.NoError(t, err)
		assert.Equal(t, []byte("edited"), data)
	})

	t.Run("HTTP 200でも要素内にerrorがあれば失敗なのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"taskType":"imageInference","error":{"message":"invalid model"}}]`)
		}))
		defer server.Close()

		fetcher := &mockFetcher{}
		client, err := NewClient(server.URL, "test-key", server.Client(), fetcher)
		require.NoError(t, err)

		_, err = client.Generate(ctx, newTestRequest(t, "flux", nil))

		assert.ErrorIs(t, err, ErrAPIError)
		assert.False(t, fetcher.called, "失敗時にアセット取得へ進んではならない")
	})

	t.Run("トップレベルのerrorフィールドも失敗なのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error":{"message":"unauthorized"}}`)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "test-key", server.Client(), &mockFetcher{})
		require.NoError(t, err)

		_, err = client.Generate(ctx, newTestRequest(t, "flux", nil))
		assert.ErrorIs(t, err, ErrAPIError)
	})

	t.Run("相関トークンが一致しない結果は採用されないのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"taskType":"imageInference","taskUUID":"00000000-0000-0000-0000-000000000000","imageURL":"https://im.runware.ai/other.jpg"}]`)
		}))
		defer server.Close()

		fetcher := &mockFetcher{data: []byte("never")}
		client, err := NewClient(server.URL, "test-key", server.Client(), fetcher)
		require.NoError(t, err)

		_, err = client.Generate(ctx, newTestRequest(t, "flux", nil))

		assert.ErrorIs(t, err, ErrNoMatch)
		assert.False(t, fetcher.called)
	})

	t.Run("非成功ステータスは失敗なのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "test-key", server.Client(), &mockFetcher{})
		require.NoError(t, err)

		_, err = client.Generate(ctx, newTestRequest(t, "flux", nil))
		assert.ErrorIs(t, err, ErrBadStatus)
	})

	t.Run("アセット取得の失敗はそのまま失敗として伝播するのだ", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, inference := decodePayload(t, r)
			fmt.Fprintf(w, `[{"taskType":"imageInference","taskUUID":%q,"imageURL":"https://im.runware.ai/gone.jpg"}]`, inference["taskUUID"])
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "test-key", server.Client(), &mockFetcher{err: errFetchFailed})
		require.NoError(t, err)

		_, err = client.Generate(ctx, newTestRequest(t, "flux", nil))
		assert.ErrorIs(t, err, errFetchFailed)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("欠けている依存関係を具体的に報告するのだ", func(t *testing.T) {
		_, err := NewClient("", "k", http.DefaultClient, &mockFetcher{})
		assert.ErrorContains(t, err, "apiURL")

		_, err = NewClient("http://x", "", http.DefaultClient, &mockFetcher{})
		assert.ErrorContains(t, err, "apiKey")

		_, err = NewClient("http://x", "k", nil, &mockFetcher{})
		assert.ErrorContains(t, err, "httpClient")

		_, err = NewClient("http://x", "k", http.DefaultClient, nil)
		assert.ErrorContains(t, err, "fetcher")
	})
}

func TestNormalizeResponse(t *testing.T) {
	t.Run("空ボディは失敗なのだ", func(t *testing.T) {
		_, err := normalizeResponse(nil)
		assert.Error(t, err)
	})

	t.Run("壊れたJSONは失敗なのだ", func(t *testing.T) {
		_, err := normalizeResponse([]byte(`[{"taskType":`))
		assert.Error(t, err)
	})

	t.Run("errorがnullの要素は成功扱いなのだ", func(t *testing.T) {
		items, err := normalizeResponse([]byte(`[{"taskType":"imageInference","taskUUID":"u","imageURL":"https://x","error":null}]`))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
