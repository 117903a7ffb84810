// Package runware は、Runware 画像生成 HTTP API への薄い型付きクライアントです。
// 認証要素と推論要素からなる2要素のジョブペイロードを1回のPOSTで送信し、
// 相関トークンで突き合わせた結果のアセットURLをバイト列に解決して返します。
package runware

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

var (
	// ErrAPIError は、整形された応答がアプリケーションレベルのエラーを報告している場合に返されます。
	ErrAPIError = errors.New("runware api error")
	// ErrNoMatch は、応答内に発行した相関トークンと一致する推論結果が見つからない場合に返されます。
	ErrNoMatch = errors.New("no matching inference result")
	// ErrBadStatus は、送信が非成功のHTTPステータスで終わった場合に返されます。
	ErrBadStatus = errors.New("unexpected http status")
)

// HTTPClient は、生成済みアセットのURLをバイト列に解決するための窓口です。
// go-http-kit のクライアントがこれを満たします。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Client は Runware API への生成クライアントです。
// 失敗要因（通信・応答エラー・相関不一致・取得失敗）はログでのみ区別され、
// 呼び出し側には不透明なエラーとして一様に返ります。
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	fetcher    HTTPClient
}

// NewClient は依存関係を注入して Client を初期化します。
func NewClient(apiURL, apiKey string, httpClient *http.Client, fetcher HTTPClient) (*Client, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("apiURL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		fetcher:    fetcher,
	}, nil
}

// Generate は1枚分の画像を同期的に生成し、JPEG のバイト列を返します。
// リクエストの枚数指定（Count）はここでは扱いません。N枚の逐次実行は呼び出し側の責務です。
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) ([]byte, error) {
	taskUUID := uuid.NewString()
	width, height := domain.ResolveDimensions(req.Model, req.Orientation)

	inference := imageInferenceTask{
		TaskType:       taskTypeImageInference,
		TaskUUID:       taskUUID,
		PositivePrompt: req.Prompt,
		Width:          width,
		Height:         height,
		Model:          req.Model.ID,
		OutputFormat:   outputFormatJPEG,
		IncludeCost:    true,
		OutputType:     []string{outputTypeURL},
		NumberResults:  1,
	}
	if req.HasReference() && req.Model.SupportsReference {
		inference.ReferenceImages = []string{base64.StdEncoding.EncodeToString(req.ReferenceImage)}
	}

	payload := []any{
		authenticationTask{TaskType: taskTypeAuthentication, APIKey: c.apiKey},
		inference,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ジョブペイロードの組み立てに失敗しました: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("リクエストの構築に失敗しました: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("生成APIへの送信に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("応答の読み取りに失敗しました: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("生成APIが異常ステータスを返したのだ",
			"status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	items, err := normalizeResponse(respBody)
	if err != nil {
		slog.Error("生成APIの応答を受理できないのだ", "error", err)
		return nil, err
	}

	for _, item := range items {
		if item.TaskType == taskTypeImageInference && item.TaskUUID == taskUUID && item.ImageURL != "" {
			data, err := c.fetcher.FetchBytes(ctx, item.ImageURL)
			if err != nil {
				slog.Error("生成画像のダウンロードに失敗したのだ", "url", item.ImageURL, "error", err)
				return nil, fmt.Errorf("生成画像の取得に失敗しました: %w", err)
			}
			return data, nil
		}
	}

	slog.Error("応答に一致する推論結果が見つからないのだ", "task_uuid", taskUUID, "items", len(items))
	return nil, ErrNoMatch
}
