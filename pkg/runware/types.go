package runware

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	taskTypeAuthentication = "authentication"
	taskTypeImageInference = "imageInference"

	outputFormatJPEG = "JPEG"
	outputTypeURL    = "URL"
)

// authenticationTask はジョブペイロードの先頭要素で、プロセス共通のAPIキーを運びます。
type authenticationTask struct {
	TaskType string `json:"taskType"`
	APIKey   string `json:"apiKey"`
}

// imageInferenceTask は1枚分の画像推論指示です。
// TaskUUID は呼び出しごとに採番される相関トークンで、応答側の要素との突き合わせに使います。
type imageInferenceTask struct {
	TaskType        string   `json:"taskType"`
	TaskUUID        string   `json:"taskUUID"`
	PositivePrompt  string   `json:"positivePrompt"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Model           string   `json:"model"`
	OutputFormat    string   `json:"outputFormat"`
	IncludeCost     bool     `json:"includeCost"`
	OutputType      []string `json:"outputType"`
	NumberResults   int      `json:"numberResults"`
	ReferenceImages []string `json:"referenceImages,omitempty"` // 生のbase64文字列（データURIではない）
}

// taskResult は応答リスト中の1要素です。Error が存在すればその要素は失敗を表します。
type taskResult struct {
	TaskType string          `json:"taskType"`
	TaskUUID string          `json:"taskUUID"`
	ImageURL string          `json:"imageURL"`
	Error    json.RawMessage `json:"error"`
}

func (r taskResult) hasError() bool {
	return len(r.Error) > 0 && string(r.Error) != "null"
}

// responseEnvelope はオブジェクト形応答（data 配列持ち）の外殻です。
type responseEnvelope struct {
	Data  []taskResult    `json:"data"`
	Error json.RawMessage `json:"error"`
}

// normalizeResponse は、トップレベル配列とオブジェクト形の2通りある応答を
// 境界で単一の []taskResult に正規化します。
// 応答のどこか（トップレベルまたは各要素）に error が含まれていれば ErrAPIError を返します。
func normalizeResponse(body []byte) ([]taskResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("応答ボディが空です")
	}

	var items []taskResult
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("応答配列の解析に失敗しました: %w", err)
		}
	} else {
		var env responseEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("応答オブジェクトの解析に失敗しました: %w", err)
		}
		if len(env.Error) > 0 && string(env.Error) != "null" {
			return nil, fmt.Errorf("%w: %s", ErrAPIError, string(env.Error))
		}
		items = env.Data
	}

	for _, item := range items {
		if item.hasError() {
			return nil, fmt.Errorf("%w: %s", ErrAPIError, string(item.Error))
		}
	}
	return items, nil
}
