package domain

import (
	"errors"
	"strings"
)

// ModelKey は登録済みモデルを指す短縮名の閉じた集合です。
// 自由な文字列キーではなく型付き定数にすることで、未登録キーの混入を防ぎます。
type ModelKey string

const (
	ModelFlux       ModelKey = "flux"
	ModelHiDream    ModelKey = "hidream"
	ModelKontext    ModelKey = "kontext"
	ModelKontextMax ModelKey = "kontext-max"
	ModelFast       ModelKey = "fast"
)

// ErrModelNotRegistered は、レジストリに存在しないモデルキーが指定された場合に返されます。
var ErrModelNotRegistered = errors.New("model not registered")

// ModelDescriptor は、リモート生成APIへ渡すモデル識別子と表示用の情報を保持する不変値です。
type ModelDescriptor struct {
	Key               ModelKey // コマンド短縮名（/flux 等）
	ID                string   // リモートAPI上のモデルID
	Name              string   // ユーザー向け表示名
	SupportsReference bool     // 参照画像（編集）対応モデルかどうか
}

// registry はプロセス起動時に固定されるモデル定義の一覧です。
// 順序はヘルプ表示とコマンド登録の並びに使われます。
var registry = []ModelDescriptor{
	{Key: ModelFlux, ID: "runware:101@1", Name: "FLUX Dev", SupportsReference: false},
	{Key: ModelHiDream, ID: "runware:97@2", Name: "HiDream Pro", SupportsReference: false},
	{Key: ModelKontext, ID: "bfl:3@1", Name: "Kontext Pro", SupportsReference: true},
	{Key: ModelKontextMax, ID: "bfl:4@1", Name: "Kontext Max", SupportsReference: true},
	{Key: ModelFast, ID: "runware:100@1", Name: "FLUX Schnell", SupportsReference: false},
}

// LookupModel は短縮名からモデル定義を引きます。大文字小文字は区別しません。
func LookupModel(key string) (ModelDescriptor, error) {
	k := ModelKey(strings.ToLower(key))
	for _, m := range registry {
		if m.Key == k {
			return m, nil
		}
	}
	return ModelDescriptor{}, ErrModelNotRegistered
}

// AllModels は登録順のモデル定義一覧のコピーを返します。
func AllModels() []ModelDescriptor {
	out := make([]ModelDescriptor, len(registry))
	copy(out, registry)
	return out
}

// EditModel は参照画像編集パスで使うモデルを返します。
// useMax が true のときは上位モデル（Kontext Max）、それ以外は標準の Kontext Pro です。
func EditModel(useMax bool) ModelDescriptor {
	key := ModelKontext
	if useMax {
		key = ModelKontextMax
	}
	m, _ := LookupModel(string(key))
	return m
}
