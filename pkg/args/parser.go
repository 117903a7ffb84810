// Package args は、チャットメッセージ中の空白区切りトークン列から
// 生成オプション（向き・枚数・上位モデルフラグ）とプロンプト本文を取り出します。
package args

import (
	"strconv"
	"strings"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// Parsed はトークン列の解析結果です。
type Parsed struct {
	Orientation domain.Orientation // 既定は portrait
	Count       int                // 既定は 1、範囲は [1,10]
	UseMax      bool               // --max / -max が指定されたかどうか
	Prompt      string             // フラグを取り除いた残りを単一スペースで連結したもの
}

// Parse はトークン列を左から右へ一度だけ走査して Parsed を返します。
// フラグは大文字小文字を区別せず、プロンプト語と任意の順序で混在できます。
// 向きフラグが複数あるときは最後のものが勝ちます。
// 認識できないトークンはそのままプロンプトに残ります。
// フラグを取り除いた結果プロンプトが空になることもあり、その扱いは呼び出し側の責務です。
func Parse(tokens []string) Parsed {
	result := Parsed{
		Orientation: domain.OrientationPortrait,
		Count:       domain.MinImageCount,
	}

	rest := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "--landscape", "-l":
			result.Orientation = domain.OrientationLandscape
		case "--portrait", "-p":
			result.Orientation = domain.OrientationPortrait
		case "--square", "-s":
			result.Orientation = domain.OrientationSquare
		case "--max", "-max":
			result.UseMax = true
		case "-n":
			// 後続トークンが整数のときだけ、-n とその引数の両方を消費する。
			// 引数が欠けているか整数でなければ -n はプロンプトに残す。
			if i+1 < len(tokens) {
				if n, err := strconv.Atoi(tokens[i+1]); err == nil {
					result.Count = clampCount(n)
					i++
					continue
				}
			}
			rest = append(rest, tokens[i])
		default:
			rest = append(rest, tokens[i])
		}
	}

	result.Prompt = strings.Join(rest, " ")
	return result
}

func clampCount(n int) int {
	if n < domain.MinImageCount {
		return domain.MinImageCount
	}
	if n > domain.MaxImageCount {
		return domain.MaxImageCount
	}
	return n
}
