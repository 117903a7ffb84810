package domain

import "strings"

// Orientation は生成画像のアスペクト比の向きを表します。
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationSquare    Orientation = "square"
)

// ParseOrientation は文字列を Orientation に変換します。
// 未知の値や空文字列はデフォルトの portrait に落ちます。
func ParseOrientation(s string) Orientation {
	switch Orientation(strings.ToLower(s)) {
	case OrientationLandscape:
		return OrientationLandscape
	case OrientationSquare:
		return OrientationSquare
	default:
		return OrientationPortrait
	}
}

// モデル系統ごとの固定ピクセル寸法。
// square は系統に関わらず常に正方形です。
const (
	squareSide = 1024

	// 参照画像対応系統（Kontext）の縦長ペア
	referenceShort = 752
	referenceLong  = 1392

	// それ以外の系統（FLUX / HiDream）の縦長ペア
	standardShort = 704
	standardLong  = 1344
)

// ResolveDimensions は、モデル系統と向きから出力画像の幅・高さを決める純粋な参照表です。
// landscape は portrait の幅・高さを入れ替えたもの（転置）になります。
func ResolveDimensions(model ModelDescriptor, orientation Orientation) (width, height int) {
	if orientation == OrientationSquare {
		return squareSide, squareSide
	}

	short, long := standardShort, standardLong
	if model.SupportsReference {
		short, long = referenceShort, referenceLong
	}

	if orientation == OrientationLandscape {
		return long, short
	}
	return short, long
}
