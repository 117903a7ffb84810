package domain

const (
	// MinImageCount と MaxImageCount は1回の指示で生成できる枚数の範囲です。
	MinImageCount = 1
	MaxImageCount = 10
)

// GenerationRequest は、1回のユーザー操作から組み立てられる生成指示です。
// 構築後は変更せず、そのまま生成クライアントに渡します。
type GenerationRequest struct {
	Prompt         string
	Orientation    Orientation
	Count          int
	Model          ModelDescriptor
	ReferenceImage []byte // 参照画像の生バイト列。対応モデルのときだけ設定される
}

// NewGenerationRequest は不変条件を適用しながら GenerationRequest を構築します。
// 枚数は [MinImageCount, MaxImageCount] に収められ、
// 参照画像はモデルが対応している場合にのみ保持されます。
func NewGenerationRequest(prompt string, orientation Orientation, count int, model ModelDescriptor, reference []byte) GenerationRequest {
	if count < MinImageCount {
		count = MinImageCount
	}
	if count > MaxImageCount {
		count = MaxImageCount
	}
	if !model.SupportsReference {
		reference = nil
	}
	return GenerationRequest{
		Prompt:         prompt,
		Orientation:    orientation,
		Count:          count,
		Model:          model,
		ReferenceImage: reference,
	}
}

// HasReference は参照画像が添付されているかどうかを返します。
func (r GenerationRequest) HasReference() bool {
	return len(r.ReferenceImage) > 0
}
