package runner

import (
	"fmt"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// ユーザー向けメッセージの組み立て。Markdown で装飾される前提の文面です。

// OrientationLabel は向きの表示名を返します。進捗・結果の文面で共通に使います。
func OrientationLabel(o domain.Orientation) string {
	switch o {
	case domain.OrientationLandscape:
		return "🖼️ Landscape"
	case domain.OrientationSquare:
		return "⬛ Square"
	default:
		return "📱 Portrait"
	}
}

// CountLabel は枚数の表示名を返します。
func CountLabel(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d images", n)
	}
	return "1 image"
}

// announceText は生成開始時に掲示する進捗メッセージを組み立てます。
func announceText(req domain.GenerationRequest) string {
	if req.HasReference() {
		return fmt.Sprintf("🎨 Editing image with %s (%s)...\n*Changes:* %s\n*Generating %s...*",
			req.Model.Name, OrientationLabel(req.Orientation), req.Prompt, CountLabel(req.Count))
	}
	return fmt.Sprintf("🎨 Generating %s in %s with %s...\n*Prompt:* %s",
		CountLabel(req.Count), OrientationLabel(req.Orientation), req.Model.Name, req.Prompt)
}

// captionText は配信する画像に添えるキャプションを組み立てます。
// 複数枚のときだけ "Image i of N" の行が付きます。
func captionText(req domain.GenerationRequest, index int) string {
	var caption string
	if req.HasReference() {
		caption = fmt.Sprintf("✨ Edited with %s (%s)\n*Changes:* %s",
			req.Model.Name, OrientationLabel(req.Orientation), req.Prompt)
	} else {
		caption = fmt.Sprintf("🎨 Generated with %s (%s)\n*Prompt:* %s",
			req.Model.Name, OrientationLabel(req.Orientation), req.Prompt)
	}
	if req.Count > 1 {
		caption += fmt.Sprintf("\n*Image %d of %d*", index, req.Count)
	}
	return caption
}

// failureText は進捗メッセージを置き換える最終的な失敗通知です。
func failureText(req domain.GenerationRequest) string {
	if req.HasReference() {
		return "❌ Failed to edit image. Please try again."
	}
	return "❌ Failed to generate image. Please try again."
}
