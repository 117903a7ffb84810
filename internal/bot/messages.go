package bot

import (
	"fmt"
	"strings"

	"github.com/shouni/go-cuttlefish-bot/internal/runner"
	"github.com/shouni/go-cuttlefish-bot/pkg/domain"
)

// ユーザー向けの固定文面。/start・ヘルプ・使い方ヒントをここに集約します。

// startText は /start に対する案内文を組み立てます。
func startText() string {
	var b strings.Builder
	b.WriteString("🦑 *Cuttlefish*\n\n")
	b.WriteString("I can generate amazing images using different AI models:\n\n")
	b.WriteString("*Commands:*\n")
	for _, m := range domain.AllModels() {
		b.WriteString(fmt.Sprintf("• `/%s <prompt>` - Generate with %s\n", m.Key, m.Name))
	}
	b.WriteString("\n*Orientation Options:*\n")
	b.WriteString("Add `--landscape` or `-l` for landscape orientation\n")
	b.WriteString("Add `--portrait` or `-p` for portrait orientation (default)\n")
	b.WriteString("Add `--square` or `-s` for square (1024x1024)\n")
	b.WriteString("Add `-n <number>` to generate multiple images (max 10)\n\n")
	b.WriteString("*Examples:*\n")
	b.WriteString("• `/flux a beautiful sunset` (portrait)\n")
	b.WriteString("• `/flux --landscape -n 2 a sunset` (2 landscape images)\n")
	b.WriteString("• `/hidream -l cyberpunk city` (landscape)\n\n")
	b.WriteString("*For image editing with Kontext:*\n")
	b.WriteString("Send an image with a caption describing the changes you want to make!\n")
	b.WriteString("Example: `-s -n 3 -max Turn this into a pencil sketch`. The `-max` option uses Kontext Max.")
	return b.String()
}

// helpText はコマンド以外のテキストメッセージに対する案内文です。
func helpText() string {
	var b strings.Builder
	b.WriteString("🦑 *Cuttlefish*\n\n")
	b.WriteString("💡 To generate an image, use:\n")
	for _, m := range domain.AllModels() {
		b.WriteString(fmt.Sprintf("• `/%s <prompt>` - Use %s\n", m.Key, m.Name))
	}
	b.WriteString("\n*Options:*\n")
	b.WriteString("• Add `--landscape` or `-l` for landscape\n")
	b.WriteString("• Add `--portrait` or `-p` for portrait (default)\n")
	b.WriteString("• Add `--square` or `-s` for square (1024x1024)\n")
	b.WriteString("• Add `-n <number>` to generate multiple images (max 10)\n\n")
	b.WriteString("Or send an image with a caption to edit it! The `-max` option uses Kontext Max.")
	return b.String()
}

// usageText はプロンプトが与えられなかったときの使い方ヒントです。
func usageText(key domain.ModelKey) string {
	return fmt.Sprintf("Please provide a prompt! Examples:\n"+
		"• `/%[1]s a beautiful sunset` (portrait)\n"+
		"• `/%[1]s --landscape a beautiful sunset` (landscape)\n"+
		"• `/%[1]s --square a beautiful sunset` (square)\n"+
		"• `/%[1]s -n 3 -s a beautiful sunset` (generate 3 square images)", key)
}

// emptyPromptText はフラグだけでプロンプトが空になったときのヒントです。
func emptyPromptText(key domain.ModelKey) string {
	return fmt.Sprintf("Please provide a prompt after the options!\n"+
		"Example: `/%s --landscape -n 2 a beautiful sunset`", key)
}

// processingText は参照画像の取り込み中に掲示する処理中メッセージです。
// このメッセージはそのまま編集フローの進捗表示として使い回されます。
func processingText(model domain.ModelDescriptor, o domain.Orientation, count int) string {
	return fmt.Sprintf("🔄 Processing your image to generate %s for %s editing with %s...",
		runner.CountLabel(count), runner.OrientationLabel(o), model.Name)
}

const referenceFailedText = "❌ Failed to process the reference image."
