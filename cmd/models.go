package cmd

import (
	"fmt"

	"github.com/shouni/go-cuttlefish-bot/pkg/domain"

	"github.com/spf13/cobra"
)

// modelsCmd は、登録済みモデルの一覧を表示するのだ。秘密情報は不要なのだ。
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "登録済みの画像生成モデルを一覧表示するのだ。",
	Run:   modelsCommand,
}

func modelsCommand(cmd *cobra.Command, args []string) {
	fmt.Println("registered models:")
	for _, m := range domain.AllModels() {
		reference := ""
		if m.SupportsReference {
			reference = " (reference-capable)"
		}
		fmt.Printf("  /%-12s %-14s %s%s\n", m.Key, m.Name, m.ID, reference)
	}
}
