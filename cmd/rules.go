package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/shouni/go-storybook-kit/pkg/rules"

	"github.com/spf13/cobra"
)

// rulesCmd は、フロントエンドと共有する定義済みルール一覧を出力するコマンドなのだ。
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "画風・ジャンル・禁止書き出しなどのルール一覧をJSONで出力するのだ。",
	RunE:  runRulesCmd,
}

func runRulesCmd(cmd *cobra.Command, args []string) error {
	payload := map[string]any{
		"styles":                 rules.Styles,
		"genres":                 rules.Genres,
		"ban_cliche_openers":     rules.BanClicheOpeners,
		"age_bands":              rules.AgeBands,
		"name_pool":              rules.NamePool,
		"rhyme_default_by_genre": rules.RhymeDefaults(),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("ルール一覧のJSON整形に失敗しました: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
