package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// textModel は gemini クライアントを generator.TextModel に接着します。
// system / user の2プロンプトは結合して1本のプロンプトとして渡します。
type textModel struct {
	client gemini.GenerativeModel
	model  string
}

func (m *textModel) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	prompt := systemPrompt + "\n\n" + userPrompt
	resp, err := m.client.GenerateContent(ctx, prompt, m.model)
	if err != nil {
		return "", fmt.Errorf("Gemini API の呼び出しに失敗しました: %w", err)
	}
	return resp.Text, nil
}
