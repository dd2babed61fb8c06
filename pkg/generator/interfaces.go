package generator

import (
	"context"
)

// TextModel は作家モデル（テキスト生成AI）への最小の窓口です。
// 実装は workflow 側で Gemini クライアントに接着されます。
type TextModel interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
