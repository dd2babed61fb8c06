// Package validate は生成された候補ページの検証を担います。
// スキーマ形状の検証（構造タグ駆動）と、物語の聖書に対する制約検査
// （名前ホワイトリスト・禁止色/素材・禁止オープナー）を提供します。
package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

var structValidator = validator.New()

// Schema は候補ページが要求形状を満たすかを検証します。
// 必須フィールドの欠落・行数の過不足・未知の visual_focus はすべて
// エラーです。警告では済ませません（fail closed）。
func Schema(out *domain.AuthorOutput) error {
	if out == nil {
		return &SchemaError{Detail: "候補オブジェクトがありません"}
	}
	if err := structValidator.Struct(out); err != nil {
		return &SchemaError{Detail: err.Error()}
	}
	return nil
}

// SchemaError はスキーマ形状違反の詳細を保持します。
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "スキーマ検証に失敗しました: " + e.Detail
}
