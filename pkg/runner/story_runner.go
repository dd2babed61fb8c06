package runner

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/generator"
)

// StoryPageRunner はページ本文の生成工程を担当します。生成の実体は
// generator.PageGenerator で、Runner は工程としての入出力を揃えます。
type StoryPageRunner struct {
	pages *generator.PageGenerator
}

// NewStoryPageRunner は依存関係を注入して初期化します。
func NewStoryPageRunner(pages *generator.PageGenerator) *StoryPageRunner {
	return &StoryPageRunner{pages: pages}
}

// Run はページを1枚生成します。検証・リトライ・保存までを含みます。
func (sr *StoryPageRunner) Run(ctx context.Context, req generator.PageRequest) (*generator.PageResult, error) {
	return sr.pages.Execute(ctx, req)
}
