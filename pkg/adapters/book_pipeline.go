package adapters

import (
	"context"
	"fmt"

	imgdomain "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
)

// BookIllustrationPipeline は、保存済みの全ページを「冊」として順次挿絵生成を管理するパイプラインなのだ。
type BookIllustrationPipeline struct {
	adapter ImageAdapter
}

// NewBookIllustrationPipeline は新しい挿絵生成パイプラインを作成するのだ。
func NewBookIllustrationPipeline(a ImageAdapter) *BookIllustrationPipeline {
	return &BookIllustrationPipeline{adapter: a}
}

// IllustratedPage は1ページ分の挿絵生成結果です。
type IllustratedPage struct {
	Page      int
	Directive generator.Directive
	Image     *imgdomain.ImageResponse
}

// Execute は、セッションに保存された全ページを順に処理し、各ページの挿絵を生成するのだ！
// ページはシードを含め決定論的なディレクティブに合成されるため、
// 同じセッションからは同じ指示列が得られます。
func (pl *BookIllustrationPipeline) Execute(ctx context.Context, sess *domain.BookSession, styleLabel, genreLabel string) ([]IllustratedPage, error) {
	if sess == nil {
		return nil, fmt.Errorf("book_pipeline: session data is nil なのだ")
	}

	aspect := bible.FormatFor(sess.ArtBible.BookMeta.BookFormat).AspectRatio()
	results := make([]IllustratedPage, 0, len(sess.Pages))

	for _, page := range sess.Pages {
		if page == nil {
			continue
		}

		directive := generator.Compose(&sess.ArtBible, generator.DirectiveRequest{
			Page:       page.Page,
			Lines:      page.Lines,
			StyleLabel: styleLabel,
			GenreLabel: genreLabel,
		})

		seed := directive.Seed
		req := imgdomain.ImageGenerationRequest{
			Prompt:         directive.Prompt,
			NegativePrompt: directive.NegativePrompt,
			AspectRatio:    aspect,
			Seed:           &seed,
		}

		resp, err := pl.adapter.GenerateMangaPanel(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("book_pipeline: ページ %d の生成に失敗: %w", page.Page, err)
		}

		results = append(results, IllustratedPage{
			Page:      page.Page,
			Directive: directive,
			Image:     resp,
		})
	}

	return results, nil
}
