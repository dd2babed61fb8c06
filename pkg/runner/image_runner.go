package runner

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-storybook-kit/pkg/adapters"
	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/session"
)

const rateBurst = 2

// IllustrationRunner は挿絵生成工程を担当します。ディレクティブの合成、
// レート制限、画像生成AIの呼び出しまでを1工程として束ねます。
type IllustrationRunner struct {
	adapter adapters.ImageAdapter
	store   *session.Store
	limiter *rate.Limiter
}

// NewIllustrationRunner は依存関係を注入して初期化します。limiter は
// 単体生成と一括生成で共有されます。
func NewIllustrationRunner(adapter adapters.ImageAdapter, store *session.Store, limiter *rate.Limiter) *IllustrationRunner {
	return &IllustrationRunner{
		adapter: adapter,
		store:   store,
		limiter: limiter,
	}
}

// IllustrationRequest は挿絵1枚分の生成要求です。Lines を省略すると
// 保存済みページの本文が使われます。DirectiveOnly を立てると画像生成AIを
// 呼ばず、合成されたディレクティブだけを返します。
type IllustrationRequest struct {
	BookID        string
	Page          int
	Lines         []string
	StyleLabel    string
	GenreLabel    string
	VisualFocus   domain.VisualFocus
	DirectiveOnly bool
}

// IllustrationResult は挿絵1枚分の生成結果です。合成されたディレクティブを
// そのまま返すため、呼び出し側は使われたプロンプトとシードを確認できます。
type IllustrationResult struct {
	Page      int                 `json:"page"`
	Directive generator.Directive `json:"job_used"`
	ImageB64  string              `json:"image_b64,omitempty"`
	MimeType  string              `json:"mime_type,omitempty"`
}

// Run は挿絵を1枚生成するのだ。
func (ir *IllustrationRunner) Run(ctx context.Context, req IllustrationRequest) (*IllustrationResult, error) {
	sess, ok := ir.store.Get(req.BookID)
	if !ok {
		return nil, generator.ErrUnknownBook
	}

	lines := req.Lines
	if len(lines) == 0 {
		if summary := pageSummaryFor(ir.store, req.BookID, req.Page); summary != nil {
			lines = summary.Lines
		}
	}

	if req.DirectiveOnly {
		directive := composeDirective(sess, req.Page, lines, req.StyleLabel, req.GenreLabel, req.VisualFocus)
		return &IllustrationResult{Page: req.Page, Directive: directive}, nil
	}

	if err := ir.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("リミッター待機中にエラーが発生しました: %w", err)
	}

	return ir.generate(ctx, sess, req.Page, lines, req.StyleLabel, req.GenreLabel, req.VisualFocus)
}

// RunAll は保存済みの全ページの挿絵を並列生成するのだ。
// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ。
func (ir *IllustrationRunner) RunAll(ctx context.Context, bookID, styleLabel, genreLabel string) ([]*IllustrationResult, error) {
	sess, ok := ir.store.Get(bookID)
	if !ok {
		return nil, generator.ErrUnknownBook
	}

	pages := ir.store.StorySoFar(bookID)
	results := make([]*IllustrationResult, len(pages))
	eg, egCtx := errgroup.WithContext(ctx)

	slog.Info("並列挿絵生成を開始するのだ", slog.String("book_id", bookID), slog.Int("count", len(pages)))

	for i, page := range pages {
		i, page := i, page

		eg.Go(func() error {
			if err := ir.limiter.Wait(egCtx); err != nil {
				return err
			}

			res, err := ir.generate(egCtx, sess, page.Page, page.Lines, styleLabel, genreLabel, "")
			if err != nil {
				slog.Error("挿絵生成に失敗したのだ", slog.Int("page", page.Page), slog.Any("error", err))
				return err
			}

			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("すべての挿絵が正常に生成されたのだ", slog.Int("total", len(results)))
	return results, nil
}

func composeDirective(sess *domain.BookSession, page int, lines []string, styleLabel, genreLabel string, focus domain.VisualFocus) generator.Directive {
	return generator.Compose(&sess.ArtBible, generator.DirectiveRequest{
		Page:        page,
		Lines:       lines,
		StyleLabel:  styleLabel,
		GenreLabel:  genreLabel,
		VisualFocus: focus,
	})
}

func (ir *IllustrationRunner) generate(ctx context.Context, sess *domain.BookSession, page int, lines []string, styleLabel, genreLabel string, focus domain.VisualFocus) (*IllustrationResult, error) {
	directive := composeDirective(sess, page, lines, styleLabel, genreLabel, focus)

	slog.Info("挿絵を生成中...",
		slog.Int("page", page),
		slog.String("visual_focus", string(directive.FocusUsed)),
		slog.Int64("seed", directive.Seed),
	)

	seed := directive.Seed
	resp, err := ir.adapter.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         directive.Prompt,
		NegativePrompt: directive.NegativePrompt,
		AspectRatio:    bible.FormatFor(sess.ArtBible.BookMeta.BookFormat).AspectRatio(),
		Seed:           &seed,
	})
	if err != nil {
		return nil, fmt.Errorf("ページ %d の挿絵生成に失敗しました: %w", page, err)
	}

	result := &IllustrationResult{Page: page, Directive: directive}
	if resp != nil && len(resp.Data) > 0 {
		result.ImageB64 = base64.StdEncoding.EncodeToString(resp.Data)
		result.MimeType = resp.MimeType
	}
	return result, nil
}

func pageSummaryFor(store *session.Store, bookID string, page int) *domain.PageSummary {
	for _, s := range store.StorySoFar(bookID) {
		if s.Page == page {
			summary := s
			return &summary
		}
	}
	return nil
}
