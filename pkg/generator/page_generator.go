// Package generator はページ本文の生成オーケストレーションと、
// 画像生成AIに渡す指示一式（ディレクティブ）の合成を担います。
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/parser"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
	"github.com/shouni/go-storybook-kit/pkg/session"
	"github.com/shouni/go-storybook-kit/pkg/validate"
)

// ErrUnknownBook はセッションストアに存在しない book_id を示します。
var ErrUnknownBook = errors.New("不明な book_id です")

// ValidationError は修正リトライ後もなお検証を通らなかったことを
// 示します。Report に全違反、Raw に最後のモデル応答全文を保持します。
type ValidationError struct {
	Report *validate.Report
	Raw    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ページ候補が検証を通りませんでした: %s", e.Report.Summary())
}

// PageGenerator はページ本文の生成ステートマシンです。プロンプト構築、
// モデル呼び出し、応答の解析と検証、そして1回限りの修正リトライを
// 制御します。受理されたページだけがセッションに保存されます。
type PageGenerator struct {
	model   TextModel
	builder *prompts.AuthorPromptBuilder
	store   *session.Store

	// strictRepair が真の場合、リトライ後の再検査はスキーマだけでなく
	// 三つの制約検査も再実行します。既定はスキーマのみです。
	strictRepair bool
}

// NewPageGenerator は PageGenerator の新しいインスタンスを初期化します。
func NewPageGenerator(model TextModel, builder *prompts.AuthorPromptBuilder, store *session.Store, strictRepair bool) *PageGenerator {
	return &PageGenerator{
		model:        model,
		builder:      builder,
		store:        store,
		strictRepair: strictRepair,
	}
}

// PageRequest はページ1枚分の生成要求です。ForceRhyme が nil の場合は
// ブック初期化時の指定とジャンル既定値に従います。
type PageRequest struct {
	BookID     string
	Page       int
	Idea       string
	ForceRhyme *bool
}

// PageResult は受理されたページの生成結果です。
type PageResult struct {
	Output  *domain.AuthorOutput
	Report  *validate.Report
	Retried bool
}

// Execute はページを1枚生成します。最初の候補が検証に落ちた場合、
// 批評文を付けて1回だけ再生成し、それでも通らなければ
// *ValidationError を返します。受理されたページはセッションに
// 後勝ちで保存されます。
func (pg *PageGenerator) Execute(ctx context.Context, req PageRequest) (*PageResult, error) {
	sess, ok := pg.store.Get(req.BookID)
	if !ok {
		return nil, ErrUnknownBook
	}

	force := req.ForceRhyme
	if force == nil && sess.ArtBible.ForceRhyme {
		t := true
		force = &t
	}
	rhyme := prompts.ResolveRhyme(
		sess.ArtBible.BookMeta.GenreKey,
		force,
		sess.StoryBible.WriterPolicy.RhymeDefaultByGenre,
	)

	allowed := sess.StoryBible.WriterPolicy.NamingRules.AllowedNames
	system, user, err := pg.builder.BuildAuthor(prompts.AuthorInput{
		AllowedNames: allowed,
		AgeBand:      sess.ArtBible.BookMeta.AgeBand,
		Rhyme:        rhyme,
		Page:         req.Page,
		Idea:         req.Idea,
		Beat:         pg.store.BeatFor(req.BookID, req.Page),
		StorySoFar:   pg.store.StorySoFar(req.BookID),
		StoryBible:   &sess.StoryBible,
	})
	if err != nil {
		return nil, fmt.Errorf("作家プロンプトの構築に失敗しました: %w", err)
	}

	slog.Info("ページ生成リクエストを送信します",
		slog.String("book_id", req.BookID),
		slog.Int("page", req.Page),
		slog.Bool("rhyme", rhyme),
	)

	raw, err := pg.model.Generate(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("作家モデルの呼び出しに失敗しました: %w", err)
	}

	out, report := pg.checkCandidate(raw, &sess.StoryBible)
	retried := false

	if !report.OK() {
		slog.Warn("ページ候補が検証に落ちたため修正リトライします",
			slog.String("book_id", req.BookID),
			slog.Int("page", req.Page),
			slog.String("violations", report.Summary()),
		)

		critique := report.Critique(req.Page, allowed)
		raw, err = pg.model.Generate(ctx, system, user+"\n\nCRITIQUE:\n"+critique)
		if err != nil {
			return nil, fmt.Errorf("修正リトライの呼び出しに失敗しました: %w", err)
		}
		retried = true

		var retryReport *validate.Report
		out, retryReport = pg.recheckCandidate(raw, &sess.StoryBible)
		if !retryReport.OK() {
			return nil, &ValidationError{Report: failureReport(report, retryReport), Raw: raw}
		}
		report = retryReport
	}

	if !pg.store.PushPage(req.BookID, req.Page, out.Lines, out.SceneHint) {
		return nil, fmt.Errorf("ページ %d の保存に失敗しました", req.Page)
	}

	slog.Info("ページを受理して保存しました",
		slog.String("book_id", req.BookID),
		slog.Int("page", req.Page),
		slog.Bool("retried", retried),
	)

	return &PageResult{Output: out, Report: report, Retried: retried}, nil
}

// failureReport は修正リトライも失敗した場合の最終報告を構成します。
// 初回検査で集めた違反詳細（無効な名前・禁止色・オープナー）を保持した
// まま、リトライ側の失敗理由を重ねます。
func failureReport(first, retry *validate.Report) *validate.Report {
	merged := *first
	merged.SchemaOK = retry.SchemaOK
	if retry.ParseDetail != "" {
		merged.ParseDetail = retry.ParseDetail
	}
	if retry.SchemaDetail != "" {
		merged.SchemaDetail = retry.SchemaDetail
	}
	if len(retry.InvalidNames) > 0 {
		merged.InvalidNames = retry.InvalidNames
	}
	if retry.ColorHit != nil {
		merged.ColorHit = retry.ColorHit
	}
	if retry.OpenerBad {
		merged.OpenerBad = true
	}
	return &merged
}

// checkCandidate は応答を解析し、全検査（スキーマ + 三制約）を実行します。
func (pg *PageGenerator) checkCandidate(raw string, bible *domain.StoryBible) (*domain.AuthorOutput, *validate.Report) {
	out, perr := parser.ParseAuthorOutput(raw)
	if perr != nil {
		return nil, &validate.Report{ParseDetail: perr.Reason, InvalidNames: []string{}}
	}
	return out, validate.Evaluate(out, bible)
}

// recheckCandidate はリトライ後の再検査です。既定ではスキーマだけを
// 再確認し、strictRepair の場合のみ制約検査も再実行します。
func (pg *PageGenerator) recheckCandidate(raw string, bible *domain.StoryBible) (*domain.AuthorOutput, *validate.Report) {
	if pg.strictRepair {
		return pg.checkCandidate(raw, bible)
	}

	out, perr := parser.ParseAuthorOutput(raw)
	if perr != nil {
		return nil, &validate.Report{ParseDetail: perr.Reason, InvalidNames: []string{}}
	}

	report := &validate.Report{InvalidNames: []string{}}
	if err := validate.Schema(out); err != nil {
		report.SchemaDetail = err.Error()
		return out, report
	}
	report.SchemaOK = true
	return out, report
}
