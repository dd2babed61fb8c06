package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/publisher"
	"github.com/shouni/go-storybook-kit/pkg/workflow"

	"github.com/spf13/cobra"
)

// bookCmd は、1冊まるごとをオフラインで生成するコマンドなのだ。
// 初期化 → 全ページ本文 → 全ページ挿絵までを一気通貫で実行するのだよ。
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "ピッチから1冊分の本文と挿絵をまとめて生成するのだ。",
	Long: `ピッチを基にブックを初期化し、アウトラインに沿って全ページの本文を生成・検証した後、
各ページの挿絵をローカルディレクトリに保存するのだ。`,
	RunE: runBookCmd,
}

func runBookCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Pitch == "" {
		return fmt.Errorf("エラー: --pitch は必須です。絵本の1行ピッチを指定するのだ")
	}

	cfg := config.LoadConfig()
	applyFlagOverrides(cfg)

	builder, err := workflow.NewBuilder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ワークフロービルダーの初期化に失敗しました: %w", err)
	}

	sess, err := builder.BuildBookInitRunner().Run(ctx, bible.InitInput{
		Pitch:        opts.Pitch,
		StyleLabel:   opts.StyleLabel,
		GenreLabel:   opts.GenreLabel,
		AgeBand:      opts.AgeBand,
		BookSize:     opts.BookSize,
		AllowAINames: opts.AllowAINames,
		ForceRhyme:   opts.ForceRhyme,
	})
	if err != nil {
		return fmt.Errorf("ブックの初期化に失敗しました: %w", err)
	}
	bookID := sess.StoryBible.BookID

	storyRunner, err := builder.BuildStoryPageRunner()
	if err != nil {
		return fmt.Errorf("本文生成ランナーの構築に失敗しました: %w", err)
	}

	// アウトラインに沿ってページを順に書き進めるのだ。前ページの要約が
	// コンテキストに入るため、並列化はせずページ順を守るのだよ。
	for page := 1; page <= sess.ArtBible.BookMeta.MaxPages; page++ {
		result, err := storyRunner.Run(ctx, generator.PageRequest{
			BookID: bookID,
			Page:   page,
		})
		if err != nil {
			return fmt.Errorf("ページ %d の本文生成に失敗しました: %w", page, err)
		}
		slog.Info("ページ本文を生成したのだ",
			slog.Int("page", page),
			slog.Int("lines", len(result.Output.Lines)),
			slog.Bool("retried", result.Retried),
		)
	}

	if err := publishBook(ctx, builder, bookID); err != nil {
		return err
	}

	slog.Info("1冊分の生成が完了したのだ", slog.String("book_id", bookID))
	return nil
}

// publishBook は、保存済みの全ページを挿絵パイプラインに通し、
// 本文 Markdown と挿絵をローカルディレクトリへ書き出すのだ。
func publishBook(ctx context.Context, builder *workflow.Builder, bookID string) error {
	sess, ok := builder.Store().Get(bookID)
	if !ok {
		return fmt.Errorf("セッションが見つかりません: %s", bookID)
	}

	pages, err := builder.BuildBookPipeline().Execute(ctx, sess, opts.StyleLabel, opts.GenreLabel)
	if err != nil {
		return fmt.Errorf("挿絵パイプラインの実行に失敗しました: %w", err)
	}

	pub := publisher.NewBookPublisher(publisher.LocalWriter{})
	result, err := pub.Publish(ctx, sess, pages, publisher.Options{
		OutputDir: opts.OutputDir,
		Title:     opts.Pitch,
	})
	if err != nil {
		return fmt.Errorf("成果物の書き出しに失敗しました: %w", err)
	}

	slog.Info("絵本を書き出したのだ",
		slog.String("markdown", result.MarkdownPath),
		slog.Int("images", len(result.ImagePaths)),
	)
	return nil
}