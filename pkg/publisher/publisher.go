// Package publisher は完成した1冊分の成果物（本文 Markdown と挿絵）の
// 永続化を担います。
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/shouni/go-storybook-kit/pkg/adapters"
	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	Title     string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string   // 生成された book.md のパス
	ImagePaths   []string // 保存された全画像のパスリスト
}

const (
	defaultBookName     = "book.md"
	defaultImageDirName = "images"
)

// BookPublisher は成果物の永続化とフォーマット変換を担います。
type BookPublisher struct {
	writer   OutputWriter
	markdown *MarkdownPublisher
}

// NewBookPublisher は指定された writer でパブリッシャーを作成します。
func NewBookPublisher(writer OutputWriter) *BookPublisher {
	return &BookPublisher{
		writer:   writer,
		markdown: NewMarkdownPublisher(),
	}
}

// Publish は画像の保存と Markdown の構築・書き出しを一括して実行し、
// 生成されたファイル情報を返却するのだ！
func (p *BookPublisher) Publish(ctx context.Context, sess *domain.BookSession, illustrated []adapters.IllustratedPage, opts Options) (PublishResult, error) {
	result := PublishResult{}
	if sess == nil {
		return result, fmt.Errorf("publisher: session data is nil なのだ")
	}

	title := opts.Title
	if title == "" {
		title = sess.StoryBible.BookID
	}

	// 1. 画像の保存
	assets := NewAssetManager(p.writer, filepath.Join(opts.OutputDir, defaultImageDirName))
	relativePaths := make(map[int]string, len(illustrated))
	for _, page := range illustrated {
		if page.Image == nil || len(page.Image.Data) == 0 {
			continue
		}
		name := fmt.Sprintf("page_%02d%s", page.Page, imageExt(page.Image.MimeType))
		fullPath, err := assets.SaveImage(ctx, name, page.Image.Data)
		if err != nil {
			return result, fmt.Errorf("ページ %d の画像の書き込みに失敗しました: %w", page.Page, err)
		}
		result.ImagePaths = append(result.ImagePaths, fullPath)
		relativePaths[page.Page] = filepath.Join(defaultImageDirName, name)
	}

	// 2. Markdownテキストの構築と書き出し
	content := p.markdown.BuildBookMarkdown(title, relativePaths, sess.Pages)
	markdownPath := filepath.Join(opts.OutputDir, defaultBookName)
	if err := p.writer.Write(ctx, markdownPath, []byte(content)); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	slog.Info("1冊分の成果物を書き出したのだ",
		slog.String("markdown", result.MarkdownPath),
		slog.Int("images", len(result.ImagePaths)),
	)

	return result, nil
}

// imageExt は MIME タイプから保存用の拡張子を決めます。不明な場合は .png です。
func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
