// Package runner はブック初期化・本文生成・挿絵生成の各工程を担う
// Runner 群を提供します。Runner はサーバと CLI の両方から呼ばれる
// 実行単位です。
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/session"
)

// BookInitRunner はブックの初期化を担当します。ピッチから Story Bible /
// Art Bible / アウトラインを一括生成し、セッションストアに登録します。
type BookInitRunner struct {
	store *session.Store
}

// NewBookInitRunner は依存関係を注入して初期化します。
func NewBookInitRunner(store *session.Store) *BookInitRunner {
	return &BookInitRunner{store: store}
}

// Run はブックを1冊初期化し、登録済みのセッションを返します。
func (br *BookInitRunner) Run(_ context.Context, in bible.InitInput) (*domain.BookSession, error) {
	if strings.TrimSpace(in.Pitch) == "" {
		return nil, fmt.Errorf("pitch は必須です")
	}

	sess := bible.Build(in)
	bookID := sess.StoryBible.BookID
	br.store.Put(bookID, sess)

	slog.Info("ブックを初期化しました",
		slog.String("book_id", bookID),
		slog.String("style_key", sess.ArtBible.BookMeta.StyleKey),
		slog.String("genre_key", sess.ArtBible.BookMeta.GenreKey),
		slog.Int("max_pages", sess.ArtBible.BookMeta.MaxPages),
	)

	return sess, nil
}
