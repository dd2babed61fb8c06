// Package session はブックごとの生成状態を保持するセッションストアです。
// プロセス全体のグローバルマップではなく、TTL 付きキャッシュを持つ
// ストアを依存として注入する設計にしています。一定時間アクセスのない
// ブックは自動的に破棄されます。
package session

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

const (
	// DefaultTTL はブックセッションの無操作破棄までの既定時間です。
	DefaultTTL = 2 * time.Hour
	// DefaultCleanupInterval は期限切れエントリの掃除間隔です。
	DefaultCleanupInterval = 15 * time.Minute
)

// Store はブックIDをキーとするセッションの保管庫です。
// 同一ページへの同時再生成は直列化しません。最後に完了した書き込みが
// 勝つ仕様で、1冊につき書き手は1人という前提を置いています。
type Store struct {
	books *cache.Cache
	ttl   time.Duration
}

// New は TTL 付きのセッションストアを作成します。
func New(ttl, cleanupInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &Store{
		books: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get はブックセッションを返します。存在しない（または期限切れの）
// ブックIDは ok=false で通知され、呼び出し側がクライアントエラーとして
// 扱います。
func (s *Store) Get(bookID string) (*domain.BookSession, bool) {
	v, ok := s.books.Get(bookID)
	if !ok {
		return nil, false
	}
	return v.(*domain.BookSession), true
}

// Put はセッションを保存し、TTL を更新します。
func (s *Store) Put(bookID string, sess *domain.BookSession) {
	s.books.Set(bookID, sess, cache.DefaultExpiration)
}

// PushPage は検証済みページを pages[page-1] に格納します。既存ページは
// 上書きされます（追記履歴は持ちません）。ブックが存在しない場合は
// false を返します。
func (s *Store) PushPage(bookID string, page int, lines []string, sceneHint string) bool {
	sess, ok := s.Get(bookID)
	if !ok || page < 1 {
		return false
	}
	for len(sess.Pages) < page {
		sess.Pages = append(sess.Pages, nil)
	}
	sess.Pages[page-1] = &domain.Page{
		Page:      page,
		Lines:     lines,
		SceneHint: sceneHint,
		TS:        time.Now(),
	}
	s.Put(bookID, sess)
	return true
}

// StorySoFar は存在するページだけをページ順に要約して返します。
// 途中に未生成ページがあっても欠番として飛ばします。
func (s *Store) StorySoFar(bookID string) []domain.PageSummary {
	sess, ok := s.Get(bookID)
	if !ok {
		return nil
	}
	var story []domain.PageSummary
	for _, p := range sess.Pages {
		if p == nil {
			continue
		}
		story = append(story, domain.PageSummary{
			Page:      p.Page,
			Lines:     p.Lines,
			SceneHint: p.SceneHint,
		})
	}
	return story
}

// Outline はブックのアウトラインを返します。未知のブックでは nil です。
func (s *Store) Outline(bookID string) []domain.Beat {
	sess, ok := s.Get(bookID)
	if !ok {
		return nil
	}
	return sess.Outline
}

// BeatFor は指定ページに対応するアウトラインの Beat を返します。
// 範囲外のページでは nil です。
func (s *Store) BeatFor(bookID string, page int) *domain.Beat {
	outline := s.Outline(bookID)
	if page < 1 || page > len(outline) {
		return nil
	}
	beat := outline[page-1]
	return &beat
}

// Count は現在保持しているセッション数を返します。
func (s *Store) Count() int {
	return s.books.ItemCount()
}
