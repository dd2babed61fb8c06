package session

import (
	"testing"
	"time"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

func newTestSession(bookID string) *domain.BookSession {
	return &domain.BookSession{
		StoryBible: domain.StoryBible{BookID: bookID},
		ArtBible:   domain.ArtBible{BookMeta: domain.BookMeta{BookID: bookID, MaxPages: 5}},
		Outline: []domain.Beat{
			{Page: 1, Title: "Setup"},
			{Page: 2, Title: "Escalation"},
			{Page: 3, Title: "Complication"},
		},
	}
}

func TestStore_GetPut(t *testing.T) {
	store := New(time.Minute, time.Minute)

	if _, ok := store.Get("missing"); ok {
		t.Error("未知のブックIDで ok=true が返りました")
	}

	store.Put("b1", newTestSession("b1"))
	sess, ok := store.Get("b1")
	if !ok {
		t.Fatal("保存したセッションが取得できません")
	}
	if sess.StoryBible.BookID != "b1" {
		t.Errorf("別のセッションが返りました: %s", sess.StoryBible.BookID)
	}
}

func TestStore_PushPage(t *testing.T) {
	store := New(time.Minute, time.Minute)
	store.Put("b1", newTestSession("b1"))

	t.Run("ページは page-1 の位置に格納されるのだ", func(t *testing.T) {
		if !store.PushPage("b1", 3, []string{"line a", "line b"}, "hint") {
			t.Fatal("PushPage が失敗しました")
		}
		sess, _ := store.Get("b1")
		if len(sess.Pages) != 3 {
			t.Fatalf("pages の長さが違うのだ: %d", len(sess.Pages))
		}
		if sess.Pages[0] != nil || sess.Pages[1] != nil {
			t.Error("未生成ページは nil のままのはずなのだ")
		}
		if sess.Pages[2] == nil || sess.Pages[2].Page != 3 {
			t.Error("ページ3が正しい位置に入っていないのだ")
		}
	})

	t.Run("同じページ番号は後勝ちで上書きされるのだ", func(t *testing.T) {
		store.PushPage("b1", 3, []string{"new a", "new b"}, "new hint")
		sess, _ := store.Get("b1")
		if sess.Pages[2].Lines[0] != "new a" {
			t.Errorf("上書きされていないのだ: %v", sess.Pages[2].Lines)
		}
	})

	t.Run("未知のブックでは false を返すのだ", func(t *testing.T) {
		if store.PushPage("nope", 1, []string{"a", "b"}, "") {
			t.Error("未知のブックで true が返ったのだ")
		}
	})

	t.Run("不正なページ番号は拒否するのだ", func(t *testing.T) {
		if store.PushPage("b1", 0, []string{"a", "b"}, "") {
			t.Error("page=0 で true が返ったのだ")
		}
	})
}

func TestStore_StorySoFar(t *testing.T) {
	store := New(time.Minute, time.Minute)
	store.Put("b1", newTestSession("b1"))
	store.PushPage("b1", 1, []string{"p1"}, "h1")
	store.PushPage("b1", 3, []string{"p3"}, "h3")

	story := store.StorySoFar("b1")
	if len(story) != 2 {
		t.Fatalf("存在するページだけが返るはずです: %d", len(story))
	}
	if story[0].Page != 1 || story[1].Page != 3 {
		t.Errorf("ページ順が崩れています: %+v", story)
	}

	if got := store.StorySoFar("missing"); got != nil {
		t.Error("未知のブックでは nil が返るはずです")
	}
}

func TestStore_BeatFor(t *testing.T) {
	store := New(time.Minute, time.Minute)
	store.Put("b1", newTestSession("b1"))

	if beat := store.BeatFor("b1", 2); beat == nil || beat.Title != "Escalation" {
		t.Errorf("ページ2の Beat が違います: %+v", beat)
	}
	if beat := store.BeatFor("b1", 9); beat != nil {
		t.Error("範囲外のページでは nil が返るはずです")
	}
	if beat := store.BeatFor("b1", 0); beat != nil {
		t.Error("page=0 では nil が返るはずです")
	}
}

func TestStore_TTLEviction(t *testing.T) {
	store := New(20*time.Millisecond, 10*time.Millisecond)
	store.Put("b1", newTestSession("b1"))

	time.Sleep(50 * time.Millisecond)
	if _, ok := store.Get("b1"); ok {
		t.Error("TTL 経過後もセッションが残っています")
	}
}
