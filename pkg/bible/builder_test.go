package bible

import (
	"testing"
)

func TestBuild_AllowedNames(t *testing.T) {
	t.Run("allowed_names はロスターの表示名そのものであること", func(t *testing.T) {
		sess := buildWithID("book-x", InitInput{
			Pitch:        "a curious child meets a friendly robot in the park",
			AllowAINames: true,
			BookSize:     "picture-book",
		})

		roster := sess.StoryBible.Characters
		allowed := sess.StoryBible.WriterPolicy.NamingRules.AllowedNames
		if len(allowed) != len(roster) {
			t.Fatalf("allowed_names の長さが違います: %d != %d", len(allowed), len(roster))
		}
		for i, c := range roster {
			if allowed[i] != c.DisplayName {
				t.Errorf("allowed_names[%d] = %q, 期待値 %q", i, allowed[i], c.DisplayName)
			}
		}
		if sess.StoryBible.WriterPolicy.NamingRules.AllowNewNames {
			t.Error("allow_new_names は false のはずです")
		}
	})

	t.Run("同じブックIDなら主人公名も同じになること", func(t *testing.T) {
		a := buildWithID("book-x", InitInput{Pitch: "p", AllowAINames: true})
		b := buildWithID("book-x", InitInput{Pitch: "p", AllowAINames: true})
		if a.StoryBible.Characters[0].DisplayName != b.StoryBible.Characters[0].DisplayName {
			t.Error("主人公名の選択が決定論的ではありません")
		}
	})

	t.Run("AIネーミング無効時は汎称になること", func(t *testing.T) {
		sess := buildWithID("book-x", InitInput{Pitch: "a robot story", AllowAINames: false})
		if sess.StoryBible.Characters[0].DisplayName != "the child" {
			t.Errorf("主人公は 'the child' のはずです: %s", sess.StoryBible.Characters[0].DisplayName)
		}
		if sess.StoryBible.Characters[1].DisplayName != "the robot" {
			t.Errorf("ロボットは 'the robot' のはずです: %s", sess.StoryBible.Characters[1].DisplayName)
		}
	})
}

func TestBuild_RobotRoster(t *testing.T) {
	t.Run("ピッチが robot に触れるとロック付きキャラが追加されるのだ", func(t *testing.T) {
		sess := buildWithID("book-r", InitInput{
			Pitch:        "A boy and his ROBOT explore the city",
			AllowAINames: true,
		})

		if len(sess.StoryBible.Characters) != 2 {
			t.Fatalf("ロスターは2人のはずなのだ: %d", len(sess.StoryBible.Characters))
		}
		robot := sess.StoryBible.Characters[1]
		if robot.ID != "robot1" || robot.Kind != "robot" {
			t.Errorf("ロボットキャラの定義が違うのだ: %+v", robot)
		}
		if robot.MaterialLock != "brushed aluminum silver" {
			t.Errorf("素材ロックが違うのだ: %s", robot.MaterialLock)
		}
		found := false
		for _, f := range robot.ColorLock.Forbid {
			if f == "copper" {
				found = true
			}
		}
		if !found {
			t.Errorf("forbid に copper が含まれていないのだ: %v", robot.ColorLock.Forbid)
		}
	})

	t.Run("robots のような部分一致では追加されないのだ", func(t *testing.T) {
		sess := buildWithID("book-r", InitInput{Pitch: "a robotic arm", AllowAINames: true})
		if len(sess.StoryBible.Characters) != 1 {
			t.Errorf("部分一致でロボットが追加されたのだ: %d", len(sess.StoryBible.Characters))
		}
	})
}

func TestBuild_Outlines(t *testing.T) {
	cases := []struct {
		bookSize   string
		wantBeats  int
		firstTitle string
		lastTitle  string
	}{
		{"board-book", 3, "Problem", "Success"},
		{"picture-book", 5, "Setup", "Resolution"},
		{"square-book", 5, "Setup", "Resolution"},
		{"chapter-book", 8, "Introduction", "Return"},
		{"unknown-size", 5, "Setup", "Resolution"},
	}

	for _, c := range cases {
		sess := buildWithID("book-o", InitInput{BookSize: c.bookSize})
		if len(sess.Outline) != c.wantBeats {
			t.Errorf("%s: beat 数 %d, 期待値 %d", c.bookSize, len(sess.Outline), c.wantBeats)
			continue
		}
		if sess.Outline[0].Title != c.firstTitle {
			t.Errorf("%s: 先頭 beat %q, 期待値 %q", c.bookSize, sess.Outline[0].Title, c.firstTitle)
		}
		if sess.Outline[len(sess.Outline)-1].Title != c.lastTitle {
			t.Errorf("%s: 末尾 beat %q, 期待値 %q", c.bookSize, sess.Outline[len(sess.Outline)-1].Title, c.lastTitle)
		}
		if sess.ArtBible.BookMeta.MaxPages != c.wantBeats {
			t.Errorf("%s: max_pages %d と beat 数 %d が一致しません", c.bookSize, sess.ArtBible.BookMeta.MaxPages, c.wantBeats)
		}
	}

	t.Run("board-book のタイトル列は Problem/Try/Success であること", func(t *testing.T) {
		sess := buildWithID("book-o", InitInput{BookSize: "board-book"})
		want := []string{"Problem", "Try", "Success"}
		for i, beat := range sess.Outline {
			if beat.Title != want[i] {
				t.Errorf("beat[%d] = %q, 期待値 %q", i, beat.Title, want[i])
			}
			if beat.Page != i+1 {
				t.Errorf("beat[%d].Page = %d, 期待値 %d", i, beat.Page, i+1)
			}
		}
	})
}

func TestBuild_ArtBible(t *testing.T) {
	sess := buildWithID("book-a", InitInput{
		Pitch:      "a robot in the garden",
		StyleLabel: "Pixar 3D 🎨",
		GenreLabel: "Bedtime 🌙",
		AgeBand:    "pre_k",
		BookSize:   "square-book",
		ForceRhyme: true,
	})

	meta := sess.ArtBible.BookMeta
	if meta.StyleKey != "cinematic_3d_family" {
		t.Errorf("style_key が違います: %s", meta.StyleKey)
	}
	if meta.GenreKey != "bedtime" {
		t.Errorf("genre_key が違います: %s", meta.GenreKey)
	}
	if meta.RenderSize != "1200x1200" {
		t.Errorf("render_size が違います: %s", meta.RenderSize)
	}
	if !sess.ArtBible.ForceRhyme {
		t.Error("force_rhyme が引き継がれていません")
	}

	// イラスト射影はロスターを鏡写しにし、衣装変更を禁止する
	if len(sess.ArtBible.Characters) != len(sess.StoryBible.Characters) {
		t.Fatal("art_bible.characters がロスターと一致しません")
	}
	for _, c := range sess.ArtBible.Characters {
		if c.Costume.AllowOutfitChange {
			t.Errorf("%s: 衣装変更が許可されています", c.ID)
		}
		if c.Refs == nil || len(c.Refs) != 0 {
			t.Errorf("%s: 参照画像リストは空で初期化されるはずです", c.ID)
		}
	}
	if sess.ArtBible.Characters[1].MaterialLock != "brushed aluminum silver" {
		t.Error("素材ロックが射影に引き継がれていません")
	}
}

func TestFormatFor(t *testing.T) {
	if f := FormatFor("chapter-book"); f.Pages != 8 || f.RenderSize() != "900x1200" {
		t.Errorf("chapter-book の判型が違います: %+v", f)
	}
	if f := FormatFor("no-such-size"); f.Name != "Picture Book (8.5×11)" {
		t.Errorf("フォールバック先が違います: %+v", f)
	}
}
