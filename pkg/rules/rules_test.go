package rules

import (
	"strings"
	"testing"
)

func TestMapStyleLabel(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Classic Storybook 📚", "watercolor_storybook"},
		{"Pixar 3D 🎨", "cinematic_3d_family"},
		{"Disney Style 🏰", "cinematic_3d_family"},
		{"Manga Style 📖", "manga_bw"},
		{"Pop Art 🌈", "pop_halftone"},
		{"Vintage Illustration 📰", "vintage_print"},
		{"まったく未知のラベル", DefaultStyleKey},
		{"", DefaultStyleKey},
	}
	for _, c := range cases {
		if got := MapStyleLabel(c.label); got != c.want {
			t.Errorf("MapStyleLabel(%q) = %q, 期待値 %q", c.label, got, c.want)
		}
	}
}

func TestMapGenreLabel(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Fantasy 🧙‍♀️", "fantasy"},
		{"Friendship 🤝", "friendship"},
		{"Bedtime 🌙", "bedtime"},
		{"Educational 📖", "educational"},
		{"unknown genre", DefaultGenreKey},
	}
	for _, c := range cases {
		if got := MapGenreLabel(c.label); got != c.want {
			t.Errorf("MapGenreLabel(%q) = %q, 期待値 %q", c.label, got, c.want)
		}
	}
}

func TestMapLabel_Total(t *testing.T) {
	t.Run("全ラベルが必ず固定キー集合に解決されること", func(t *testing.T) {
		knownStyles := make(map[string]struct{})
		for _, s := range Styles {
			knownStyles[s.Key] = struct{}{}
		}
		for _, s := range Styles {
			key := MapStyleLabel(s.Label)
			if _, ok := knownStyles[key]; !ok {
				t.Errorf("ラベル %q が未知のキー %q に解決されました", s.Label, key)
			}
		}

		knownGenres := make(map[string]struct{})
		for _, g := range Genres {
			knownGenres[g.Key] = struct{}{}
		}
		for _, g := range Genres {
			key := MapGenreLabel(g.Label)
			if _, ok := knownGenres[key]; !ok {
				t.Errorf("ラベル %q が未知のキー %q に解決されました", g.Label, key)
			}
		}
	})
}

func TestLookupFallbacks(t *testing.T) {
	if got := StyleByKey("no_such_style").Key; got != "watercolor_storybook" {
		t.Errorf("画風のフォールバック先が違います: %s", got)
	}
	if got := GenreByKey("no_such_genre").Key; got != "fantasy" {
		t.Errorf("ジャンルのフォールバック先が違います: %s", got)
	}
}

func TestBanClicheOpeners(t *testing.T) {
	if len(BanClicheOpeners) != 12 {
		t.Errorf("禁止オープナーは12件のはずです: %d", len(BanClicheOpeners))
	}
	for _, opener := range BanClicheOpeners {
		if opener != strings.ToLower(opener) {
			t.Errorf("オープナーは小文字で保持する規約です: %q", opener)
		}
	}
}

func TestRhymeDefaults(t *testing.T) {
	defaults := RhymeDefaults()
	if !defaults["bedtime"] {
		t.Error("bedtime の韻の既定値は true のはずです")
	}
	if defaults["fantasy"] {
		t.Error("fantasy の韻の既定値は false のはずです")
	}
}

func TestExtractKeywords(t *testing.T) {
	lines := []string{
		"The whole street gathered for the parade.",
		"Maya went there with her shiny robot friend.",
	}
	keywords := ExtractKeywords(lines)

	has := func(w string) bool {
		for _, k := range keywords {
			if k == w {
				return true
			}
		}
		return false
	}

	if !has("street") || !has("parade") || !has("robot") {
		t.Errorf("内容語が抽出されていません: %v", keywords)
	}
	if has("the") || has("went") || has("with") {
		t.Errorf("機能語が混入しています: %v", keywords)
	}
	if len(keywords) > maxKeywords {
		t.Errorf("キーワード数が上限を超えています: %d", len(keywords))
	}

	// 重複なし
	seen := make(map[string]struct{})
	for _, k := range keywords {
		if _, dup := seen[k]; dup {
			t.Errorf("キーワードが重複しています: %s", k)
		}
		seen[k] = struct{}{}
	}
}
