package domain

import "time"

// StoryBible は1冊ごとの「物語の聖書」です。名前・衣装・トーンなど、
// テキスト生成AIが矛盾させてはいけない事実を確定させた記録を保持します。
type StoryBible struct {
	BookID       string       `json:"book_id"`
	WriterPolicy WriterPolicy `json:"writer_policy"`
	Characters   []Character  `json:"characters"`
	SettingHint  string       `json:"setting_hint"`
}

// WriterPolicy は文体・韻・命名に関する執筆契約です。ブック初期化時に
// 確定し、以後のページ生成で変更されることはありません。
type WriterPolicy struct {
	Tense               string          `json:"tense"`
	POV                 string          `json:"pov"`
	RhymeDefaultByGenre map[string]bool `json:"rhyme_default_by_genre"`
	BanClicheOpeners    []string        `json:"ban_cliche_openers"`
	NamingRules         NamingRules     `json:"naming_rules"`
}

// NamingRules は登場人物名のホワイトリストです。AllowedNames はロスター
// 確定時の DisplayName 列そのものであり、以後増えることはありません。
type NamingRules struct {
	AllowNewNames bool     `json:"allow_new_names"`
	AllowedNames  []string `json:"allowed_names"`
}

// Character は物語に登場するキャストひとり分の定義を保持します。
type Character struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	Kind         string     `json:"kind"`
	Summary      string     `json:"summary,omitempty"`
	Outfit       string     `json:"outfit,omitempty"`
	MaterialLock string     `json:"material_lock,omitempty"`
	ColorLock    *ColorLock `json:"color_lock,omitempty"`
}

// ColorLock はキャラクターの色彩制約です。Forbid に列挙された語は、
// 本文・画像指示のどちらでもそのキャラクターと結び付けてはいけません。
type ColorLock struct {
	Base    string   `json:"base"`
	Accents []string `json:"accents,omitempty"`
	Forbid  []string `json:"forbid,omitempty"`
}

// ArtBible は1冊ごとの「画の聖書」です。スタイル・パレット・キャラクターの
// 外見ロックなど、画像生成AIが矛盾させてはいけない視覚的事実を保持します。
// BookMeta 配下のフィールドは初期化後に変更してはいけません。
type ArtBible struct {
	BookMeta        BookMeta       `json:"book_meta"`
	World           WorldNotes     `json:"world"`
	Characters      []ArtCharacter `json:"characters"`
	NegativesGlobal []string       `json:"negatives_global"`
	ForceRhyme      bool           `json:"force_rhyme"`
}

// BookMeta はブック全体の不変メタ情報です。
type BookMeta struct {
	BookID     string    `json:"book_id"`
	StyleKey   string    `json:"style_key"`
	GenreKey   string    `json:"genre_key"`
	AgeBand    string    `json:"age_band"`
	BookFormat string    `json:"book_format"`
	FormatName string    `json:"format_name"`
	RenderSize string    `json:"render_size"`
	MaxPages   int       `json:"max_pages"`
	Palette    []string  `json:"palette"`
	Camera     CameraRig `json:"camera"`
	Lighting   string    `json:"lighting"`
	Locks      []string  `json:"locks"`
}

// CameraRig は全ページ共通のカメラ基準です。
type CameraRig struct {
	Height string `json:"height"`
	FOV    int    `json:"fov"`
}

// WorldNotes は舞台設定の補足メモです。
type WorldNotes struct {
	Locale string `json:"locale"`
	Era    string `json:"era"`
}

// ArtCharacter は StoryBible のキャラクターをイラスト向けに射影したものです。
type ArtCharacter struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Costume      Costume      `json:"costume"`
	CoreIdentity CoreIdentity `json:"core_identity"`
	MaterialLock string       `json:"material_lock,omitempty"`
	ColorLock    *ColorLock   `json:"color_lock,omitempty"`
	Refs         []string     `json:"refs"`
}

// Costume は衣装のロック情報です。AllowOutfitChange は常に false で生成されます。
type Costume struct {
	Primary           string `json:"primary"`
	AllowOutfitChange bool   `json:"allow_outfit_change"`
}

// CoreIdentity はキャラクターの同一性メモです。
type CoreIdentity struct {
	Notes string `json:"notes"`
}

// Beat はアウトラインの1ページ分の指針です。ブック初期化時に一度だけ
// 生成され、以後は読み取り専用のガイダンスとして扱われます。
type Beat struct {
	Page    int    `json:"page"`
	Title   string `json:"title"`
	Setting string `json:"setting"`
	Goal    string `json:"goal"`
	Turn    string `json:"turn"`
}

// Page は検証を通過して保存された1ページ分の本文です。
// 同じページ番号の再生成では後勝ちで上書きされます。
type Page struct {
	Page      int       `json:"page"`
	Lines     []string  `json:"lines"`
	SceneHint string    `json:"scene_hint,omitempty"`
	TS        time.Time `json:"ts"`
}

// PageSummary は「これまでの物語」としてプロンプトに埋め込む要約形です。
type PageSummary struct {
	Page      int      `json:"page"`
	Lines     []string `json:"lines"`
	SceneHint string   `json:"scene_hint,omitempty"`
}

// BookSession は1冊分のセッション状態です。セッションストアに
// BookID をキーとして保持されます。
type BookSession struct {
	StoryBible StoryBible `json:"story_bible"`
	ArtBible   ArtBible   `json:"art_bible"`
	Outline    []Beat     `json:"outline"`
	Pages      []*Page    `json:"pages"`
}

// LeadName はロスター先頭の主人公名を返します。見つからない場合は空文字です。
func (b *ArtBible) LeadName() string {
	for _, c := range b.Characters {
		if c.ID == "lead" {
			return c.DisplayName
		}
	}
	return ""
}

// SupportNames は主人公以外のキャラクター名をロスター順で返します。
func (b *ArtBible) SupportNames() []string {
	var names []string
	for _, c := range b.Characters {
		if c.ID != "lead" {
			names = append(names, c.DisplayName)
		}
	}
	return names
}

// LockedCharacters は色または素材のロックを持つキャラクターだけを返します。
func (s *StoryBible) LockedCharacters() []Character {
	var locked []Character
	for _, c := range s.Characters {
		if c.MaterialLock != "" || c.ColorLock != nil {
			locked = append(locked, c)
		}
	}
	return locked
}
