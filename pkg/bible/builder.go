// Package bible はブック初期化を担います。ピッチと画風・ジャンル選択から
// ロスターを確定し、StoryBible・ArtBible・アウトラインを一度だけ構築します。
// ここで確定した名前・衣装・ロックは以後のページ生成で変更されません。
package bible

import (
	"math/rand/v2"
	"regexp"

	"github.com/google/uuid"

	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/rules"
)

// InitInput はブック初期化1回分の要求です。
type InitInput struct {
	Pitch        string
	StyleLabel   string
	GenreLabel   string
	AgeBand      string
	AllowAINames bool
	ForceRhyme   bool
	BookSize     string
}

// robotPattern はピッチに「robot」が単語として含まれるかを判定します。
var robotPattern = regexp.MustCompile(`(?i)\brobot\b`)

// defaultPalette は全ブック共通の基本パレットです。
var defaultPalette = []string{"lemon", "lavender", "teal", "sage", "apricot"}

// globalNegatives は全ブック共通の画像禁止事項です。
var globalNegatives = []string{
	"no brand/trademarked characters or logos",
	"no weapons/gore/scary imagery",
	"no color/material changes to locked characters",
	"no photoreal harsh shadows; keep soft, kid-safe",
}

// Build はブック1冊分のセッションを構築します。ブックIDの採番、
// ロスターの確定、StoryBible / ArtBible / アウトラインの生成までを
// 一括で行います。副作用はなく、保存は呼び出し側の責務です。
func Build(in InitInput) *domain.BookSession {
	bookID := uuid.NewString()
	return buildWithID(bookID, in)
}

// buildWithID はテストから決定論的に検証できるよう、ブックIDを
// 外から与えられる形に分離した実体です。
func buildWithID(bookID string, in InitInput) *domain.BookSession {
	styleKey := rules.MapStyleLabel(in.StyleLabel)
	genreKey := rules.MapGenreLabel(in.GenreLabel)
	format := FormatFor(in.BookSize)

	roster := buildRoster(bookID, in.Pitch, in.AllowAINames)

	allowedNames := make([]string, len(roster))
	for i, c := range roster {
		allowedNames[i] = c.DisplayName
	}

	storyBible := domain.StoryBible{
		BookID: bookID,
		WriterPolicy: domain.WriterPolicy{
			Tense:               "past",
			POV:                 "third",
			RhymeDefaultByGenre: rules.RhymeDefaults(),
			BanClicheOpeners:    rules.BanClicheOpeners,
			NamingRules: domain.NamingRules{
				AllowNewNames: false,
				AllowedNames:  allowedNames,
			},
		},
		Characters:  roster,
		SettingHint: in.Pitch,
	}

	artBible := domain.ArtBible{
		BookMeta: domain.BookMeta{
			BookID:     bookID,
			StyleKey:   styleKey,
			GenreKey:   genreKey,
			AgeBand:    in.AgeBand,
			BookFormat: in.BookSize,
			FormatName: format.Name,
			RenderSize: format.RenderSize(),
			MaxPages:   format.Pages,
			Palette:    defaultPalette,
			Camera:     domain.CameraRig{Height: "child-eye", FOV: 35},
			Lighting:   "warm summer key, soft rim",
			Locks: []string{
				"style_key", "palette", "camera", "lighting",
				"characters.core_identity", "characters.costume", "characters.color_material",
			},
		},
		World:           domain.WorldNotes{Locale: "from pitch", Era: "unspecified"},
		Characters:      projectArtCharacters(roster),
		NegativesGlobal: globalNegatives,
		ForceRhyme:      in.ForceRhyme,
	}

	return &domain.BookSession{
		StoryBible: storyBible,
		ArtBible:   artBible,
		Outline:    OutlineFor(format.Pages),
	}
}

// buildRoster はピッチからキャストを確定します。主人公は名前プールから
// 決定論的に1名選び、ピッチが robot に言及していればロック付きの
// ロボットキャラクターを追加します。ロスターはこの時点で固定され、
// 以後キャラクターが増減することはありません。
func buildRoster(bookID, pitch string, allowAINames bool) []domain.Character {
	leadName := "the child"
	if allowAINames {
		leadName = pickLeadName(bookID)
	}

	roster := []domain.Character{
		{
			ID:          "lead",
			DisplayName: leadName,
			Kind:        "human",
			Summary:     "curious child",
			Outfit:      "blue hoodie, jeans, sneakers",
		},
	}

	if robotPattern.MatchString(pitch) {
		robotName := "the robot"
		if allowAINames {
			robotName = "Robo"
		}
		roster = append(roster, domain.Character{
			ID:           "robot1",
			DisplayName:  robotName,
			Kind:         "robot",
			Summary:      "gentle helper",
			Outfit:       "rounded shape, soft blue lights",
			MaterialLock: "brushed aluminum silver",
			ColorLock: &domain.ColorLock{
				Base:    "#C0C0C0",
				Accents: []string{"#6EC1FF"},
				Forbid:  []string{"copper", "bronze", "gold", "black", "rust", "green patina"},
			},
		})
	}

	return roster
}

// pickLeadName はブックIDから導出したシードで PCG を初期化し、
// 名前プールから主人公名を選びます。同じブックIDなら常に同じ名前です。
func pickLeadName(bookID string) string {
	seed := uint64(domain.SeedFromString(bookID))
	r := rand.New(rand.NewPCG(seed, seed))
	return rules.NamePool[r.IntN(len(rules.NamePool))]
}

// projectArtCharacters は StoryBible のロスターをイラスト用の射影に
// 変換します。衣装は固定、参照画像リストは空で初期化されます。
func projectArtCharacters(roster []domain.Character) []domain.ArtCharacter {
	chars := make([]domain.ArtCharacter, len(roster))
	for i, c := range roster {
		primary := c.Outfit
		if primary == "" {
			primary = "—"
		}
		chars[i] = domain.ArtCharacter{
			ID:           c.ID,
			DisplayName:  c.DisplayName,
			Costume:      domain.Costume{Primary: primary, AllowOutfitChange: false},
			CoreIdentity: domain.CoreIdentity{Notes: c.Summary},
			MaterialLock: c.MaterialLock,
			ColorLock:    c.ColorLock,
			Refs:         []string{},
		}
	}
	return chars
}
