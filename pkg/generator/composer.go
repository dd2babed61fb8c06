package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/director"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/rules"
)

// MaxPromptLength は画像プロンプトの上限文字数です。超過分は
// 末尾から切り詰められます。
const MaxPromptLength = 1024

// Directive は画像生成AIに渡す指示一式です。プロンプト・ネガティブ
// プロンプト・決定論的シードのほか、デバッグ用にショット解決の
// 内訳も返します。
type Directive struct {
	Page           int                `json:"page"`
	StyleKey       string             `json:"style_key"`
	GenreKey       string             `json:"genre_key"`
	Prompt         string             `json:"prompt"`
	NegativePrompt string             `json:"negative_prompt"`
	Seed           int64              `json:"seed"`
	FocusUsed      domain.VisualFocus `json:"visual_focus_used"`
	RenderSize     string             `json:"render_size"`
	Keywords       []string           `json:"keywords,omitempty"`
	LockLines      []string           `json:"lock_lines,omitempty"`
}

// DirectiveRequest はディレクティブ合成の入力です。StyleLabel /
// GenreLabel は UI の自由ラベルのままでよく、内部キーへの解決は
// 合成側が行います。
type DirectiveRequest struct {
	Page        int
	Lines       []string
	StyleLabel  string
	GenreLabel  string
	VisualFocus domain.VisualFocus
}

// Compose は Art Bible とリクエストから画像ディレクティブを合成します。
// 純粋関数であり、同じ入力には常に同じディレクティブを返します。
func Compose(bible *domain.ArtBible, req DirectiveRequest) Directive {
	style := rules.StyleByKey(rules.MapStyleLabel(req.StyleLabel))
	genre := rules.GenreByKey(rules.MapGenreLabel(req.GenreLabel))

	shot := director.Plan(req.Lines, req.VisualFocus, req.Page)
	rendered := director.Render(shot, bible.LeadName(), bible.SupportNames())

	prompt := composePrompt(style, rendered.PlanLine, req.Lines, bible)
	negative := composeNegatives(style, bible, rendered.Negatives)

	return Directive{
		Page:           req.Page,
		StyleKey:       style.Key,
		GenreKey:       genre.Key,
		Prompt:         prompt,
		NegativePrompt: negative,
		Seed:           domain.ShotSeed(bible.BookMeta.BookID, req.Page, shot.Focus),
		FocusUsed:      shot.Focus,
		RenderSize:     bible.BookMeta.RenderSize,
		Keywords:       rules.ExtractKeywords(req.Lines),
		LockLines:      lockLines(bible.Characters),
	}
}

// composePrompt はパイプ区切りの本体プロンプトを組み立てます。
// 構成は スタイル基調 | ショット指示 | SCENE | CHARS | PALETTE の
// 5区画固定で、全体を MaxPromptLength に収めます。
func composePrompt(style rules.Style, planLine string, lines []string, bible *domain.ArtBible) string {
	var shortLocks []string
	for _, c := range bible.Characters {
		primary := c.Costume.Primary
		if primary == "" {
			primary = "consistent"
		}
		shortLocks = append(shortLocks, fmt.Sprintf("%s: %s", displayName(c), primary))
	}

	palette := bible.BookMeta.Palette
	if len(palette) > 3 {
		palette = palette[:3]
	}

	prompt := strings.Join([]string{
		style.Base,
		planLine,
		"SCENE: " + strings.TrimSpace(strings.Join(lines, " ")),
		"CHARS: " + strings.Join(shortLocks, ", "),
		"PALETTE: " + strings.Join(palette, ", "),
	}, " | ")

	if len(prompt) > MaxPromptLength {
		prompt = prompt[:MaxPromptLength]
	}
	return prompt
}

// composeNegatives はスタイル・Art Bible・キャラクターロック・ショット
// 由来のネガティブ指示を重複なく合流させます。末尾の2つの固定句は
// 常に付きます。
func composeNegatives(style rules.Style, bible *domain.ArtBible, shotNegatives []string) string {
	var parts []string
	seen := make(map[string]struct{})
	add := func(items ...string) {
		for _, it := range items {
			if it == "" {
				continue
			}
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			parts = append(parts, it)
		}
	}

	add(style.Negatives...)
	add(bible.NegativesGlobal...)
	for _, c := range bible.Characters {
		name := displayName(c)
		if c.ColorLock != nil && len(c.ColorLock.Forbid) > 0 {
			for _, f := range c.ColorLock.Forbid {
				add(fmt.Sprintf("no %s on %s", f, name))
			}
			add(fmt.Sprintf("no color shift on %s", name))
		}
		if c.MaterialLock != "" {
			add(fmt.Sprintf("do not change %s material from %s", name, c.MaterialLock))
		}
	}
	add(shotNegatives...)
	add(
		"no brand logos; no watermark; no extreme film grain",
		"no outfit changes; no hair color/length changes; keep proportions consistent",
	)

	return strings.Join(parts, "; ")
}

// lockLines はキャラクターごとの同一性ロックを文章化します。画像指示の
// 本文には載せず、応答のデバッグ情報として返します。
func lockLines(chars []domain.ArtCharacter) []string {
	var out []string
	for _, c := range chars {
		name := displayName(c)
		out = append(out, fmt.Sprintf("Character %q (id:%s) -- keep identity and proportions consistent.", name, c.ID))
		if c.Costume.Primary != "" {
			out = append(out, fmt.Sprintf("Outfit: %s (do not change).", c.Costume.Primary))
		}
		if c.MaterialLock != "" {
			out = append(out, fmt.Sprintf("Material lock: %s (do not change).", c.MaterialLock))
		}
		if c.ColorLock != nil && c.ColorLock.Base != "" {
			line := fmt.Sprintf("Color lock: base %s", c.ColorLock.Base)
			if len(c.ColorLock.Accents) > 0 {
				line += fmt.Sprintf(", accents %s", strings.Join(c.ColorLock.Accents, "/"))
			}
			out = append(out, line+" (do not change).")
		}
	}
	return out
}

func displayName(c domain.ArtCharacter) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.ID
}
