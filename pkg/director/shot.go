// Package director はページごとのカメラ演出（ショットプラン）を担います。
// どのページをどう切り取るかを決定論的に選び、画像生成プロンプトに
// 流し込める自然言語の指示に描画します。隠れた乱数はなく、同じ入力には
// 常に同じプランを返します。
package director

import (
	"regexp"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Recipe はカメラレシピ1件分です。Include / Exclude は被写体タグで、
// 描画時に主人公名・サポート名へ展開されます。
type Recipe struct {
	Frame    string
	Angle    string
	Comp     string
	Include  []string
	Exclude  []string
	Portrait bool
}

// ShotPlan は解決済みのショットプランです。リクエストごとに計算される
// 一時データで、永続化はされません。
type ShotPlan struct {
	Focus    domain.VisualFocus
	Frame    string
	Angle    string
	Comp     string
	Include  []string
	Exclude  []string
	Portrait bool
	// Inferred はフォーカスが本文からの推定で決まったことを示します。
	Inferred bool
}

// recipes は visual_focus → カメラレシピの固定表です。
var recipes = map[domain.VisualFocus]Recipe{
	domain.FocusLeadClose:        {Frame: "close-up", Angle: "eye-level", Comp: "rule of thirds", Include: []string{"lead"}, Portrait: true},
	domain.FocusLeadMedium:       {Frame: "medium", Angle: "eye-level", Comp: "rule of thirds", Include: []string{"lead"}},
	domain.FocusSupportingClose:  {Frame: "close-up", Angle: "eye-level", Comp: "clean headroom", Include: []string{"support"}, Portrait: true},
	domain.FocusGroupWide:        {Frame: "wide", Angle: "eye-level", Comp: "balanced crowd", Include: []string{"group"}, Exclude: []string{"lead?"}},
	domain.FocusEnvironmentEstab: {Frame: "wide", Angle: "slight high", Comp: "leading lines", Include: []string{"environment"}, Exclude: []string{"lead?"}},
	domain.FocusObjectMacro:      {Frame: "macro", Angle: "eye-level", Comp: "center hero", Include: []string{"object"}, Exclude: []string{"portraits"}},
}

// inferRule はフォーカス推定の1段です。パターンは結合した本文に対して
// 評価され、上から順に最初に一致した段が勝ちます。
type inferRule struct {
	Pattern *regexp.Regexp
	Focus   domain.VisualFocus
}

// inferRules は固定の優先順です: 群衆 → 場所 → 小物 → 感情。
// どれにも当たらなければ lead_medium に落ちます。
var inferRules = []inferRule{
	{regexp.MustCompile(`(?i)\b(crowd|neighbors|people|audience|gather|parade|lines?)\b`), domain.FocusGroupWide},
	{regexp.MustCompile(`(?i)\b(street|yard|park|city|forest|beach|classroom|house|window)\b`), domain.FocusEnvironmentEstab},
	{regexp.MustCompile(`(?i)\b(brush|sandwich|map|toy|nugget|treasure|letter|nest)\b`), domain.FocusObjectMacro},
	{regexp.MustCompile(`(?i)\b(whisper|thought|feels?|face|tears?|smile|wink)\b`), domain.FocusLeadClose},
}

// DefaultFocus は推定が空振りしたときのフォールバックです。
const DefaultFocus = domain.FocusLeadMedium

// InferFocus は本文行からフォーカスを推定します。
func InferFocus(lines []string) domain.VisualFocus {
	text := joinLines(lines)
	for _, rule := range inferRules {
		if rule.Pattern.MatchString(text) {
			return rule.Focus
		}
	}
	return DefaultFocus
}

func joinLines(lines []string) string {
	text := ""
	for i, ln := range lines {
		if i > 0 {
			text += " "
		}
		text += ln
	}
	return text
}

// Plan はページ1枚分のショットプランを解決します。explicitFocus が
// 与えられていればそれをレシピ表の検索キーとしてそのまま使い、
// なければ本文から推定します。
//
// フレームの交互化はフォーカスが推定だった場合にのみ適用されます:
// page%4==1 なら wide、page%4==2 なら close-up を強制します。これは
// 同じフレーミングのページが単調に続くのを避けるための損失ありの
// 補正で、レシピのフレーム以外のフィールドは保たれます。
func Plan(lines []string, explicitFocus domain.VisualFocus, page int) ShotPlan {
	focus := explicitFocus
	inferred := false
	if focus == "" {
		focus = InferFocus(lines)
		inferred = true
	}

	base, ok := recipes[focus]
	if !ok {
		base = recipes[DefaultFocus]
	}

	plan := ShotPlan{
		Focus:    focus,
		Frame:    base.Frame,
		Angle:    base.Angle,
		Comp:     base.Comp,
		Include:  base.Include,
		Exclude:  base.Exclude,
		Portrait: base.Portrait,
		Inferred: inferred,
	}

	if inferred {
		switch {
		case page%4 == 1 && plan.Frame != "wide":
			plan.Frame = "wide"
		case page%4 == 2 && plan.Frame != "close-up":
			plan.Frame = "close-up"
		}
	}

	return plan
}
