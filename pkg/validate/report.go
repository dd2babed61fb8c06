package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// Report は候補ページ1件に対する検証結果の集約です。三つの制約検査は
// 互いに独立して無条件に実行されるため、修正リトライの批評文は
// 全違反を一度に列挙できます。
type Report struct {
	SchemaOK     bool          `json:"schema_ok"`
	SchemaDetail string        `json:"schema_detail,omitempty"`
	ParseDetail  string        `json:"parse_detail,omitempty"`
	InvalidNames []string      `json:"invalid_names"`
	ColorHit     *ForbiddenHit `json:"color_hit"`
	OpenerBad    bool          `json:"opener_bad"`
}

// OK は候補がそのまま受理できる状態かを返します。
func (r *Report) OK() bool {
	return r.SchemaOK && len(r.InvalidNames) == 0 && r.ColorHit == nil && !r.OpenerBad
}

// Summary は違反内容の機械可読な要約（JSON）を返します。
// 失敗応答の detail フィールドにそのまま載ります。
func (r *Report) Summary() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("schema_ok=%v invalid_names=%v opener_bad=%v", r.SchemaOK, r.InvalidNames, r.OpenerBad)
	}
	return string(b)
}

// Evaluate は候補ページを検証し Report を返します。スキーマが通った
// 場合のみ制約検査（名前・禁止色・オープナー）を実行します。制約検査は
// 三つとも独立に走ります。
func Evaluate(out *domain.AuthorOutput, bible *domain.StoryBible) *Report {
	report := &Report{InvalidNames: []string{}}

	if err := Schema(out); err != nil {
		report.SchemaDetail = err.Error()
		return report
	}
	report.SchemaOK = true

	allowed := bible.WriterPolicy.NamingRules.AllowedNames
	report.InvalidNames = InvalidNames(out.Mentions, allowed)
	if report.InvalidNames == nil {
		report.InvalidNames = []string{}
	}
	report.ColorHit = ForbiddenColors(out.Lines, bible)
	if len(out.Lines) > 0 {
		report.OpenerBad = BadOpener(out.Lines[0], bible.WriterPolicy.BanClicheOpeners)
	}
	return report
}

// Critique は修正リトライのためにAIへ返す批評文を構成します。
// 違反の要約と、守るべきルールの再掲を含みます。
func (r *Report) Critique(page int, allowed []string) string {
	var sb strings.Builder
	sb.WriteString("You violated one or more constraints: ")
	sb.WriteString(r.Summary())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Please FIX and re-output STRICT JSON for PAGE %d.\n", page))
	sb.WriteString(fmt.Sprintf("- Use only allowed names: %s\n", strings.Join(allowed, ", ")))
	sb.WriteString("- Do not mention forbidden colors/materials for locked characters.\n")
	sb.WriteString("- Do not use banned openers. Maintain continuity with STORY SO FAR.\n")
	sb.WriteString("Return JSON only.")
	return sb.String()
}
