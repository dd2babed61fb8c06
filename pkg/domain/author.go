package domain

// VisualFocus は1ページの絵として何を主役に据えるかを表す6値の列挙です。
type VisualFocus string

const (
	FocusLeadClose        VisualFocus = "lead_close"
	FocusLeadMedium       VisualFocus = "lead_medium"
	FocusSupportingClose  VisualFocus = "supporting_close"
	FocusGroupWide        VisualFocus = "group_wide"
	FocusEnvironmentEstab VisualFocus = "environment_estab"
	FocusObjectMacro      VisualFocus = "object_macro"
)

// VisualFocusValues は許可される visual_focus の完全な一覧です。
var VisualFocusValues = []VisualFocus{
	FocusLeadClose,
	FocusLeadMedium,
	FocusSupportingClose,
	FocusGroupWide,
	FocusEnvironmentEstab,
	FocusObjectMacro,
}

// Valid は未知のフォーカス値を弾きます。空文字は「未指定」として有効です。
func (f VisualFocus) Valid() bool {
	if f == "" {
		return true
	}
	for _, v := range VisualFocusValues {
		if f == v {
			return true
		}
	}
	return false
}

// AuthorOutput はテキスト生成AIが1ページ分として返すべき構造化出力です。
// validate タグがそのままスキーマ契約になります: page は正の整数、
// lines は2〜4行、visual_focus は6値のいずれか、passes_checks は必須です。
// PassesChecks をポインタにしているのは、JSON 上のフィールド欠落と
// 明示的な false を区別してスキーマ違反として弾くためです。
type AuthorOutput struct {
	Page         int         `json:"page" validate:"required,min=1"`
	Lines        []string    `json:"lines" validate:"required,min=2,max=4,dive,required"`
	SceneHint    string      `json:"scene_hint,omitempty"`
	Mentions     []string    `json:"mentions,omitempty"`
	VisualFocus  VisualFocus `json:"visual_focus,omitempty" validate:"omitempty,oneof=lead_close lead_medium supporting_close group_wide environment_estab object_macro"`
	PassesChecks *bool       `json:"passes_checks" validate:"required"`
}
