package rules

import "strings"

// labelRule はラベル推定の1ルールです。ラベル文字列が Contains の
// いずれかを含めば Key を採用します。ルールは上から順に評価され、
// 最初に一致したものが勝ちます。
type labelRule struct {
	Contains []string
	Key      string
}

// styleLabelRules は画風ラベル → キーの推定ルール表です。
var styleLabelRules = []labelRule{
	{Contains: []string{"disney", "pixar", "3d"}, Key: "cinematic_3d_family"},
	{Contains: []string{"manga"}, Key: "manga_bw"},
	{Contains: []string{"anime"}, Key: "anime_tv"},
	{Contains: []string{"watercolor", "classic"}, Key: "watercolor_storybook"},
	{Contains: []string{"cartoon"}, Key: "cartoony_cutout"},
	{Contains: []string{"comic"}, Key: "comic_color"},
	{Contains: []string{"fairy"}, Key: "storybook_ornate"},
	{Contains: []string{"modern"}, Key: "flat_minimal"},
	{Contains: []string{"pop"}, Key: "pop_halftone"},
	{Contains: []string{"vintage"}, Key: "vintage_print"},
}

// genreLabelRules はジャンルラベル → キーの推定ルール表です。
var genreLabelRules = []labelRule{
	{Contains: []string{"fantasy"}, Key: "fantasy"},
	{Contains: []string{"adventure"}, Key: "adventure"},
	{Contains: []string{"space"}, Key: "space"},
	{Contains: []string{"friend"}, Key: "friendship"},
	{Contains: []string{"animal"}, Key: "animals"},
	{Contains: []string{"mystery"}, Key: "mystery"},
	{Contains: []string{"educ"}, Key: "educational"},
	{Contains: []string{"bed"}, Key: "bedtime"},
}

// DefaultStyleKey / DefaultGenreKey は未知ラベルのフォールバック先です。
const (
	DefaultStyleKey = "watercolor_storybook"
	DefaultGenreKey = "fantasy"
)

func resolveLabel(label string, table []labelRule, fallback string) string {
	t := strings.ToLower(label)
	for _, rule := range table {
		for _, sub := range rule.Contains {
			if strings.Contains(t, sub) {
				return rule.Key
			}
		}
	}
	return fallback
}

// MapStyleLabel は UI 表示用の画風ラベルを内部キーに解決します。
// この関数は全域的です: どんな入力でも必ず固定キー集合のどれかを返します。
func MapStyleLabel(label string) string {
	return resolveLabel(label, styleLabelRules, DefaultStyleKey)
}

// MapGenreLabel は UI 表示用のジャンルラベルを内部キーに解決します。
// MapStyleLabel と同様に全域的です。
func MapGenreLabel(label string) string {
	return resolveLabel(label, genreLabelRules, DefaultGenreKey)
}
