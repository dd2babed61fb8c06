// Package prompts は作家プロンプトの組み立てを担います。
// テンプレート本体は go:embed で取り込み、text/template で描画します。
package prompts

import (
	_ "embed"
)

const (
	ModeAuthorSystem = "author_system"
	ModeAuthorUser   = "author_user"
)

// AuthorData は作家プロンプトのテンプレートに渡すデータ構造です。
// JSON 系のフィールドは呼び出し側で整形済みの文字列を受け取ります。
type AuthorData struct {
	AllowedNames   string
	AgeBand        string
	Rhyme          bool
	Page           int
	Idea           string
	BeatPage       int
	BeatJSON       string
	StorySoFarJSON string
	StoryBibleJSON string
	BannedOpeners  string
}

var (
	//go:embed author_system.md
	authorSystemPrompt string
	//go:embed author_user.md
	authorUserPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeAuthorSystem: authorSystemPrompt,
	ModeAuthorUser:   authorUserPrompt,
}
