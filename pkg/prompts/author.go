package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// AuthorInput は作家プロンプト1組（system / user）を組み立てるための
// 入力です。Beat が nil の場合、ビート指示は "n/a" として描画されます。
type AuthorInput struct {
	AllowedNames []string
	AgeBand      string
	Rhyme        bool
	Page         int
	Idea         string
	Beat         *domain.Beat
	StorySoFar   []domain.PageSummary
	StoryBible   *domain.StoryBible
}

// ResolveRhyme は韻の最終判定を行います。明示指定（force）があれば常に
// それが勝ち、なければジャンル別デフォルト表を引きます。
func ResolveRhyme(genreKey string, force *bool, defaults map[string]bool) bool {
	if force != nil {
		return *force
	}
	return defaults[genreKey]
}

// BuildAuthor は system / user の2つのプロンプトをまとめて描画します。
// Story Bible と STORY SO FAR はそのまま JSON として埋め込み、モデルに
// 全文脈を渡します。
func (b *AuthorPromptBuilder) BuildAuthor(in AuthorInput) (system, user string, err error) {
	data, err := toAuthorData(in)
	if err != nil {
		return "", "", err
	}

	system, err = b.Build(ModeAuthorSystem, data)
	if err != nil {
		return "", "", err
	}
	user, err = b.Build(ModeAuthorUser, data)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

func toAuthorData(in AuthorInput) (AuthorData, error) {
	beatPage := in.Page
	beatJSON := "n/a"
	if in.Beat != nil {
		if in.Beat.Page > 0 {
			beatPage = in.Beat.Page
		}
		raw, err := json.Marshal(in.Beat)
		if err != nil {
			return AuthorData{}, fmt.Errorf("ビート指示の JSON 化に失敗しました: %w", err)
		}
		beatJSON = string(raw)
	}

	soFar := in.StorySoFar
	if soFar == nil {
		soFar = []domain.PageSummary{}
	}
	soFarJSON, err := json.Marshal(soFar)
	if err != nil {
		return AuthorData{}, fmt.Errorf("STORY SO FAR の JSON 化に失敗しました: %w", err)
	}

	bibleJSON, err := json.Marshal(in.StoryBible)
	if err != nil {
		return AuthorData{}, fmt.Errorf("Story Bible の JSON 化に失敗しました: %w", err)
	}

	var openers []string
	if in.StoryBible != nil {
		openers = in.StoryBible.WriterPolicy.BanClicheOpeners
	}

	return AuthorData{
		AllowedNames:   strings.Join(in.AllowedNames, ", "),
		AgeBand:        in.AgeBand,
		Rhyme:          in.Rhyme,
		Page:           in.Page,
		Idea:           in.Idea,
		BeatPage:       beatPage,
		BeatJSON:       beatJSON,
		StorySoFarJSON: string(soFarJSON),
		StoryBibleJSON: string(bibleJSON),
		BannedOpeners:  strings.Join(openers, "; "),
	}, nil
}
