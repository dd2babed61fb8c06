package bible

import "github.com/shouni/go-storybook-kit/pkg/domain"

// outlineTemplates はページ数ごとの物語構成テンプレートです。
// 3ページはボードブックの単純3拍、5ページは古典的な5幕構成、
// 8ページはチャプターブックの拡張アークです。
var outlineTemplates = map[int][]domain.Beat{
	3: {
		{Page: 1, Title: "Problem", Setting: "where it starts", Goal: "meet character", Turn: "something wrong"},
		{Page: 2, Title: "Try", Setting: "action taken", Goal: "solve problem", Turn: "almost works"},
		{Page: 3, Title: "Success", Setting: "happy ending", Goal: "lesson learned", Turn: "all better"},
	},
	5: {
		{Page: 1, Title: "Setup", Setting: "where it starts", Goal: "meet cast", Turn: "inciting oddity"},
		{Page: 2, Title: "Escalation", Setting: "first location change", Goal: "investigate", Turn: "small setback"},
		{Page: 3, Title: "Complication", Setting: "crowds/pressure", Goal: "try again", Turn: "bigger problem"},
		{Page: 4, Title: "Turning Point", Setting: "close to answer", Goal: "choose kindness", Turn: "plan forms"},
		{Page: 5, Title: "Resolution", Setting: "calm after", Goal: "lesson learned", Turn: "community together"},
	},
	8: {
		{Page: 1, Title: "Introduction", Setting: "ordinary world", Goal: "meet hero", Turn: "call to adventure"},
		{Page: 2, Title: "Departure", Setting: "leaving home", Goal: "start journey", Turn: "first challenge"},
		{Page: 3, Title: "Challenge", Setting: "new place", Goal: "overcome obstacle", Turn: "meets ally"},
		{Page: 4, Title: "Growth", Setting: "deeper journey", Goal: "learn skill", Turn: "bigger test"},
		{Page: 5, Title: "Crisis", Setting: "darkest moment", Goal: "face fear", Turn: "seems lost"},
		{Page: 6, Title: "Breakthrough", Setting: "inner strength", Goal: "find courage", Turn: "new plan"},
		{Page: 7, Title: "Climax", Setting: "final battle", Goal: "save day", Turn: "victory"},
		{Page: 8, Title: "Return", Setting: "back home", Goal: "share wisdom", Turn: "transformed"},
	},
}

// OutlineFor はページ数に対応するアウトラインのコピーを返します。
// 対応するテンプレートがない場合は5幕構成にフォールバックします。
func OutlineFor(pages int) []domain.Beat {
	tmpl, ok := outlineTemplates[pages]
	if !ok {
		tmpl = outlineTemplates[5]
	}
	outline := make([]domain.Beat, len(tmpl))
	copy(outline, tmpl)
	return outline
}
