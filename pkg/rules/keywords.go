package rules

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b[a-z']{3,}\b`)

// stopWords はシーン要約から除外する機能語です。
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "from": {}, "into": {}, "then": {},
	"that": {}, "this": {}, "they": {}, "were": {}, "went": {}, "there": {},
	"said": {}, "very": {}, "really": {}, "just": {},
}

// maxKeywords は抽出するキーワードの上限です。
const maxKeywords = 22

// ExtractKeywords は本文行からシーンを特徴づける単語を重複なく抽出します。
// 3文字以上の単語のみを対象に、機能語を除いて最大22語まで返します。
func ExtractKeywords(lines []string) []string {
	text := strings.ToLower(strings.Join(lines, " "))
	seen := make(map[string]struct{})
	var keywords []string
	for _, w := range wordPattern.FindAllString(text, -1) {
		if _, skip := stopWords[w]; skip {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}
