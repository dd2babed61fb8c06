package validate

import (
	"regexp"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// ForbiddenHit は禁止語の検出結果です。最初に検出した
// キャラクター/行の組だけを報告します。
type ForbiddenHit struct {
	Character string `json:"character"`
	Line      string `json:"line"`
}

// InvalidNames は mentions のうちホワイトリストにない名前をすべて
// 集めて返します。真偽値ではなくリストで返すのは、修正リトライの
// 批評文で全違反を一度に列挙するためです。
func InvalidNames(mentions, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, n := range allowed {
		allowedSet[n] = struct{}{}
	}
	var invalid []string
	for _, n := range mentions {
		if _, ok := allowedSet[n]; !ok {
			invalid = append(invalid, n)
		}
	}
	return invalid
}

// ForbiddenColors は色ロック付きキャラクターの禁止語が本文行に
// 単語として現れていないかを検査します。照合は大文字小文字を無視した
// 単語境界一致です。部分文字列（copper を含む coppersmith など）は
// 検出しません。
func ForbiddenColors(lines []string, bible *domain.StoryBible) *ForbiddenHit {
	for _, c := range bible.LockedCharacters() {
		if c.ColorLock == nil || len(c.ColorLock.Forbid) == 0 {
			continue
		}
		rx := forbidPattern(c.ColorLock.Forbid)
		for _, ln := range lines {
			if rx.MatchString(ln) {
				return &ForbiddenHit{Character: c.ID, Line: ln}
			}
		}
	}
	return nil
}

// forbidPattern は禁止語リストから単語境界付きの選択パターンを組みます。
func forbidPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// BadOpener は1行目が禁止された常套句で始まっていないかを検査します。
// 行は小文字化してから前後の空白を落とし、前方一致で照合します。
func BadOpener(firstLine string, banned []string) bool {
	s := strings.TrimSpace(strings.ToLower(firstLine))
	for _, opener := range banned {
		if strings.HasPrefix(s, opener) {
			return true
		}
	}
	return false
}
