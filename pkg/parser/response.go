// Package parser はテキスト生成AIの生応答から構造化出力を取り出します。
// AIの応答は JSON 単体とは限らず、前置きの文章やコードフェンスに
// 包まれてくることがあるため、寛容に剥がしてからデコードします。
// 失敗しても panic やエラー伝播はせず、理由付きの ParseError として
// 返します。どのケースで失敗したかは診断のために必ず保存されます。
package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ParseError は応答の解読失敗を表します。スキーマ検証の前段で起きた
// 失敗であり、オーケストレーターはこれをスキーマ違反と同列に扱って
// 修正リトライへ回します。
type ParseError struct {
	Reason string // 失敗の分類（診断用に保持）
	Raw    string // 元の応答（抜粋ではなく全文）
}

func (e *ParseError) Error() string {
	return "AI応答の解析に失敗しました: " + e.Reason
}

// ExtractObject は生応答から最初のバランスした JSON オブジェクト文字列を
// 取り出します。優先順: コードフェンス内 → 裸のオブジェクト → 全文。
func ExtractObject(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	if m := jsonBlockRegex.FindStringSubmatch(raw); len(m) > 1 {
		raw = strings.TrimSpace(m[1])
	}

	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}

	// ブレースの対応を文字列リテラルとエスケープを考慮して数える
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// 文字列内のブレースは構造に関与しない
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseAuthorOutput は生応答を AuthorOutput にデコードします。
// オブジェクトが見つからない、または JSON として壊れている場合は
// ParseError を返します。スキーマ上の妥当性はここでは検証しません。
func ParseAuthorOutput(raw string) (*domain.AuthorOutput, *ParseError) {
	objText, ok := ExtractObject(raw)
	if !ok {
		return nil, &ParseError{Reason: "応答に JSON オブジェクトが見つかりません", Raw: raw}
	}

	var out domain.AuthorOutput
	if err := json.Unmarshal([]byte(objText), &out); err != nil {
		return nil, &ParseError{Reason: "JSON のデコードに失敗しました: " + err.Error(), Raw: raw}
	}
	return &out, nil
}
