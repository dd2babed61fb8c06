package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

const placeholderImage = "placeholder.png"

// MarkdownPublisher は、生成結果を構造化された Markdown 形式で出力する役割を担います。
type MarkdownPublisher struct{}

func NewMarkdownPublisher() *MarkdownPublisher {
	return &MarkdownPublisher{}
}

// BuildBookMarkdown は、絵本のタイトル・保存済み挿絵パス・本文ページを統合して
// 1冊分の Markdown 文字列を生成します。imagePaths はページ番号をキーとした
// 相対パスで、挿絵のないページはプレースホルダーになります。
func (mp *MarkdownPublisher) BuildBookMarkdown(title string, imagePaths map[int]string, pages []*domain.Page) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	for _, page := range pages {
		if page == nil {
			continue
		}

		imagePath := placeholderImage
		if p, ok := imagePaths[page.Page]; ok {
			imagePath = p
		}

		sb.WriteString(fmt.Sprintf("## Page %d\n\n", page.Page))
		sb.WriteString(fmt.Sprintf("![Page %d](%s)\n\n", page.Page, imagePath))

		for _, line := range page.Lines {
			sb.WriteString(strings.TrimSpace(line))
			sb.WriteString("\n\n")
		}

		if page.SceneHint != "" {
			sb.WriteString(fmt.Sprintf("*%s*\n\n", strings.TrimSpace(page.SceneHint)))
		}
	}

	return sb.String()
}
