package bible

import "fmt"

// BookFormat は判型1種の定義です。ページ数がアウトラインの長さを決めます。
type BookFormat struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
	Pages  int    `json:"pages"`
}

// DefaultBookSize は未知の判型指定のフォールバック先です。
const DefaultBookSize = "picture-book"

// bookFormats は提供する判型の一覧です。
var bookFormats = map[string]BookFormat{
	"picture-book": {
		Width: 1600, Height: 1200,
		Name:  "Picture Book (8.5×11)",
		Pages: 5,
	},
	"square-book": {
		Width: 1200, Height: 1200,
		Name:  "Square Book (8×8)",
		Pages: 5,
	},
	"board-book": {
		Width: 1000, Height: 1000,
		Name:  "Board Book (6×6)",
		Pages: 3,
	},
	"chapter-book": {
		Width: 900, Height: 1200,
		Name:  "Chapter Book (6×8)",
		Pages: 8,
	},
}

// FormatFor は判型キーを解決します。未知のキーは picture-book に
// フォールバックします。
func FormatFor(bookSize string) BookFormat {
	if f, ok := bookFormats[bookSize]; ok {
		return f
	}
	return bookFormats[DefaultBookSize]
}

// RenderSize は "1600x1200" 形式の描画サイズ文字列を返します。
func (f BookFormat) RenderSize() string {
	return fmt.Sprintf("%dx%d", f.Width, f.Height)
}

// AspectRatio は "4:3" 形式の縦横比文字列を返します。画像生成リクエストの
// AspectRatio フィールドにそのまま渡せます。
func (f BookFormat) AspectRatio() string {
	d := gcd(f.Width, f.Height)
	if d == 0 {
		return "1:1"
	}
	return fmt.Sprintf("%d:%d", f.Width/d, f.Height/d)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
