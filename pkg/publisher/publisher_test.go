package publisher

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	imgdomain "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-storybook-kit/pkg/adapters"
	"github.com/shouni/go-storybook-kit/pkg/domain"
)

type memoryWriter struct {
	files map[string][]byte
	err   error
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: map[string][]byte{}}
}

func (w *memoryWriter) Write(_ context.Context, path string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	w.files[path] = data
	return nil
}

func testSession() *domain.BookSession {
	return &domain.BookSession{
		StoryBible: domain.StoryBible{BookID: "book-42"},
		Pages: []*domain.Page{
			{Page: 1, Lines: []string{"Maya found a squeaky robot.", "It beeped twice."}, SceneHint: "backyard at noon"},
			nil,
			{Page: 3, Lines: []string{"They fixed the squeak together."}},
		},
	}
}

func testIllustrated() []adapters.IllustratedPage {
	return []adapters.IllustratedPage{
		{Page: 1, Image: &imgdomain.ImageResponse{Data: []byte("png-1"), MimeType: "image/png"}},
		{Page: 3, Image: &imgdomain.ImageResponse{Data: []byte("jpg-3"), MimeType: "image/jpeg"}},
	}
}

func TestBookPublisher(t *testing.T) {
	t.Run("本文と挿絵が書き出されること", func(t *testing.T) {
		w := newMemoryWriter()
		pub := NewBookPublisher(w)

		result, err := pub.Publish(context.Background(), testSession(), testIllustrated(), Options{
			OutputDir: "out",
			Title:     "Maya and the Squeaky Robot",
		})
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		if result.MarkdownPath != filepath.Join("out", "book.md") {
			t.Errorf("MarkdownPath = %q", result.MarkdownPath)
		}
		if len(result.ImagePaths) != 2 {
			t.Fatalf("ImagePaths = %v, want 2 entries", result.ImagePaths)
		}
		if _, ok := w.files[filepath.Join("out", "images", "page_01.png")]; !ok {
			t.Errorf("page_01.png が保存されていません: %v", keys(w.files))
		}
		if _, ok := w.files[filepath.Join("out", "images", "page_03.jpg")]; !ok {
			t.Errorf("page_03.jpg が保存されていません: %v", keys(w.files))
		}
	})

	t.Run("Markdownにタイトルと本文と画像参照が含まれること", func(t *testing.T) {
		w := newMemoryWriter()
		pub := NewBookPublisher(w)

		if _, err := pub.Publish(context.Background(), testSession(), testIllustrated(), Options{
			OutputDir: "out",
			Title:     "Maya and the Squeaky Robot",
		}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		md := string(w.files[filepath.Join("out", "book.md")])
		for _, want := range []string{
			"# Maya and the Squeaky Robot",
			"## Page 1",
			"![Page 1](" + filepath.Join("images", "page_01.png") + ")",
			"Maya found a squeaky robot.",
			"*backyard at noon*",
			"## Page 3",
			"They fixed the squeak together.",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("Markdownに %q が含まれていません:\n%s", want, md)
			}
		}
	})

	t.Run("挿絵のないページはプレースホルダーになること", func(t *testing.T) {
		w := newMemoryWriter()
		pub := NewBookPublisher(w)

		if _, err := pub.Publish(context.Background(), testSession(), nil, Options{OutputDir: "out"}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		md := string(w.files[filepath.Join("out", "book.md")])
		if !strings.Contains(md, "![Page 1](placeholder.png)") {
			t.Errorf("プレースホルダー参照がありません:\n%s", md)
		}
	})

	t.Run("タイトル未指定時はBookIDが使われること", func(t *testing.T) {
		w := newMemoryWriter()
		pub := NewBookPublisher(w)

		if _, err := pub.Publish(context.Background(), testSession(), nil, Options{OutputDir: "out"}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		md := string(w.files[filepath.Join("out", "book.md")])
		if !strings.HasPrefix(md, "# book-42\n") {
			t.Errorf("タイトルがBookIDではありません:\n%s", md)
		}
	})

	t.Run("セッションがnilならエラーになること", func(t *testing.T) {
		pub := NewBookPublisher(newMemoryWriter())
		if _, err := pub.Publish(context.Background(), nil, nil, Options{OutputDir: "out"}); err == nil {
			t.Fatal("nil セッションでエラーになりません")
		}
	})

	t.Run("空データの挿絵はスキップされること", func(t *testing.T) {
		w := newMemoryWriter()
		pub := NewBookPublisher(w)

		illustrated := []adapters.IllustratedPage{
			{Page: 1, Image: &imgdomain.ImageResponse{Data: nil, MimeType: "image/png"}},
		}
		result, err := pub.Publish(context.Background(), testSession(), illustrated, Options{OutputDir: "out"})
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if len(result.ImagePaths) != 0 {
			t.Errorf("空データが保存されています: %v", result.ImagePaths)
		}
	})
}

func keys(m map[string][]byte) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
