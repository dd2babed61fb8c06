package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
	"github.com/shouni/go-storybook-kit/pkg/session"
)

// fakeModel は呼び出しごとに用意した応答を順番に返すテスト用モデルなのだ。
type fakeModel struct {
	responses []string
	prompts   []string
	err       error
}

func (f *fakeModel) Generate(_ context.Context, _ string, userPrompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, userPrompt)
	idx := len(f.prompts) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

const goodResponse = `{"page":1,"lines":["The child waved.","The robot beeped twice."],"scene_hint":"greeting","mentions":["the child","the robot"],"visual_focus":"lead_medium","passes_checks":true}`

// badNameResponse は許可外の名前 Bella を使っているため検証に落ちる。
const badNameResponse = `{"page":1,"lines":["Bella waved.","The robot beeped twice."],"scene_hint":"greeting","mentions":["Bella"],"visual_focus":"lead_medium","passes_checks":true}`

// badOpenerResponse はスキーマは通るが禁止書き出しで始まる。
const badOpenerResponse = `{"page":1,"lines":["Once upon a time the child waved.","The robot beeped twice."],"scene_hint":"greeting","mentions":["the child"],"passes_checks":true}`

func newTestStore(t *testing.T) (*session.Store, string) {
	t.Helper()
	store := session.New(time.Hour, time.Hour)
	sess := bible.Build(bible.InitInput{
		Pitch:      "a squeaky robot friend",
		StyleLabel: "Watercolor",
		GenreLabel: "Fantasy",
		AgeBand:    "6-8",
		BookSize:   "picture-book",
	})
	bookID := sess.StoryBible.BookID
	store.Put(bookID, sess)
	return store, bookID
}

func newTestGenerator(t *testing.T, model TextModel, strict bool) (*PageGenerator, *session.Store, string) {
	t.Helper()
	builder, err := prompts.NewAuthorPromptBuilder()
	if err != nil {
		t.Fatalf("プロンプトビルダーの初期化に失敗しました: %v", err)
	}
	store, bookID := newTestStore(t)
	return NewPageGenerator(model, builder, store, strict), store, bookID
}

func TestPageGeneratorExecute(t *testing.T) {
	t.Run("初回候補が通れば呼び出しは1回だけ", func(t *testing.T) {
		model := &fakeModel{responses: []string{goodResponse}}
		pg, store, bookID := newTestGenerator(t, model, false)

		res, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1, Idea: "a new friend"})
		if err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if len(model.prompts) != 1 {
			t.Errorf("モデル呼び出し回数 = %d, 期待値 1", len(model.prompts))
		}
		if res.Retried {
			t.Error("リトライなしのはずです")
		}
		if !res.Report.OK() {
			t.Errorf("レポートが不合格です: %s", res.Report.Summary())
		}

		// 受理されたページはセッションに保存される
		soFar := store.StorySoFar(bookID)
		if len(soFar) != 1 || soFar[0].Page != 1 {
			t.Errorf("ページが保存されていません: %+v", soFar)
		}
		if soFar[0].SceneHint != "greeting" {
			t.Errorf("scene_hint = %s", soFar[0].SceneHint)
		}
	})

	t.Run("検証落ちは批評付きでちょうど1回リトライすること", func(t *testing.T) {
		model := &fakeModel{responses: []string{badNameResponse, goodResponse}}
		pg, _, bookID := newTestGenerator(t, model, false)

		res, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1, Idea: "a new friend"})
		if err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if len(model.prompts) != 2 {
			t.Fatalf("モデル呼び出し回数 = %d, 期待値 2", len(model.prompts))
		}
		if !res.Retried {
			t.Error("リトライフラグが立っていません")
		}

		// 2回目のプロンプトは元の user プロンプト + CRITIQUE 節
		second := model.prompts[1]
		if !strings.HasPrefix(second, model.prompts[0]) {
			t.Error("リトライプロンプトが元のプロンプトから始まっていません")
		}
		if !strings.Contains(second, "\n\nCRITIQUE:\n") {
			t.Error("CRITIQUE 節がありません")
		}
		if !strings.Contains(second, "You violated one or more constraints") {
			t.Error("違反の要約がありません")
		}
		if !strings.Contains(second, "Bella") {
			t.Error("違反名が批評に含まれていません")
		}
	})

	t.Run("リトライ後も落ちる場合は ValidationError を返すこと", func(t *testing.T) {
		model := &fakeModel{responses: []string{badNameResponse, "not json at all"}}
		pg, store, bookID := newTestGenerator(t, model, false)

		_, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1, Idea: "a new friend"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ValidationError が返りません: %v", err)
		}
		if verr.Raw != "not json at all" {
			t.Errorf("Raw に最後の応答がありません: %s", verr.Raw)
		}
		if store.StorySoFar(bookID) != nil && len(store.StorySoFar(bookID)) != 0 {
			t.Error("不合格ページが保存されています")
		}

		// 最終報告には初回検査の違反詳細とリトライの失敗理由が両方残る
		if len(verr.Report.InvalidNames) != 1 || verr.Report.InvalidNames[0] != "Bella" {
			t.Errorf("初回の違反名が失われています: %v", verr.Report.InvalidNames)
		}
		if verr.Report.ParseDetail == "" {
			t.Error("リトライの解析失敗理由がありません")
		}
		if !strings.Contains(verr.Report.Summary(), "Bella") {
			t.Errorf("detail に違反名が含まれていません: %s", verr.Report.Summary())
		}
	})

	t.Run("既定の再検査はスキーマのみ", func(t *testing.T) {
		// リトライ応答は禁止書き出しを含むが、既定モードでは
		// スキーマだけを再確認するため受理される
		model := &fakeModel{responses: []string{badNameResponse, badOpenerResponse}}
		pg, _, bookID := newTestGenerator(t, model, false)

		res, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1, Idea: "a new friend"})
		if err != nil {
			t.Fatalf("既定モードで受理されるはずです: %v", err)
		}
		if !res.Retried {
			t.Error("リトライフラグが立っていません")
		}
	})

	t.Run("strictRepair では制約も再検査されること", func(t *testing.T) {
		model := &fakeModel{responses: []string{badNameResponse, badOpenerResponse}}
		pg, _, bookID := newTestGenerator(t, model, true)

		_, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1, Idea: "a new friend"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("厳格モードでは ValidationError のはずです: %v", err)
		}
		if !verr.Report.OpenerBad {
			t.Errorf("opener_bad が立っていません: %s", verr.Report.Summary())
		}
	})

	t.Run("未知の book_id は ErrUnknownBook", func(t *testing.T) {
		model := &fakeModel{responses: []string{goodResponse}}
		pg, _, _ := newTestGenerator(t, model, false)

		_, err := pg.Execute(context.Background(), PageRequest{BookID: "nope", Page: 1})
		if !errors.Is(err, ErrUnknownBook) {
			t.Errorf("ErrUnknownBook が返りません: %v", err)
		}
		if len(model.prompts) != 0 {
			t.Error("未知ブックでモデルが呼ばれています")
		}
	})

	t.Run("モデル障害はそのまま伝播すること", func(t *testing.T) {
		wantErr := errors.New("upstream down")
		model := &fakeModel{err: wantErr}
		pg, _, bookID := newTestGenerator(t, model, false)

		_, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1})
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていません: %v", err)
		}
	})

	t.Run("初期化時の forceRhyme はブック既定として効くこと", func(t *testing.T) {
		builder, err := prompts.NewAuthorPromptBuilder()
		if err != nil {
			t.Fatalf("プロンプトビルダーの初期化に失敗しました: %v", err)
		}
		store := session.New(time.Hour, time.Hour)
		sess := bible.Build(bible.InitInput{
			Pitch:      "a squeaky robot friend",
			StyleLabel: "Watercolor",
			GenreLabel: "Fantasy",
			AgeBand:    "6-8",
			BookSize:   "picture-book",
			ForceRhyme: true,
		})
		bookID := sess.StoryBible.BookID
		store.Put(bookID, sess)

		model := &fakeModel{responses: []string{goodResponse}}
		pg := NewPageGenerator(model, builder, store, false)

		// リクエスト側の指定なし → ブック既定が昇格して韻あり
		if _, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 1}); err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if !strings.Contains(model.prompts[0], "RHYME: true") {
			t.Error("ブック既定の forceRhyme が反映されていません")
		}

		// リクエスト側の明示指定は常に優先される
		off := false
		if _, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 2, ForceRhyme: &off}); err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		if !strings.Contains(model.prompts[1], "RHYME: false") {
			t.Error("明示指定がブック既定に負けています")
		}
	})

	t.Run("user プロンプトに文脈が揃っていること", func(t *testing.T) {
		model := &fakeModel{responses: []string{goodResponse}}
		pg, store, bookID := newTestGenerator(t, model, false)

		// 既存ページを1枚積んでおくと STORY SO FAR に現れる
		store.PushPage(bookID, 1, []string{"The child found a robot."}, "discovery")

		if _, err := pg.Execute(context.Background(), PageRequest{BookID: bookID, Page: 2, Idea: "fixing the squeak"}); err != nil {
			t.Fatalf("生成に失敗しました: %v", err)
		}
		prompt := model.prompts[0]
		for _, want := range []string{
			"ALLOWED NAMES: the child, the robot",
			"PAGE: 2",
			"CURRENT IDEA: fixing the squeak",
			"The child found a robot.",
			"BEAT GUIDANCE (page 2):",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("user プロンプトに %q がありません", want)
			}
		}
	})
}
