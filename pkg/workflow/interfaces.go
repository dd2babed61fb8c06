package workflow

import (
	"context"

	"github.com/shouni/go-storybook-kit/pkg/bible"
	"github.com/shouni/go-storybook-kit/pkg/domain"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/runner"
)

// Workflow は、絵本生成ワークフローの各工程を担当するRunnerを構築するためのインターフェースを定義します。
type Workflow interface {
	BuildBookInitRunner() BookInitRunner
	BuildStoryPageRunner() (StoryPageRunner, error)
	BuildIllustrationRunner() IllustrationRunner
}

// BookInitRunner は、ピッチから Story Bible / Art Bible / アウトラインを
// 確定し、セッションを登録する責務を持ちます。
type BookInitRunner interface {
	Run(ctx context.Context, in bible.InitInput) (*domain.BookSession, error)
}

// StoryPageRunner は、ページ本文の生成・検証・保存までの責務を持ちます。
type StoryPageRunner interface {
	Run(ctx context.Context, req generator.PageRequest) (*generator.PageResult, error)
}

// IllustrationRunner は、ディレクティブ合成と挿絵生成の責務を持ちます。
type IllustrationRunner interface {
	Run(ctx context.Context, req runner.IllustrationRequest) (*runner.IllustrationResult, error)
	RunAll(ctx context.Context, bookID, styleLabel, genreLabel string) ([]*runner.IllustrationResult, error)
}
