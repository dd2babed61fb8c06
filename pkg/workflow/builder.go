// Package workflow はワークフローの各工程を担う Runner 群を構築・管理します。
package workflow

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	imageKit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/adapters"
	"github.com/shouni/go-storybook-kit/pkg/generator"
	"github.com/shouni/go-storybook-kit/pkg/prompts"
	"github.com/shouni/go-storybook-kit/pkg/runner"
	"github.com/shouni/go-storybook-kit/pkg/session"
)

// Builder はワークフローの各工程を担う Runner 群を構築・管理するのだ。
// セッションストアと AI クライアントはここで一度だけ初期化され、
// 全 Runner で共有されます。
type Builder struct {
	cfg      *config.Config
	store    *session.Store
	aiClient gemini.GenerativeModel
	imgGen   adapters.ImageAdapter
	limiter  *rate.Limiter
}

// NewBuilder は Config を基に新しい Builder を作成するのだ。
func NewBuilder(ctx context.Context, cfg *config.Config) (*Builder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg は必須です")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY は必須です")
	}

	aiClient, err := initializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	imgGen, err := initializeImageGenerator(cfg, aiClient)
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:      cfg,
		store:    session.New(cfg.SessionTTL, cfg.CleanupInterval),
		aiClient: aiClient,
		imgGen:   imgGen,
		limiter:  rate.NewLimiter(rate.Every(cfg.RateInterval), 2),
	}, nil
}

// Store は全 Runner が共有するセッションストアを返します。
func (b *Builder) Store() *session.Store {
	return b.store
}

// BuildBookInitRunner はブック初期化を担当する Runner を作成するのだ。
func (b *Builder) BuildBookInitRunner() BookInitRunner {
	return runner.NewBookInitRunner(b.store)
}

// BuildStoryPageRunner はページ本文生成を担当する Runner を作成するのだ。
func (b *Builder) BuildStoryPageRunner() (StoryPageRunner, error) {
	pb, err := prompts.NewAuthorPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの作成に失敗しました: %w", err)
	}

	model := &textModel{client: b.aiClient, model: b.cfg.GeminiModel}
	pages := generator.NewPageGenerator(model, pb, b.store, b.cfg.StrictRepair)

	return runner.NewStoryPageRunner(pages), nil
}

// BuildIllustrationRunner は挿絵生成を担当する Runner を作成するのだ。
func (b *Builder) BuildIllustrationRunner() IllustrationRunner {
	return runner.NewIllustrationRunner(b.imgGen, b.store, b.limiter)
}

// BuildBookPipeline は1冊まるごとの挿絵生成パイプラインを作成するのだ。
func (b *Builder) BuildBookPipeline() *adapters.BookIllustrationPipeline {
	return adapters.NewBookIllustrationPipeline(b.imgGen)
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializeImageGenerator は、画像キャッシュを含む画像生成エンジンを初期化します。
func initializeImageGenerator(cfg *config.Config, aiClient gemini.GenerativeModel) (adapters.ImageAdapter, error) {
	httpClient := httpkit.New(cfg.HTTPTimeout)
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)

	core, err := imageKit.NewGeminiImageCore(httpClient, imgCache, defaultTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imageKit.NewGeminiGenerator(core, aiClient, cfg.GeminiImageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return imgGen, nil
}
