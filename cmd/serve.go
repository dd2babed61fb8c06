package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/internal/server"
	"github.com/shouni/go-storybook-kit/pkg/workflow"

	"github.com/spf13/cobra"
)

// serveCmd は、絵本生成APIサーバを起動するコマンドなのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "絵本生成のREST APIサーバを起動するのだ。",
	Long:  "ブック初期化・本文生成・挿絵生成のエンドポイントを提供するHTTPサーバを起動するのだ。",
	RunE:  runServeCmd,
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	applyFlagOverrides(cfg)

	builder, err := workflow.NewBuilder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ワークフロービルダーの初期化に失敗しました: %w", err)
	}

	storyRunner, err := builder.BuildStoryPageRunner()
	if err != nil {
		return fmt.Errorf("本文生成ランナーの構築に失敗しました: %w", err)
	}

	srv := server.New(
		cfg,
		builder.BuildBookInitRunner(),
		storyRunner,
		builder.BuildIllustrationRunner(),
	)

	slog.Info("APIサーバを起動するのだ", "addr", cfg.ListenAddr)
	return srv.Run(ctx)
}
