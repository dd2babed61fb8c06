// Package server は絵本生成APIのHTTPサーバを提供します。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shouni/go-storybook-kit/internal/config"
	"github.com/shouni/go-storybook-kit/pkg/workflow"
)

// Server は gin エンジンと各工程の Runner を束ねます。
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
}

// New はルーティングとミドルウェアを構成済みのサーバを作成します。
func New(cfg *config.Config, initRunner workflow.BookInitRunner, storyRunner workflow.StoryPageRunner, illusRunner workflow.IllustrationRunner) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	h := &handlers{
		initRunner:  initRunner,
		storyRunner: storyRunner,
		illusRunner: illusRunner,
	}
	h.register(engine)

	return &Server{cfg: cfg, engine: engine}
}

// Engine はテスト用にルータを公開します。
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run はHTTPサーバを起動し、ctx のキャンセルで graceful shutdown します。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバを起動します", slog.String("addr", s.cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("終了シグナルを受信しました")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
