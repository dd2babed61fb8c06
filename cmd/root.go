package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/shouni/go-storybook-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// appOptions は CLI フラグから渡される実行時のパラメータなのだ。
type appOptions struct {
	// ブック初期化関連
	Pitch        string
	StyleLabel   string
	GenreLabel   string
	AgeBand      string
	BookSize     string
	AllowAINames bool
	ForceRhyme   bool

	// 出力・サーバ関連
	OutputDir  string
	ListenAddr string

	// AIモデル・挙動設定
	AIModel     string
	ImageModel  string
	HTTPTimeout time.Duration
}

var opts appOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ブック初期化関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Pitch, "pitch", "p", "", "絵本の1行ピッチなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.StyleLabel, "style", "Classic Storybook", "画風ラベル（UI表記のままでよいのだ）。")
	rootCmd.PersistentFlags().StringVar(&opts.GenreLabel, "genre", "Fantasy", "ジャンルラベルなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AgeBand, "age-band", "kids", "対象年齢帯なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.BookSize, "book-size", "picture-book", "判型（picture-book / square-book / board-book / chapter-book）なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.AllowAINames, "allow-ai-names", true, "名前プールからの命名を許可するのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.ForceRhyme, "force-rhyme", false, "ジャンル既定値に関係なく韻を踏ませるのだ。")

	// --- 出力・サーバ関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "output", "本文 Markdown と挿絵を保存するディレクトリなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ListenAddr, "listen", "", "serve コマンドの待ち受けアドレス（省略時は LISTEN_ADDR）なのだ。")

	// --- AIモデル・挙動設定（未指定時は環境変数とその既定値が使われるのだ） ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "使用する Gemini モデル名（既定: "+config.DefaultModel+"）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "使用する Gemini 画像モデル名（既定: "+config.DefaultImageModel+"）なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", 0, "Webリクエストのタイムアウト（既定: "+config.DefaultHTTPTimeout.String()+"）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// rules コマンドはAIを呼ばないためチェック不要なのだ
	if cmd.Name() == "rules" {
		return nil
	}
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// applyFlagOverrides は、フラグで明示された値だけを環境変数由来の設定に上書きするのだ。
func applyFlagOverrides(cfg *config.Config) {
	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}
	if opts.AIModel != "" {
		cfg.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != "" {
		cfg.GeminiImageModel = opts.ImageModel
	}
	if opts.HTTPTimeout > 0 {
		cfg.HTTPTimeout = opts.HTTPTimeout
	}
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"storybook-kit",
		addAppFlags,
		preRunAppE,
		serveCmd,
		bookCmd,
		rulesCmd,
	)
}
