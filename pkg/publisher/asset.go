package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter はデータを外部ストレージに保存するためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// LocalWriter はローカルファイルシステムへ書き込む OutputWriter 実装です。
// 親ディレクトリが存在しない場合は作成します。
type LocalWriter struct{}

func (LocalWriter) Write(_ context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("local_writer: ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("local_writer: ファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}

// AssetManager は生成物の保存パスと永続化を管理します。
type AssetManager struct {
	writer  OutputWriter
	baseDir string // 保存先のベースディレクトリ (例: "output/book-001")
}

func NewAssetManager(writer OutputWriter, baseDir string) *AssetManager {
	return &AssetManager{
		writer:  writer,
		baseDir: baseDir,
	}
}

// SaveImage は画像データを保存し、その保存先のパスを返します。
func (am *AssetManager) SaveImage(ctx context.Context, fileName string, data []byte) (string, error) {
	fullPath := filepath.Join(am.baseDir, fileName)
	if err := am.writer.Write(ctx, fullPath, data); err != nil {
		return "", fmt.Errorf("asset_manager: 画像の保存に失敗しました: %w", err)
	}
	return fullPath, nil
}
