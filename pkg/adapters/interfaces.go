// Package adapters は画像生成AIへの接着面と、1冊まるごとの挿絵を
// 順次生成するパイプラインを提供します。
package adapters

import (
	"context"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// ImageAdapter は挿絵1枚の生成を担うのだ
type ImageAdapter interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}
