package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// SeedFromString は任意の文字列から決定論的な正のシード値を生成します。
// sha256 の先頭4バイトを int32 に変換し、符号ビットを落としています。
func SeedFromString(s string) int32 {
	hash := sha256.Sum256([]byte(s))
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	return seed & 0x7FFFFFFF
}

// ShotSeed は画像生成リクエスト用のシードを導出します。同じブック・ページ・
// フォーカスの組に対しては常に同じ値を返すので、再生成しても同じ構図が
// 再現できます（暗号学的性質は意図していません）。
func ShotSeed(bookID string, page int, focus VisualFocus) int64 {
	key := fmt.Sprintf("book:%s:p%d:%s", bookID, page, focus)
	return int64(SeedFromString(key))
}
