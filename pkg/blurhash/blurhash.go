// Package blurhash 在上传前为图片生成低保真占位哈希与原始尺寸，
// 供前端在原图加载完成前渲染模糊占位图.
package blurhash

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	bh "github.com/buckket/go-blurhash"
	"github.com/disintegration/imaging"
)

const (
	// FallbackHash 解码失败或视频文件时使用的固定占位哈希.
	FallbackHash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"

	// FallbackDimension 无法获知真实尺寸时的兜底边长.
	FallbackDimension = 800

	// maxEdge 降采样后长边像素数，哈希计算只需要极小的栅格.
	maxEdge = 32

	// xComponents/yComponents 为 blurhash 的 DCT 分量网格.
	xComponents = 4
	yComponents = 3
)

// Placeholder 占位元数据，随资产记录一起入库.
type Placeholder struct {
	Hash   string `json:"blurhash"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Fallback 返回固定的兜底占位元数据.
func Fallback() Placeholder {
	return Placeholder{
		Hash:   FallbackHash,
		Width:  FallbackDimension,
		Height: FallbackDimension,
	}
}

// FromBytes 从原始字节计算占位元数据.
// isVideo 为 true 或任何解码/编码失败都会返回兜底值，绝不报错；
// 占位图失败不应当阻断上传本身.
func FromBytes(data []byte, isVideo bool) Placeholder {
	if isVideo {
		return Fallback()
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Fallback()
	}

	return FromImage(img)
}

// FromImage 从已解码的图片计算占位元数据，失败时保留真实尺寸、回退哈希.
func FromImage(img image.Image) Placeholder {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= 0 || height <= 0 {
		return Fallback()
	}

	// 先降采样再编码，blurhash 对大图直接编码开销极高且无收益.
	small := imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)

	hash, err := bh.Encode(xComponents, yComponents, small)
	if err != nil {
		return Placeholder{
			Hash:   FallbackHash,
			Width:  width,
			Height: height,
		}
	}

	return Placeholder{
		Hash:   hash,
		Width:  width,
		Height: height,
	}
}
