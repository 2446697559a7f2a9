package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// outlineAlpha 轮廓线的不透明度
const outlineAlpha = 0.35

// SpriteImage 生成默认粒子贴图：fill 填充的圆角矩形加一圈半透明深色轮廓
// radius <= 0 时为直角矩形
func SpriteImage(width, height int, fill color.RGBA, radius float64) image.Image {
	dc := gg.NewContext(width, height)
	w, h := float64(width), float64(height)

	dc.SetColor(fill)
	if radius > 0 {
		dc.DrawRoundedRectangle(0, 0, w, h, radius)
	} else {
		dc.DrawRectangle(0, 0, w, h)
	}
	dc.Fill()

	// 轮廓向内收 1 像素，保证线宽完整落在贴图内
	dc.SetRGBA(0, 0, 0, outlineAlpha)
	dc.SetLineWidth(2)
	if radius > 1 {
		dc.DrawRoundedRectangle(1, 1, w-2, h-2, radius-1)
	} else {
		dc.DrawRectangle(1, 1, w-2, h-2)
	}
	dc.Stroke()

	return dc.Image()
}
