package render

import (
	"image/color"
	"testing"
)

func TestSpriteImageSize(t *testing.T) {
	img := SpriteImage(58, 37, color.RGBA{R: 245, G: 166, B: 35, A: 255}, 8)

	b := img.Bounds()
	if b.Dx() != 58 || b.Dy() != 37 {
		t.Errorf("bounds: got %dx%d, want 58x37", b.Dx(), b.Dy())
	}
}

func TestSpriteImageFillAndCorners(t *testing.T) {
	fill := color.RGBA{R: 245, G: 166, B: 35, A: 255}
	img := SpriteImage(58, 37, fill, 8)

	// 中心像素为填充色
	r, g, b, a := img.At(29, 18).RGBA()
	if r>>8 != 245 || g>>8 != 166 || b>>8 != 35 || a>>8 != 255 {
		t.Errorf("center pixel: got (%d, %d, %d, %d), want %v", r>>8, g>>8, b>>8, a>>8, fill)
	}

	// 圆角外的角落保持透明
	for _, p := range [][2]int{{0, 0}, {57, 0}, {0, 36}, {57, 36}} {
		if _, _, _, a := img.At(p[0], p[1]).RGBA(); a != 0 {
			t.Errorf("corner %v: alpha %d, want 0", p, a>>8)
		}
	}
}

func TestSpriteImageSquareCorners(t *testing.T) {
	img := SpriteImage(20, 10, color.RGBA{G: 255, A: 255}, 0)

	// 直角矩形的角落被填充
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Error("corner pixel should be opaque without rounding")
	}
}
