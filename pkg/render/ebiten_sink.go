package render

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// sprite 一个已创建的可见元素
type sprite struct {
	top    int
	left   int
	placed bool // 第一次 SetPosition 之前不绘制
}

// EbitenSink 基于 ebiten 的 Sink 实现
//
// EbitenSink 本身就是竞技场的渲染根：它保存所有元素的屏幕位置，
// 在 Draw 中把它们画到屏幕上。视口尺寸由 ebiten.Game.Layout 通过 SetViewport 写入。
type EbitenSink struct {
	width  float64
	height float64

	spriteWidth  int
	spriteHeight int
	fill         color.RGBA
	image        *ebiten.Image // 粒子贴图；为 nil 时绘制纯色矩形

	nextHandle uint64
	sprites    map[Handle]*sprite
	order      []Handle // 创建顺序，保证绘制顺序稳定
	detached   bool
}

// NewEbitenSink 创建渲染根
//
// 参数:
//   - width, height: 初始视口尺寸
//   - spriteWidth, spriteHeight: 粒子元素尺寸（像素）
//   - fill: 没有贴图时使用的填充色
func NewEbitenSink(width, height float64, spriteWidth, spriteHeight int, fill color.RGBA) *EbitenSink {
	return &EbitenSink{
		width:        width,
		height:       height,
		spriteWidth:  spriteWidth,
		spriteHeight: spriteHeight,
		fill:         fill,
		sprites:      make(map[Handle]*sprite),
	}
}

// LoadSprite 从文件加载粒子贴图
func (s *EbitenSink) LoadSprite(path string) error {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to load sprite %s: %w", path, err)
	}
	s.image = img
	log.Printf("[EbitenSink] Loaded sprite %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// UseImage 使用内存中的图像作为粒子贴图（例如 SpriteImage 生成的默认贴图）
func (s *EbitenSink) UseImage(img image.Image) {
	s.image = ebiten.NewImageFromImage(img)
}

// HasImage 是否已设置贴图
func (s *EbitenSink) HasImage() bool {
	return s.image != nil
}

// CreateHandle 实现 Sink
func (s *EbitenSink) CreateHandle() (Handle, error) {
	if s.detached {
		return NoHandle, ErrRootUnavailable
	}
	s.nextHandle++
	h := Handle(s.nextHandle)
	s.sprites[h] = &sprite{}
	s.order = append(s.order, h)
	return h, nil
}

// SetPosition 实现 Sink
func (s *EbitenSink) SetPosition(h Handle, top, left int) error {
	sp, ok := s.sprites[h]
	if !ok {
		return fmt.Errorf("set position of handle %d: %w", h, ErrUnknownHandle)
	}
	sp.top = top
	sp.left = left
	sp.placed = true
	return nil
}

// Remove 实现 Sink
func (s *EbitenSink) Remove(h Handle) error {
	if _, ok := s.sprites[h]; !ok {
		return fmt.Errorf("remove handle %d: %w", h, ErrUnknownHandle)
	}
	delete(s.sprites, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ViewportExtent 实现 Sink
func (s *EbitenSink) ViewportExtent() (float64, float64) {
	return s.width, s.height
}

// SetViewport 记录新的视口尺寸，返回尺寸是否发生变化
func (s *EbitenSink) SetViewport(width, height int) bool {
	w, h := float64(width), float64(height)
	if w == s.width && h == s.height {
		return false
	}
	s.width = w
	s.height = h
	return true
}

// Detach 分离渲染根：已有元素全部丢弃，之后 CreateHandle 返回 ErrRootUnavailable
func (s *EbitenSink) Detach() {
	s.detached = true
	s.sprites = make(map[Handle]*sprite)
	s.order = s.order[:0]
}

// Count 当前元素数量
func (s *EbitenSink) Count() int {
	return len(s.sprites)
}

// Draw 绘制所有已定位的元素
func (s *EbitenSink) Draw(screen *ebiten.Image) {
	for _, h := range s.order {
		sp := s.sprites[h]
		if sp == nil || !sp.placed {
			continue
		}

		if s.image == nil {
			vector.DrawFilledRect(
				screen,
				float32(sp.left), float32(sp.top),
				float32(s.spriteWidth), float32(s.spriteHeight),
				s.fill,
				false,
			)
			continue
		}

		// 贴图缩放到粒子尺寸
		bounds := s.image.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			float64(s.spriteWidth)/float64(bounds.Dx()),
			float64(s.spriteHeight)/float64(bounds.Dy()),
		)
		op.GeoM.Translate(float64(sp.left), float64(sp.top))
		screen.DrawImage(s.image, op)
	}
}
