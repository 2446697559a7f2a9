package render

import (
	"fmt"
	"image/color"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// TerminalSink 基于 tcell 的 Sink 实现
//
// 每个字符单元代表 cellWidth x cellHeight 像素，视口像素尺寸随终端尺寸变化。
// 每个元素画成一个字符，落在元素中心所在的单元格。
type TerminalSink struct {
	screen     tcell.Screen
	cellWidth  int
	cellHeight int

	spriteWidth  int
	spriteHeight int
	glyph        rune
	style        tcell.Style

	nextHandle uint64
	sprites    map[Handle]*sprite
	order      []Handle
	detached   bool
}

// NewTerminalSink 创建终端渲染根，screen 必须已经 Init
func NewTerminalSink(screen tcell.Screen, cellWidth, cellHeight, spriteWidth, spriteHeight int, glyph string, fill color.RGBA) *TerminalSink {
	r, _ := utf8.DecodeRuneInString(glyph)
	if r == utf8.RuneError {
		r = '*'
	}
	return &TerminalSink{
		screen:       screen,
		cellWidth:    cellWidth,
		cellHeight:   cellHeight,
		spriteWidth:  spriteWidth,
		spriteHeight: spriteHeight,
		glyph:        r,
		style:        tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fill.R), int32(fill.G), int32(fill.B))),
		sprites:      make(map[Handle]*sprite),
	}
}

// CreateHandle 实现 Sink
func (s *TerminalSink) CreateHandle() (Handle, error) {
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
func (s *TerminalSink) SetPosition(h Handle, top, left int) error {
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
func (s *TerminalSink) Remove(h Handle) error {
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

// ViewportExtent 实现 Sink，返回终端尺寸换算后的像素尺寸
func (s *TerminalSink) ViewportExtent() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols * s.cellWidth), float64(rows * s.cellHeight)
}

// Detach 分离渲染根
func (s *TerminalSink) Detach() {
	s.detached = true
	s.sprites = make(map[Handle]*sprite)
	s.order = s.order[:0]
}

// Count 当前元素数量
func (s *TerminalSink) Count() int {
	return len(s.sprites)
}

// CellOf 元素中心所在的单元格
func (s *TerminalSink) CellOf(top, left int) (col, row int) {
	return floorDiv(left+s.spriteWidth/2, s.cellWidth), floorDiv(top+s.spriteHeight/2, s.cellHeight)
}

// PixelOf 单元格中心的屏幕像素坐标，用于把鼠标单元格换算成点击位置
func (s *TerminalSink) PixelOf(col, row int) (x, y int) {
	return col*s.cellWidth + s.cellWidth/2, row*s.cellHeight + s.cellHeight/2
}

// Draw 清屏并绘制所有可见元素，status 写在第一行
func (s *TerminalSink) Draw(status string) {
	s.screen.Clear()
	cols, rows := s.screen.Size()

	for _, h := range s.order {
		sp := s.sprites[h]
		if sp == nil || !sp.placed {
			continue
		}
		col, row := s.CellOf(sp.top, sp.left)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		s.screen.SetContent(col, row, s.glyph, nil, s.style)
	}

	col := 0
	for _, r := range status {
		if col >= cols {
			break
		}
		s.screen.SetContent(col, 0, r, nil, tcell.StyleDefault)
		col++
	}

	s.screen.Show()
}

// floorDiv 向下取整的整数除法，元素越过屏幕上沿时 top 为负
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
