package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminalSink(t *testing.T) (*TerminalSink, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return NewTerminalSink(screen, 10, 20, 58, 37, "●", color.RGBA{R: 245, G: 166, B: 35, A: 255}), screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestTerminalSinkViewportExtent(t *testing.T) {
	sink, screen := newTestTerminalSink(t)

	if w, h := sink.ViewportExtent(); w != 800 || h != 480 {
		t.Errorf("ViewportExtent: got %vx%v, want 800x480", w, h)
	}

	screen.SetSize(100, 30)
	if w, h := sink.ViewportExtent(); w != 1000 || h != 600 {
		t.Errorf("ViewportExtent after resize: got %vx%v, want 1000x600", w, h)
	}
}

func TestTerminalSinkDraw(t *testing.T) {
	sink, screen := newTestTerminalSink(t)

	h, err := sink.CreateHandle()
	if err != nil {
		t.Fatalf("CreateHandle() error: %v", err)
	}

	// 未定位的元素不绘制
	sink.Draw("")
	col, row := sink.CellOf(60, 371)
	if runeAt(screen, col, row) == '●' {
		t.Error("unplaced element must not be drawn")
	}

	// 中心 (400, 78) -> 单元格 (40, 3)
	if err := sink.SetPosition(h, 60, 371); err != nil {
		t.Fatalf("SetPosition() error: %v", err)
	}
	sink.Draw("live 1")
	if col != 40 || row != 3 {
		t.Fatalf("CellOf: got (%d, %d), want (40, 3)", col, row)
	}
	if got := runeAt(screen, 40, 3); got != '●' {
		t.Errorf("cell (40, 3): got %q, want '●'", got)
	}
	if got := runeAt(screen, 0, 0); got != 'l' {
		t.Errorf("status line: got %q, want 'l'", got)
	}

	if err := sink.Remove(h); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	sink.Draw("")
	if got := runeAt(screen, 40, 3); got == '●' {
		t.Error("removed element still drawn")
	}
}

func TestTerminalSinkOffscreen(t *testing.T) {
	sink, screen := newTestTerminalSink(t)

	h, _ := sink.CreateHandle()
	// 越过屏幕上沿：单元格行为负，跳过绘制
	_ = sink.SetPosition(h, -100, 371)
	sink.Draw("")

	if _, row := sink.CellOf(-100, 371); row >= 0 {
		t.Errorf("row for top=-100: got %d, want negative", row)
	}
	for x := 0; x < 80; x++ {
		if runeAt(screen, x, 0) == '●' {
			t.Fatalf("offscreen element drawn at (%d, 0)", x)
		}
	}
}

func TestTerminalSinkErrors(t *testing.T) {
	sink, _ := newTestTerminalSink(t)

	if err := sink.SetPosition(42, 0, 0); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("SetPosition unknown: got %v, want ErrUnknownHandle", err)
	}
	if err := sink.Remove(42); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Remove unknown: got %v, want ErrUnknownHandle", err)
	}

	_, _ = sink.CreateHandle()
	sink.Detach()
	if sink.Count() != 0 {
		t.Errorf("Count after Detach: got %d, want 0", sink.Count())
	}
	if _, err := sink.CreateHandle(); !errors.Is(err, ErrRootUnavailable) {
		t.Errorf("CreateHandle after Detach: got %v, want ErrRootUnavailable", err)
	}
}

func TestTerminalSinkPixelOf(t *testing.T) {
	sink, _ := newTestTerminalSink(t)

	if x, y := sink.PixelOf(40, 3); x != 405 || y != 70 {
		t.Errorf("PixelOf(40, 3): got (%d, %d), want (405, 70)", x, y)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 20, 0},
		{19, 20, 0},
		{20, 20, 1},
		{-1, 20, -1},
		{-20, 20, -1},
		{-21, 20, -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
