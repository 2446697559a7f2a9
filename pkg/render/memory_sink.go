package render

import "fmt"

// CallKind MemorySink 记录的调用类型
type CallKind int

const (
	CallCreate CallKind = iota
	CallSetPosition
	CallRemove
)

// String 返回调用类型名称
func (k CallKind) String() string {
	switch k {
	case CallCreate:
		return "create"
	case CallSetPosition:
		return "set_position"
	case CallRemove:
		return "remove"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

// Call 一次渲染端调用
type Call struct {
	Kind   CallKind
	Handle Handle
	Top    int
	Left   int
}

// Placement 元素当前的屏幕位置
type Placement struct {
	Top  int
	Left int
}

// MemorySink 无界面的 Sink 实现，记录所有调用
//
// 用于测试和 cmd/verify_trajectory。可以通过 Detach 模拟根节点消失，
// 通过 FailSetPosition 模拟元素更新失败。
type MemorySink struct {
	width  float64
	height float64

	nextHandle uint64
	elements   map[Handle]Placement
	calls      []Call
	detached   bool

	// FailSetPosition 非 nil 时，SetPosition 对该句柄返回 ErrUnknownHandle
	FailSetPosition func(h Handle) bool
}

// NewMemorySink 创建指定视口尺寸的 MemorySink
func NewMemorySink(width, height float64) *MemorySink {
	return &MemorySink{
		width:    width,
		height:   height,
		elements: make(map[Handle]Placement),
	}
}

// CreateHandle 实现 Sink
func (s *MemorySink) CreateHandle() (Handle, error) {
	if s.detached {
		return NoHandle, ErrRootUnavailable
	}
	s.nextHandle++
	h := Handle(s.nextHandle)
	s.elements[h] = Placement{}
	s.calls = append(s.calls, Call{Kind: CallCreate, Handle: h})
	return h, nil
}

// SetPosition 实现 Sink
func (s *MemorySink) SetPosition(h Handle, top, left int) error {
	s.calls = append(s.calls, Call{Kind: CallSetPosition, Handle: h, Top: top, Left: left})
	if _, ok := s.elements[h]; !ok {
		return fmt.Errorf("set position of handle %d: %w", h, ErrUnknownHandle)
	}
	if s.FailSetPosition != nil && s.FailSetPosition(h) {
		return fmt.Errorf("set position of handle %d: %w", h, ErrUnknownHandle)
	}
	s.elements[h] = Placement{Top: top, Left: left}
	return nil
}

// Remove 实现 Sink
func (s *MemorySink) Remove(h Handle) error {
	s.calls = append(s.calls, Call{Kind: CallRemove, Handle: h})
	if _, ok := s.elements[h]; !ok {
		return fmt.Errorf("remove handle %d: %w", h, ErrUnknownHandle)
	}
	delete(s.elements, h)
	return nil
}

// ViewportExtent 实现 Sink
func (s *MemorySink) ViewportExtent() (float64, float64) {
	return s.width, s.height
}

// Resize 修改视口尺寸（模拟窗口缩放）
func (s *MemorySink) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Detach 模拟渲染根节点被移除，之后 CreateHandle 全部失败
func (s *MemorySink) Detach() {
	s.detached = true
}

// Calls 返回所有调用记录的副本
func (s *MemorySink) Calls() []Call {
	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// CallsFor 返回某个句柄相关的调用记录
func (s *MemorySink) CallsFor(h Handle) []Call {
	var calls []Call
	for _, c := range s.calls {
		if c.Handle == h {
			calls = append(calls, c)
		}
	}
	return calls
}

// Placement 返回元素当前位置
func (s *MemorySink) Placement(h Handle) (Placement, bool) {
	p, ok := s.elements[h]
	return p, ok
}

// Live 当前存活的元素数量
func (s *MemorySink) Live() int {
	return len(s.elements)
}
