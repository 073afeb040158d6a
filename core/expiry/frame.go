package expiry

// Frame describes where the tracker's host is rendered.
// A frame is top-level when it is its own parent and its own top ancestor.
type Frame interface {
	Parent() Frame
	Top() Frame
}

// Window is a Frame that can be embedded into other windows.
type Window struct {
	parent *Window
}

// NewWindow returns a top-level window.
func NewWindow() *Window {
	return &Window{}
}

// Embed returns a child window nested inside w.
func (w *Window) Embed() *Window {
	return &Window{parent: w}
}

func (w *Window) Parent() Frame {
	if w.parent == nil {
		return w
	}
	return w.parent
}

func (w *Window) Top() Frame {
	top := w
	for top.parent != nil {
		top = top.parent
	}
	return top
}

// isTopLevel treats an unknown embedding context as nested.
func isTopLevel(f Frame) bool {
	if f == nil {
		return false
	}
	return f == f.Parent() && f == f.Top()
}
