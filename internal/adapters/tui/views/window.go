package views

// Window tracks which slice of a list fits on screen. Unlike a pager it
// scrolls one row at a time, keeping the cursor inside the window.
type Window struct {
	size   int
	offset int
	total  int
}

// NewWindow creates a window showing size rows
func NewWindow(size int) *Window {
	if size <= 0 {
		size = 10
	}
	return &Window{size: size}
}

// SetSize changes the number of rows
func (w *Window) SetSize(size int) {
	if size <= 0 {
		size = 1
	}
	w.size = size
	w.clamp()
}

// Size returns the number of rows
func (w *Window) Size() int {
	return w.size
}

// Follow scrolls just enough for cursor to be inside the window
func (w *Window) Follow(cursor, total int) {
	w.total = total
	if cursor < w.offset {
		w.offset = cursor
	} else if cursor >= w.offset+w.size {
		w.offset = cursor - w.size + 1
	}
	w.clamp()
}

// Offset returns the index of the first row shown
func (w *Window) Offset() int {
	return w.offset
}

// Range returns the start and end indices of the rows shown
func (w *Window) Range() (start, end int) {
	return w.offset, min(w.offset+w.size, w.total)
}

// IndexAt maps a row on screen to an index in the list, or -1
func (w *Window) IndexAt(row int) int {
	start, end := w.Range()
	if row < 0 || start+row >= end {
		return -1
	}
	return start + row
}

// Hidden returns how many rows are above and below the window
func (w *Window) Hidden() (above, below int) {
	start, end := w.Range()
	return start, w.total - end
}

func (w *Window) clamp() {
	if w.offset > w.total-w.size {
		w.offset = w.total - w.size
	}
	if w.offset < 0 {
		w.offset = 0
	}
}
