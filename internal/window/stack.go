package window

import "errors"

// Stack groups the windows that make up one frame.
// Windows draw in push order and close in reverse order.
type Stack struct {
	windows []*Window
}

// Push adds a window to the top of the stack.
func (s *Stack) Push(w *Window) *Window {
	s.windows = append(s.windows, w)
	return w
}

// Len returns the number of windows in the stack.
func (s *Stack) Len() int {
	return len(s.windows)
}

// Draw draws every window, stopping at the first error.
func (s *Stack) Draw() error {
	for _, w := range s.windows {
		if err := w.Draw(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every window in reverse order, even if some fail.
// The windows stay in the stack and reopen on the next Draw.
func (s *Stack) Close() error {
	var errs []error
	for i := len(s.windows) - 1; i >= 0; i-- {
		if err := s.windows[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear closes every window and empties the stack.
func (s *Stack) Clear() error {
	err := s.Close()
	s.windows = nil
	return err
}
