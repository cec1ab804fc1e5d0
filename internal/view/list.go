package view

// List is the top-to-bottom stacking order of mapped and unmapped views
// (spec.md §3 invariant (i), §9 "intrusive doubly-linked lists ... become
// ordered sequences by value"). The head is the topmost view.
type List struct {
	views []*View
}

// PushFront inserts v at the head of the list (spec.md §4.1, a newly
// created surface starts unmapped at the head).
func (l *List) PushFront(v *View) {
	l.views = append([]*View{v}, l.views...)
}

// Remove deletes v from the list. A no-op if v is not present.
func (l *List) Remove(v *View) {
	for i, candidate := range l.views {
		if candidate == v {
			l.views = append(l.views[:i], l.views[i+1:]...)
			return
		}
	}
}

// MoveToFront relocates v to the head of the list. A no-op if v is not
// present.
func (l *List) MoveToFront(v *View) {
	for i, candidate := range l.views {
		if candidate == v {
			l.views = append(l.views[:i], l.views[i+1:]...)
			l.views = append([]*View{v}, l.views...)
			return
		}
	}
}

// Len returns the number of views tracked, mapped or not.
func (l *List) Len() int { return len(l.views) }

// Front returns the topmost view, or nil if the list is empty.
func (l *List) Front() *View {
	if len(l.views) == 0 {
		return nil
	}
	return l.views[0]
}

// Next returns the view below v in stacking order, or nil if v is the
// bottom view or not present (used by the F1 cycle-view keybinding).
func (l *List) Next(v *View) *View {
	for i, candidate := range l.views {
		if candidate == v {
			if i+1 < len(l.views) {
				return l.views[i+1]
			}
			return nil
		}
	}
	return nil
}

// TopToBottom calls fn for each view from the head down, stopping early if
// fn returns false. Used for point-in-layout hit testing (spec.md §4.2),
// where the first hit wins.
func (l *List) TopToBottom(fn func(v *View) bool) {
	for _, v := range l.views {
		if !fn(v) {
			return
		}
	}
}

// BottomToTop calls fn for each view from the tail up, so that the head
// (topmost) is visited, and therefore drawn, last (spec.md §4.9 step 5).
func (l *List) BottomToTop(fn func(v *View)) {
	for i := len(l.views) - 1; i >= 0; i-- {
		fn(l.views[i])
	}
}

// Contains reports whether v is tracked by the list.
func (l *List) Contains(v *View) bool {
	for _, candidate := range l.views {
		if candidate == v {
			return true
		}
	}
	return false
}

// Slice returns the live backing views, top to bottom. Callers must not
// mutate the returned slice.
func (l *List) Slice() []*View {
	return l.views
}
