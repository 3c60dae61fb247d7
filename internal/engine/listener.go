package engine

import "github.com/piwi3910/CollageCut/internal/model"

// Listener receives change notifications from a Collage. Calls happen
// synchronously on the goroutine that mutated the collage, after the new
// state is final.
type Listener interface {
	// SelectionChanged reports a new selected cell.
	SelectionChanged(c *Collage, cell model.Cell)
	// CollageChanged reports a coarse change: split, merge, reset, load, or
	// a rejected resize that was rolled back.
	CollageChanged(c *Collage)
	// StateChanged reports a committed resize with the exact new frames of
	// every cell that moved.
	StateChanged(c *Collage, state model.Snapshot)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnSelectionChanged func(c *Collage, cell model.Cell)
	OnCollageChanged   func(c *Collage)
	OnStateChanged     func(c *Collage, state model.Snapshot)
}

func (f ListenerFuncs) SelectionChanged(c *Collage, cell model.Cell) {
	if f.OnSelectionChanged != nil {
		f.OnSelectionChanged(c, cell)
	}
}

func (f ListenerFuncs) CollageChanged(c *Collage) {
	if f.OnCollageChanged != nil {
		f.OnCollageChanged(c)
	}
}

func (f ListenerFuncs) StateChanged(c *Collage, state model.Snapshot) {
	if f.OnStateChanged != nil {
		f.OnStateChanged(c, state)
	}
}

type subscription struct {
	id       int
	listener Listener
}

// Subscribe registers l and returns a function that removes it again. The
// collage keeps no other reference to l.
func (c *Collage) Subscribe(l Listener) (unsubscribe func()) {
	c.nextSubID++
	id := c.nextSubID
	c.subs = append(c.subs, subscription{id: id, listener: l})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Collage) notifySelectionChanged(cell model.Cell) {
	for _, s := range c.listeners() {
		s.SelectionChanged(c, cell)
	}
}

func (c *Collage) notifyCollageChanged() {
	for _, s := range c.listeners() {
		s.CollageChanged(c)
	}
}

func (c *Collage) notifyStateChanged(state model.Snapshot) {
	for _, s := range c.listeners() {
		s.StateChanged(c, state)
	}
}

// listeners copies the current set so a listener may unsubscribe while
// being notified.
func (c *Collage) listeners() []Listener {
	ls := make([]Listener, len(c.subs))
	for i, s := range c.subs {
		ls[i] = s.listener
	}
	return ls
}
