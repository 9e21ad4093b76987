package models

// Collection is the ordered set of settings parsed from one dump. Order is
// appearance order in the source file and is preserved on output. Loading a
// new file replaces the whole collection; there is no incremental diffing.
type Collection struct {
	settings []*Setting
}

func NewCollection(settings []*Setting) *Collection {
	return &Collection{settings: settings}
}

func (c *Collection) Len() int { return len(c.settings) }

// All returns the settings in source order. Callers must not reorder it.
func (c *Collection) All() []*Setting { return c.settings }

func (c *Collection) At(i int) *Setting { return c.settings[i] }

// Dirty returns the settings whose current value differs from the load-time
// snapshot, in source order. Computed on demand, never stored.
func (c *Collection) Dirty() []*Setting {
	var out []*Setting
	for _, s := range c.settings {
		if s.Dirty() {
			out = append(out, s)
		}
	}
	return out
}

// DirtyIndices returns the positions of dirty settings in source order.
func (c *Collection) DirtyIndices() []int {
	var out []int
	for i, s := range c.settings {
		if s.Dirty() {
			out = append(out, i)
		}
	}
	return out
}

// Counts returns (modified, total) for status lines.
func (c *Collection) Counts() (int, int) {
	return len(c.Dirty()), len(c.settings)
}

// Reset reverts every dirty setting to its load-time snapshot and returns
// how many were reverted.
func (c *Collection) Reset() int {
	n := 0
	for _, s := range c.settings {
		if s.Reset() {
			n++
		}
	}
	return n
}

// FindByName returns the first setting whose normalized name equals the
// normalized query, or nil.
func (c *Collection) FindByName(name string) *Setting {
	nk := NormalizeKey(name)
	for _, s := range c.settings {
		if NormalizeKey(s.Name) == nk {
			return s
		}
	}
	return nil
}
