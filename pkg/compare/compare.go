// Package compare reports differences between setting states: the dirty
// diff of one loaded dump against its load-time snapshot, and the diff of
// two separate dumps matched by normalized name.
package compare

import (
	"nvramtool/pkg/models"
	"nvramtool/pkg/render"
)

// DirtyChanges lists every setting whose current value differs from its
// load-time snapshot, in source order.
func DirtyChanges(settings []*models.Setting) []render.ChangeRow {
	var out []render.ChangeRow
	for _, s := range settings {
		if !s.Dirty() {
			continue
		}
		out = append(out, render.ChangeRow{
			Name: s.Name,
			Old:  s.OriginalLabel(),
			New:  s.CurrentLabel(),
		})
	}
	return out
}

// Files diffs two parsed dumps by normalized setting name. Settings present
// in only one dump are skipped; the caller cares about drift, not coverage.
func Files(a, b []*models.Setting) []render.ChangeRow {
	index := make(map[string]*models.Setting, len(a))
	for _, s := range a {
		index[models.NormalizeKey(s.Name)] = s
	}

	var out []render.ChangeRow
	for _, s := range b {
		prev, ok := index[models.NormalizeKey(s.Name)]
		if !ok {
			continue
		}
		if prev.CurrentLabel() != s.CurrentLabel() {
			out = append(out, render.ChangeRow{
				Name: s.Name,
				Old:  prev.CurrentLabel(),
				New:  s.CurrentLabel(),
			})
		}
	}
	return out
}
