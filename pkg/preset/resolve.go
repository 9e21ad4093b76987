package preset

import (
	"strings"

	"nvramtool/pkg/models"
)

// Target pairs a parsed setting with the values an active preset wants it to
// take. Targets are transient: built per activation, applied, discarded.
type Target struct {
	Index   int
	Setting *models.Setting
	Values  []string
}

// TargetEntry keeps the original table spelling alongside its values so
// diagnostics can show the descriptive label.
type TargetEntry struct {
	Key    string
	Values []string
}

// CombineTargets merges the target maps of the active presets into one
// table keyed by normalized setting name. Later presets overwrite earlier
// ones on identical literal keys; when two different spellings normalize to
// the same key, the longer original spelling wins.
func CombineTargets(active []*Preset) map[string]TargetEntry {
	literal := make(map[string][]string)
	for _, p := range active {
		for k, v := range p.Targets {
			literal[k] = v
		}
	}

	merged := make(map[string]TargetEntry)
	for k, v := range literal {
		nk := models.NormalizeKey(k)
		if cur, ok := merged[nk]; !ok || len(k) > len(cur.Key) {
			merged[nk] = TargetEntry{Key: k, Values: v}
		}
	}
	return merged
}

// Resolve matches the combined target table against the parsed settings by
// normalized name and returns the pending targets in source order.
func Resolve(settings []*models.Setting, active []*Preset) []Target {
	combined := CombineTargets(active)
	var out []Target
	for i, s := range settings {
		if entry, ok := combined[models.NormalizeKey(s.Name)]; ok {
			out = append(out, Target{Index: i, Setting: s, Values: entry.Values})
		}
	}
	return out
}

// ApplyTargets applies pending targets and returns how many settings
// changed. Application is idempotent: a setting already at an acceptable
// value is left alone, so re-applying a preset in effect yields zero. A
// single unmatched setting never aborts the rest.
func ApplyTargets(targets []Target) int {
	changed := 0
	for _, t := range targets {
		if t.Setting.Kind == models.KindOptions {
			if applyOptionsTarget(t.Setting, t.Values) {
				changed++
			}
		} else {
			if applyValueTarget(t.Setting, t.Values) {
				changed++
			}
		}
	}
	return changed
}

func applyOptionsTarget(s *models.Setting, values []string) bool {
	// Already at one of the acceptable synonyms: nothing to do, no fallback.
	cur := models.CanonicalLabel(s.CurrentLabel())
	for _, v := range values {
		if models.CanonicalLabel(v) == cur {
			return false
		}
	}

	for _, v := range values {
		if s.SetCurrentByLabel(v) {
			return true
		}
		if s.SetCurrentByCode(v) {
			return true
		}
	}

	// Nothing matched: seek a disabling option, then code 00, then index 0.
	if idx, ok := disabledIndexFor(s); ok {
		return s.SetCurrentIndex(idx)
	}
	if len(s.Options) > 0 {
		return s.SetCurrentIndex(0)
	}
	return false
}

func disabledIndexFor(s *models.Setting) (int, bool) {
	for i, opt := range s.Options {
		if strings.Contains(strings.ToLower(opt.Label), "disable") {
			return i, true
		}
	}
	for i, opt := range s.Options {
		if opt.Code == "00" {
			return i, true
		}
	}
	return 0, false
}

func applyValueTarget(s *models.Setting, values []string) bool {
	if len(values) == 0 {
		return false
	}
	raw := values[0]
	core := CoerceTarget(DetectFormat(s, raw), raw)

	// Compare bracket-insensitively; the cell's own bracket style is kept.
	if strings.Trim(s.Value, "<>") == core {
		return false
	}
	return s.SetValue(core)
}
