package models

import (
	"regexp"
	"strconv"
	"strings"
)

// SettingKind distinguishes the two shapes a BIOS setting can take in a
// SCEWIN dump: a closed list of coded options, or a free-form scalar cell.
type SettingKind int

const (
	KindOptions SettingKind = iota
	KindValue
)

func (k SettingKind) String() string {
	if k == KindOptions {
		return "options"
	}
	return "value"
}

// Option is one entry of an options list: a 2-hex-digit code and its label.
type Option struct {
	Code  string
	Label string
}

// Setting is one BIOS configuration item parsed from an NVRAM dump block.
// BlockLines keeps the original text verbatim so untouched settings can be
// reproduced byte-for-byte. Fields are written by the parser at construction
// time; afterwards all mutation goes through the Set* methods.
type Setting struct {
	Name       string
	Kind       SettingKind
	BlockLines []string

	// KindOptions
	Options      []Option
	CurrentIndex int

	// KindValue
	Value            string
	ValueMin         *int
	ValueMax         *int
	ValueHasBrackets bool

	origIndex int
	origValue string
}

// NewOptionsSetting builds an options-kind setting and snapshots the
// load-time selection. The index is clamped into the option range.
func NewOptionsSetting(name string, blockLines []string, options []Option, currentIndex int) *Setting {
	if len(options) > 0 {
		if currentIndex < 0 {
			currentIndex = 0
		}
		if currentIndex >= len(options) {
			currentIndex = len(options) - 1
		}
	} else {
		currentIndex = 0
	}
	return &Setting{
		Name:         name,
		Kind:         KindOptions,
		BlockLines:   blockLines,
		Options:      options,
		CurrentIndex: currentIndex,
		origIndex:    currentIndex,
	}
}

// NewValueSetting builds a value-kind setting and snapshots the load-time
// cell text.
func NewValueSetting(name string, blockLines []string, value string, min, max *int, hasBrackets bool) *Setting {
	return &Setting{
		Name:             name,
		Kind:             KindValue,
		BlockLines:       blockLines,
		Value:            value,
		ValueMin:         min,
		ValueMax:         max,
		ValueHasBrackets: hasBrackets,
		origValue:        value,
	}
}

var boolTrue = map[string]bool{
	"enabled": true, "enable": true, "on": true, "true": true, "yes": true, "1": true,
}

var boolFalse = map[string]bool{
	"disabled": true, "disable": true, "off": true, "false": true, "no": true, "0": true,
}

// CanonicalLabel folds boolean synonyms so that "Enable", "On" and "1" all
// compare equal. Anything outside the synonym tables is returned trimmed and
// lower-cased for verbatim comparison.
func CanonicalLabel(label string) string {
	t := strings.ToLower(strings.TrimSpace(label))
	if boolTrue[t] {
		return "enabled"
	}
	if boolFalse[t] {
		return "disabled"
	}
	return t
}

// CurrentLabel returns the label of the selected option, or the scalar cell
// text for value-kind settings.
func (s *Setting) CurrentLabel() string {
	if s.Kind == KindOptions {
		if len(s.Options) == 0 {
			return ""
		}
		return s.Options[s.CurrentIndex].Label
	}
	return s.Value
}

// OriginalIndex is the selection snapshot taken at parse time.
func (s *Setting) OriginalIndex() int { return s.origIndex }

// OriginalValue is the cell snapshot taken at parse time.
func (s *Setting) OriginalValue() string { return s.origValue }

// OriginalLabel returns the load-time label for options-kind settings.
func (s *Setting) OriginalLabel() string {
	if s.Kind == KindOptions && len(s.Options) > 0 {
		return s.Options[s.origIndex].Label
	}
	return s.origValue
}

// SetCurrentByLabel selects the first option whose label matches after
// boolean-synonym folding. Returns false when nothing matched or the option
// was already selected. No-op on value-kind settings.
func (s *Setting) SetCurrentByLabel(label string) bool {
	if s.Kind != KindOptions {
		return false
	}
	want := CanonicalLabel(label)
	for i, opt := range s.Options {
		if CanonicalLabel(opt.Label) == want || strings.ToLower(strings.TrimSpace(opt.Label)) == want {
			if i == s.CurrentIndex {
				return false
			}
			s.CurrentIndex = i
			return true
		}
	}
	return false
}

// SetCurrentByCode selects the option with the given 2-hex-digit code,
// case-insensitively. Returns false when nothing matched or the option was
// already selected.
func (s *Setting) SetCurrentByCode(code string) bool {
	if s.Kind != KindOptions {
		return false
	}
	for i, opt := range s.Options {
		if strings.EqualFold(opt.Code, strings.TrimSpace(code)) {
			if i == s.CurrentIndex {
				return false
			}
			s.CurrentIndex = i
			return true
		}
	}
	return false
}

// SetCurrentIndex selects an option by position. Returns false for
// out-of-range indices, value-kind settings, or when already selected.
func (s *Setting) SetCurrentIndex(i int) bool {
	if s.Kind != KindOptions || i < 0 || i >= len(s.Options) || i == s.CurrentIndex {
		return false
	}
	s.CurrentIndex = i
	return true
}

var (
	hexDigitsRE = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	hexLetterRE = regexp.MustCompile(`[A-Fa-f]`)
)

// SetValue stores a new scalar cell. Hex input (0x-prefixed, or hex digits
// including at least one letter) is stored with upper-cased digits and no
// bounds applied; all-digit input is decimal and gets clamped into the
// parsed help-string range. Unparseable input is ignored and reported as
// false.
func (s *Setting) SetValue(newValue string) bool {
	if s.Kind != KindValue {
		return false
	}
	v := strings.TrimSpace(newValue)
	switch {
	case strings.HasPrefix(strings.ToLower(v), "0x"):
		digits := v[2:]
		if !hexDigitsRE.MatchString(digits) {
			return false
		}
		v = "0x" + strings.ToUpper(digits)
	case hexDigitsRE.MatchString(v) && hexLetterRE.MatchString(v):
		v = strings.ToUpper(v)
	default:
		iv, err := strconv.Atoi(v)
		if err != nil {
			return false
		}
		if s.ValueMin != nil && iv < *s.ValueMin {
			iv = *s.ValueMin
		}
		if s.ValueMax != nil && iv > *s.ValueMax {
			iv = *s.ValueMax
		}
		v = strconv.Itoa(iv)
	}
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// Dirty reports whether the setting differs from its load-time snapshot.
func (s *Setting) Dirty() bool {
	if s.Kind == KindOptions {
		return s.CurrentIndex != s.origIndex
	}
	return s.Value != s.origValue
}

// Reset reverts the setting to its load-time snapshot. Returns true when
// anything changed.
func (s *Setting) Reset() bool {
	if !s.Dirty() {
		return false
	}
	if s.Kind == KindOptions {
		s.CurrentIndex = s.origIndex
	} else {
		s.Value = s.origValue
	}
	return true
}
