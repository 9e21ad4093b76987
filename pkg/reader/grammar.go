package reader

import (
	"regexp"
	"strings"
)

// The five syntactic elements of a SCEWIN NVRAM dump. Everything the
// recognizers do not claim is passed through verbatim.
var (
	setupQuestionRE = regexp.MustCompile(`(?i)^\s*Setup\s+Question\s*=\s*(.+?)\s*$`)
	helpStringRE    = regexp.MustCompile(`(?i)^\s*Help\s+String\s*=\s*(.+?)\s*$`)
	optionsOpenerRE = regexp.MustCompile(`(?i)^\s*Options\s*=`)
	optionLineRE    = regexp.MustCompile(`^\s*(\*)?\s*\[\s*([0-9A-Fa-f]{2})\s*\]\s*(.*?)\s*(//.*)?$`)
	valueLineRE     = regexp.MustCompile(`(?i)^\s*Value\s*=\s*(?:<\s*)?([0-9A-Fa-fx]+)(?:\s*>)?\s*(//.*)?\s*$`)
	rangeHintRE     = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
)

// OptionMatch is one recognized option-entry line.
type OptionMatch struct {
	Starred bool
	Code    string
	Label   string
	Comment string // trailing "//..." text, empty when absent
}

// MatchSetupQuestion returns the display name when the line begins a block.
func MatchSetupQuestion(line string) (string, bool) {
	m := setupQuestionRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchHelpString returns the help text when the line is a help string.
func MatchHelpString(line string) (string, bool) {
	m := helpStringRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchOptionsOpener reports whether the line starts an options list.
func MatchOptionsOpener(line string) bool {
	return optionsOpenerRE.MatchString(line)
}

// MatchOptionLine recognizes an option entry: optional leading star,
// bracketed 2-hex-digit code, label to end of line or a // comment.
func MatchOptionLine(line string) (OptionMatch, bool) {
	m := optionLineRE.FindStringSubmatch(line)
	if m == nil || (m[2] == "") {
		return OptionMatch{}, false
	}
	return OptionMatch{
		Starred: m[1] == "*",
		Code:    strings.TrimSpace(m[2]),
		Label:   strings.TrimSpace(m[3]),
		Comment: m[4],
	}, true
}

// ValueMatch is a recognized standalone value cell.
type ValueMatch struct {
	Raw       string
	Bracketed bool
	Comment   string // trailing "//..." text, empty when absent
}

// MatchValueLine recognizes a `Value =` cell, bracketed or not.
func MatchValueLine(line string) (ValueMatch, bool) {
	m := valueLineRE.FindStringSubmatch(line)
	if m == nil {
		return ValueMatch{}, false
	}
	return ValueMatch{
		Raw:       strings.TrimSpace(m[1]),
		Bracketed: strings.Contains(line, "<") && strings.Contains(line, ">"),
		Comment:   m[2],
	}, true
}

// RangeHint extracts an "A - B" bound pair from help text. Hints whose
// numbers are not in ascending order are discarded.
func RangeHint(help string) (min, max int, ok bool) {
	m := rangeHintRE.FindStringSubmatch(help)
	if m == nil {
		return 0, 0, false
	}
	a, b := atoiRelaxed(m[1]), atoiRelaxed(m[2])
	if a > b {
		return 0, 0, false
	}
	return a, b, true
}

// Indent returns the leading whitespace of a line.
func Indent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// SplitOpener splits an options-opener line at its first '='.
func SplitOpener(line string) (head, tail string, ok bool) {
	i := strings.Index(line, "=")
	if i < 0 {
		return line, "", false
	}
	return line[:i], line[i+1:], true
}

func atoiRelaxed(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
