package preset

import (
	"regexp"
	"strconv"
	"strings"

	"nvramtool/pkg/models"
)

// ValueFormat tags the shape a value-kind cell takes in its source block.
// Detection is an ordered set of rules over externally authored text, so the
// precedence (bracket, boolean comment, long hex, fallback) is explicit and
// testable rather than implicit string sniffing.
type ValueFormat int

const (
	FormatText ValueFormat = iota
	FormatDecimal
	FormatBoolean
	FormatHex
)

func (f ValueFormat) String() string {
	switch f {
	case FormatDecimal:
		return "decimal"
	case FormatBoolean:
		return "boolean"
	case FormatHex:
		return "hex"
	default:
		return "text"
	}
}

var (
	longHexRE = regexp.MustCompile(`^[0-9A-Fa-f]{4,}$`)
	hex8RE    = regexp.MustCompile(`^[0-9A-Fa-f]{8,}$`)
)

// DetectFormat inspects the setting's source block for a format hint on its
// value cell, falling back to guessing from the target itself.
func DetectFormat(s *models.Setting, target string) ValueFormat {
	for _, line := range s.BlockLines {
		if !strings.Contains(line, "Value") || !strings.Contains(line, "=") {
			continue
		}
		afterEq := strings.SplitN(line, "=", 2)[1]
		valuePart := strings.TrimSpace(strings.SplitN(afterEq, "//", 2)[0])

		switch {
		case strings.HasPrefix(valuePart, "<") && strings.HasSuffix(valuePart, ">"):
			return FormatDecimal
		case strings.Contains(line, "//") &&
			(strings.Contains(line, "Enabled") || strings.Contains(line, "Disabled")):
			return FormatBoolean
		case longHexRE.MatchString(valuePart):
			return FormatHex
		}
		break
	}

	t := strings.TrimSpace(target)
	switch {
	case strings.HasPrefix(strings.ToLower(t), "0x"):
		return FormatHex
	case hex8RE.MatchString(t):
		return FormatHex
	default:
		if _, err := strconv.Atoi(t); err == nil {
			return FormatDecimal
		}
		return FormatText
	}
}

// CoerceTarget reshapes a raw preset target into the detected format. The
// returned string is the bare cell core; the bracket style of the existing
// cell is preserved by the setting itself on write.
func CoerceTarget(f ValueFormat, target string) string {
	t := strings.TrimSpace(target)
	low := strings.ToLower(t)
	switch f {
	case FormatDecimal:
		if low == "disable" || low == "disabled" {
			return "0"
		}
		if n, err := strconv.Atoi(t); err == nil {
			return strconv.Itoa(n)
		}
		return t
	case FormatBoolean:
		switch low {
		case "0", "disable", "disabled", "off":
			return "0"
		case "1", "enable", "enabled", "on":
			return "1"
		}
		return t
	case FormatHex:
		t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
		return strings.ToUpper(t)
	default:
		return t
	}
}
