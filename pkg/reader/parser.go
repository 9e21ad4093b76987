package reader

import (
	"strings"

	"nvramtool/pkg/models"
)

// Warning flags a block the parser accepted despite malformed source, such
// as more than one starred option entry (last star wins).
type Warning struct {
	Setting string
	Message string
}

// Parse turns a full SCEWIN dump into settings, in appearance order. Blocks
// are delimited solely by the next `Setup Question =` line or end of input.
// Malformed blocks degrade to empty value-kind settings; the parser never
// fails and never drops a block.
func Parse(text string) ([]*models.Setting, []Warning) {
	lines := strings.Split(text, "\n")
	var out []*models.Setting
	var warnings []Warning

	i := 0
	for i < len(lines) {
		name, ok := MatchSetupQuestion(lines[i])
		if !ok {
			i++
			continue
		}

		block, next := collectBlock(lines, i)
		i = next

		setting, warns := parseBlock(name, block)
		out = append(out, setting)
		warnings = append(warnings, warns...)
	}
	return out, warnings
}

// collectBlock gathers the block starting at lines[start] up to (but not
// including) the next setup-question line or end of input.
func collectBlock(lines []string, start int) ([]string, int) {
	block := []string{lines[start]}
	i := start + 1
	for i < len(lines) {
		if _, ok := MatchSetupQuestion(lines[i]); ok {
			break
		}
		block = append(block, lines[i])
		i++
	}
	return block, i
}

func parseBlock(name string, block []string) (*models.Setting, []Warning) {
	var warnings []Warning

	// One scan for a value cell.
	var value *ValueMatch
	for _, ln := range block {
		if vm, ok := MatchValueLine(ln); ok {
			value = &vm
			break
		}
	}

	// One scan for an options list, inline or multi-line.
	options, currentIndex, starCount := parseOptions(block)

	if len(options) > 0 {
		if starCount > 1 {
			warnings = append(warnings, Warning{
				Setting: name,
				Message: "multiple starred option entries, last one taken as current",
			})
		}
		return models.NewOptionsSetting(name, block, options, currentIndex), warnings
	}

	if value != nil {
		min, max := parseRangeHint(block)
		return models.NewValueSetting(name, block, value.Raw, min, max, value.Bracketed), warnings
	}

	// Neither usable options nor a value cell: keep the block anyway.
	return models.NewValueSetting(name, block, "", nil, nil, true), warnings
}

// parseOptions finds the options opener and consumes option-entry lines that
// follow it. The first option may sit inline on the opener. The first option
// is index 0; any starred entry overrides the current index, last star wins.
func parseOptions(block []string) ([]models.Option, int, int) {
	var opts []models.Option
	currentIndex := 0
	starCount := 0

	for j := 0; j < len(block); j++ {
		if !MatchOptionsOpener(block[j]) {
			continue
		}

		_, tail, _ := SplitOpener(block[j])
		if om, ok := MatchOptionLine(strings.TrimSpace(tail)); ok {
			if om.Starred {
				currentIndex = 0
				starCount++
			}
			opts = append(opts, models.Option{Code: om.Code, Label: om.Label})
		}

		for k := j + 1; k < len(block); k++ {
			om, ok := MatchOptionLine(block[k])
			if !ok {
				break
			}
			if om.Starred {
				currentIndex = len(opts)
				starCount++
			}
			opts = append(opts, models.Option{Code: om.Code, Label: om.Label})
		}

		if len(opts) > 0 {
			break
		}
		// Opener with zero valid entries: keep scanning, a later opener may
		// carry one. The block stays value-kind if none ever does.
	}
	return opts, currentIndex, starCount
}

func parseRangeHint(block []string) (*int, *int) {
	for _, ln := range block {
		help, ok := MatchHelpString(ln)
		if !ok {
			continue
		}
		if min, max, ok := RangeHint(help); ok {
			return &min, &max
		}
	}
	return nil, nil
}
