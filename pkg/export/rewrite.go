package export

import (
	"fmt"
	"strings"

	"nvramtool/pkg/models"
	"nvramtool/pkg/reader"
)

// RewriteBlock regenerates the textual lines of a modified setting. Lines the
// grammar does not claim pass through verbatim; recognized option entries and
// value cells are re-emitted with the current selection, original indentation
// and any trailing // comment preserved. Callers only invoke this for dirty
// settings; for a clean setting in canonical dump format the output equals
// the source lines.
func RewriteBlock(s *models.Setting) []string {
	if s.Kind == models.KindOptions {
		return rewriteOptionsBlock(s)
	}
	return rewriteValueBlock(s)
}

func rewriteOptionsBlock(s *models.Setting) []string {
	out := make([]string, 0, len(s.BlockLines))
	optionIdx := -1
	inOptions := false

	for _, ln := range s.BlockLines {
		if reader.MatchOptionsOpener(ln) {
			head, tail, ok := reader.SplitOpener(ln)
			if ok {
				if om, match := reader.MatchOptionLine(strings.TrimSpace(tail)); match {
					optionIdx = 0
					out = append(out, head+"= "+formatOption(om, s.CurrentIndex == 0))
					inOptions = true
					continue
				}
			}
			out = append(out, ln)
			inOptions = true
			continue
		}

		if inOptions {
			om, match := reader.MatchOptionLine(ln)
			if !match {
				out = append(out, ln)
				inOptions = false
				continue
			}
			optionIdx++
			indent := reader.Indent(ln)
			if indent == "" {
				indent = " "
			}
			out = append(out, indent+formatOption(om, optionIdx == s.CurrentIndex))
			continue
		}

		out = append(out, ln)
	}
	return out
}

func formatOption(om reader.OptionMatch, selected bool) string {
	star := ""
	if selected {
		star = "*"
	}
	line := fmt.Sprintf("%s[%s]%s", star, om.Code, om.Label)
	if om.Comment != "" {
		line += " " + om.Comment
	}
	return line
}

func rewriteValueBlock(s *models.Setting) []string {
	out := make([]string, 0, len(s.BlockLines))
	for _, ln := range s.BlockLines {
		vm, match := reader.MatchValueLine(ln)
		if !match {
			out = append(out, ln)
			continue
		}
		indent := reader.Indent(ln)
		var cell string
		if s.ValueHasBrackets {
			cell = indent + "Value =<" + s.Value + ">"
		} else {
			cell = indent + "Value =" + s.Value
		}
		if vm.Comment != "" {
			cell += " " + vm.Comment
		}
		out = append(out, cell)
	}
	return out
}
