// Package inspect summarizes how well a dump parsed: kind counts, blocks
// that degraded to the empty-value fallback, and parser warnings.
package inspect

import (
	"fmt"

	"github.com/pterm/pterm"

	"nvramtool/pkg/models"
	"nvramtool/pkg/reader"
)

// Report is the parse-quality summary of one loaded dump.
type Report struct {
	Total       int
	OptionsKind int
	ValueKind   int
	EmptyValue  int // blocks with neither usable options nor a value cell
	Bounded     int // value settings with a help-string range hint
	Bracketed   int
	Warnings    []reader.Warning
}

// Analyze builds a report from the parsed settings and parser warnings.
func Analyze(settings []*models.Setting, warnings []reader.Warning) Report {
	r := Report{Total: len(settings), Warnings: warnings}
	for _, s := range settings {
		if s.Kind == models.KindOptions {
			r.OptionsKind++
			continue
		}
		r.ValueKind++
		if s.Value == "" {
			r.EmptyValue++
		}
		if s.ValueMin != nil && s.ValueMax != nil {
			r.Bounded++
		}
		if s.ValueHasBrackets {
			r.Bracketed++
		}
	}
	return r
}

// Display prints the report.
func Display(r Report) {
	pterm.DefaultSection.Println("Dump Analysis")

	rows := pterm.TableData{
		{"Settings", fmt.Sprintf("%d", r.Total)},
		{"Options kind", fmt.Sprintf("%d", r.OptionsKind)},
		{"Value kind", fmt.Sprintf("%d", r.ValueKind)},
		{"Value with range bounds", fmt.Sprintf("%d", r.Bounded)},
		{"Value with <...> brackets", fmt.Sprintf("%d", r.Bracketed)},
		{"Degraded (no usable data)", fmt.Sprintf("%d", r.EmptyValue)},
	}
	_ = pterm.DefaultTable.WithData(rows).Render()

	if len(r.Warnings) == 0 {
		pterm.Success.Println("No parse warnings.")
		return
	}
	pterm.DefaultSection.Println("Parse Warnings")
	for _, w := range r.Warnings {
		pterm.Warning.Printf("%s: %s\n", w.Setting, w.Message)
	}
}
