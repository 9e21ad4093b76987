package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"nvramtool/pkg/models"
)

// SettingsTable prints settings as a table: name, current value, kind and a
// state column marking dirty records.
func SettingsTable(settings []*models.Setting) {
	rows := pterm.TableData{{"#", "Setting", "Current", "Kind", "State"}}
	for i, s := range settings {
		state := ""
		if s.Dirty() {
			state = pterm.FgYellow.Sprint("modified")
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			s.Name,
			currentCell(s),
			s.Kind.String(),
			state,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// SettingDetail prints one setting with its full option list or value cell.
func SettingDetail(s *models.Setting) {
	pterm.DefaultSection.Println(s.Name)

	if s.Kind == models.KindOptions {
		rows := pterm.TableData{{"", "Code", "Label"}}
		for i, opt := range s.Options {
			mark := ""
			if i == s.CurrentIndex {
				mark = "*"
			}
			rows = append(rows, []string{mark, opt.Code, opt.Label})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		return
	}

	bounds := ""
	if s.ValueMin != nil && s.ValueMax != nil {
		bounds = fmt.Sprintf(" (range %d - %d)", *s.ValueMin, *s.ValueMax)
	}
	pterm.Info.Printf("Value: %s%s\n", currentCell(s), bounds)
}

func currentCell(s *models.Setting) string {
	if s.Kind == models.KindOptions {
		return s.CurrentLabel()
	}
	if s.ValueHasBrackets {
		return "<" + s.Value + ">"
	}
	return s.Value
}

// ChangeRow is one line of a diff display.
type ChangeRow struct {
	Name string
	Old  string
	New  string
}

// ChangesTable prints a set of changes as old → new rows.
func ChangesTable(title string, changes []ChangeRow) {
	if len(changes) == 0 {
		pterm.Info.Println("No changes.")
		return
	}
	pterm.DefaultSection.Println(title)
	rows := pterm.TableData{{"Setting", "Original", "Current"}}
	for _, c := range changes {
		rows = append(rows, []string{c.Name, c.Old, pterm.FgYellow.Sprint(c.New)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
	word := "changes"
	if len(changes) == 1 {
		word = "change"
	}
	pterm.Info.Printf("%d %s.\n", len(changes), word)
}

// Status prints the modified/total counter.
func Status(modified, total int) {
	pterm.Info.Printf("%d of %d settings modified.\n", modified, total)
}

// Matches prints search hits with their positional index, trimming long
// option lists to a summary cell.
func Matches(settings []*models.Setting, indices []int) {
	if len(indices) == 0 {
		pterm.Warning.Println("No settings matched.")
		return
	}
	rows := pterm.TableData{{"#", "Setting", "Current", "Options"}}
	for _, i := range indices {
		s := settings[i]
		rows = append(rows, []string{
			strconv.Itoa(i),
			s.Name,
			currentCell(s),
			optionsSummary(s),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func optionsSummary(s *models.Setting) string {
	if s.Kind != models.KindOptions {
		return ""
	}
	labels := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		labels = append(labels, opt.Label)
	}
	summary := strings.Join(labels, " | ")
	if len(summary) > 60 {
		summary = summary[:57] + "..."
	}
	return summary
}
