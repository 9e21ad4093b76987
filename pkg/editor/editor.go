// Package editor drives the interactive editing session and the one-shot
// "Name=Value" edits used by the CLI flags.
package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"nvramtool/pkg/compare"
	"nvramtool/pkg/export"
	"nvramtool/pkg/models"
	"nvramtool/pkg/preset"
	"nvramtool/pkg/render"
)

// Session holds everything an interactive run needs. The collection is owned
// by the session for its lifetime; loading a new file means a new session.
type Session struct {
	Collection *models.Collection
	Library    *preset.Library
	Family     string
	SavePath   string
	DryRun     bool
	Logger     *zap.Logger
}

// Run executes the interactive menu loop until the user exits.
func (se *Session) Run() error {
	pterm.DefaultHeader.WithFullWidth().Println("NVRAM Settings Editor")
	modified, total := se.Collection.Counts()
	render.Status(modified, total)

	for {
		choice, _ := pterm.DefaultInteractiveSelect.
			WithOptions([]string{
				"Search settings",
				"Edit setting",
				"Apply preset",
				"Show changes",
				"Reset all",
				"Save",
				"Exit",
			}).
			Show("Select an action:")

		switch choice {
		case "Search settings":
			se.search()
		case "Edit setting":
			se.editOne()
		case "Apply preset":
			se.applyPreset()
		case "Show changes":
			render.ChangesTable("Pending Changes", compare.DirtyChanges(se.Collection.All()))
		case "Reset all":
			se.resetAll()
		case "Save":
			if err := se.save(); err != nil {
				pterm.Error.Println(err)
			}
		case "Exit":
			return nil
		}
	}
}

func (se *Session) search() {
	query, _ := pterm.DefaultInteractiveTextInput.Show("Search for")
	indices := SearchIndices(se.Collection.All(), query)
	render.Matches(se.Collection.All(), indices)
}

// SearchIndices fuzzy-matches the query against setting names and returns
// their positions, best match first.
func SearchIndices(settings []*models.Setting, query string) []int {
	names := make([]string, len(settings))
	for i, s := range settings {
		names[i] = s.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	var out []int
	for _, r := range ranks {
		out = append(out, r.OriginalIndex)
	}
	return out
}

func (se *Session) editOne() {
	idxStr, _ := pterm.DefaultInteractiveTextInput.Show("Setting # (from list/search)")
	idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
	if err != nil || idx < 0 || idx >= se.Collection.Len() {
		pterm.Error.Println("Invalid setting number")
		return
	}
	s := se.Collection.At(idx)
	render.SettingDetail(s)

	if s.Kind == models.KindOptions {
		labels := make([]string, len(s.Options))
		for i, opt := range s.Options {
			labels[i] = fmt.Sprintf("[%s] %s", opt.Code, opt.Label)
		}
		picked, _ := pterm.DefaultInteractiveSelect.WithOptions(labels).Show("Select option:")
		for i, l := range labels {
			if l == picked {
				if se.DryRun {
					pterm.Warning.Println("DRY RUN - no change staged")
					return
				}
				if s.SetCurrentIndex(i) {
					se.Logger.Info("option changed",
						zap.String("setting", s.Name), zap.String("label", s.Options[i].Label))
					pterm.Success.Printf("%s -> %s\n", s.Name, s.Options[i].Label)
				} else {
					pterm.Info.Println("Already selected.")
				}
				return
			}
		}
		return
	}

	newVal, _ := pterm.DefaultInteractiveTextInput.Show("New value")
	if se.DryRun {
		pterm.Warning.Println("DRY RUN - no change staged")
		return
	}
	if s.SetValue(newVal) {
		se.Logger.Info("value changed", zap.String("setting", s.Name), zap.String("value", s.Value))
		pterm.Success.Printf("%s -> %s\n", s.Name, s.Value)
	} else {
		pterm.Warning.Println("Value unchanged (invalid or identical input).")
	}
}

func (se *Session) applyPreset() {
	names := se.Library.Names(se.Family)
	if len(names) == 0 {
		pterm.Warning.Println("Preset library is empty for this family.")
		return
	}
	picked, _ := pterm.DefaultInteractiveSelect.WithOptions(names).Show("Select preset:")
	p := se.Library.Find(picked, se.Family)
	if p == nil {
		return
	}

	targets := preset.Resolve(se.Collection.All(), []*preset.Preset{p})
	if se.DryRun {
		pterm.Warning.Printf("DRY RUN - preset %q matches %d setting(s)\n", p.Name, len(targets))
		return
	}
	changed := preset.ApplyTargets(targets)
	se.Logger.Info("preset applied",
		zap.String("preset", p.Name), zap.Int("matched", len(targets)), zap.Int("changed", changed))
	pterm.Success.Printf("Preset %q staged %d change(s) across %d matched setting(s).\n",
		p.Name, changed, len(targets))
}

func (se *Session) resetAll() {
	ok, _ := pterm.DefaultInteractiveConfirm.
		Show("Revert all settings, presets and applied changes back to load state?")
	if !ok {
		pterm.Info.Println("Cancelled.")
		return
	}
	n := se.Collection.Reset()
	pterm.Success.Printf("Reverted %d setting(s).\n", n)
}

func (se *Session) save() error {
	dirty := se.Collection.Dirty()
	content, err := export.Assemble(se.SavePath, time.Now(), dirty)
	if err != nil {
		return err
	}
	if se.DryRun {
		pterm.Warning.Printf("DRY RUN - would write %d block(s) to %s\n", len(dirty), se.SavePath)
		return nil
	}
	backup, err := export.Save(se.SavePath, content)
	if err != nil {
		return err
	}
	if backup != "" {
		pterm.Info.Printf("Backup created: %s\n", backup)
	}
	pterm.Success.Printf("Saved %s (%d edited settings).\n", se.SavePath, len(dirty))
	return nil
}

// ApplySetSpec applies one "Name=Value" edit. The name is matched by
// normalized key; options settings try the value as a label then as a code,
// value settings go through SetValue. Unknown names come back with fuzzy
// suggestions.
func ApplySetSpec(c *models.Collection, spec string) (bool, error) {
	name, value, ok := strings.Cut(spec, "=")
	if !ok {
		return false, fmt.Errorf("invalid -set %q, want \"Name=Value\"", spec)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	s := c.FindByName(name)
	if s == nil {
		suggestions := suggestNames(c.All(), name)
		if len(suggestions) > 0 {
			return false, fmt.Errorf("no setting named %q (did you mean: %s)",
				name, strings.Join(suggestions, ", "))
		}
		return false, fmt.Errorf("no setting named %q", name)
	}

	if s.Kind == models.KindOptions {
		if s.SetCurrentByLabel(value) || s.SetCurrentByCode(value) {
			return true, nil
		}
		return false, nil
	}
	return s.SetValue(value), nil
}

func suggestNames(settings []*models.Setting, query string) []string {
	names := make([]string, len(settings))
	for i, s := range settings {
		names[i] = s.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}
