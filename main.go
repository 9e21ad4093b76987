package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"nvramtool/pkg/compare"
	"nvramtool/pkg/config"
	"nvramtool/pkg/editor"
	"nvramtool/pkg/export"
	"nvramtool/pkg/inspect"
	"nvramtool/pkg/log"
	"nvramtool/pkg/models"
	"nvramtool/pkg/preset"
	"nvramtool/pkg/reader"
	"nvramtool/pkg/render"
	"nvramtool/pkg/scewin"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ", ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var sets multiFlag
	var (
		file        = flag.String("file", "", "NVRAM dump file to load")
		list        = flag.Bool("list", false, "List all settings")
		search      = flag.String("search", "", "Fuzzy-search settings by name")
		presetName  = flag.String("preset", "", "Apply a named preset")
		family      = flag.String("family", "", "CPU family for presets: intel or amd")
		listPresets = flag.Bool("presets", false, "List available presets")
		presetFile  = flag.String("preset-file", cfg.PresetFile, "TOML preset library (default: built-in)")
		save        = flag.String("save", "", "Write modified settings to this file")
		diffFile    = flag.String("diff", "", "Diff the loaded dump against another dump")
		doInspect   = flag.Bool("inspect", false, "Show parse-quality report for the loaded dump")
		doImport    = flag.Bool("import", false, "Write changes next to SCEWIN and import them into the BIOS")
		doExport    = flag.Bool("export", false, "Export the current NVRAM via SCEWIN, then load it")
		interactive = flag.Bool("interactive", false, "Start the interactive editing session")
		dryRun      = flag.Bool("dry-run", false, "Show what would change without staging or writing anything")
		scewinPath  = flag.String("scewin", cfg.ScewinPath, "Path to SCEWIN_64.exe")
		logLevel    = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Var(&sets, "set", `Apply one "Name=Value" change (repeatable)`)
	flag.Parse()

	logger, err := log.New(log.Options{Level: *logLevel, FilePath: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	lib, err := loadLibrary(*presetFile)
	if err != nil {
		return err
	}

	if *listPresets {
		listPresetLibrary(lib, *family)
		return nil
	}

	runner := scewin.NewRunner(*scewinPath, cfg.ScewinTimeout, logger)

	if *doExport {
		return exportAndLoad(runner, cfg, logger)
	}

	if *file == "" {
		fmt.Println("Usage: nvramtool -file <nvram.txt> [-list | -search <q> | -set \"Name=Value\" | -preset <name> | -diff <other> | -inspect | -interactive] [-save <out>] [-import] [-dry-run]")
		flag.PrintDefaults()
		return errors.New("no input file")
	}

	coll, warnings, err := loadDump(*file, logger)
	if err != nil {
		return err
	}

	switch {
	case *doInspect:
		inspect.Display(inspect.Analyze(coll.All(), warnings))
		return nil
	case *list:
		render.SettingsTable(coll.All())
		return nil
	case *search != "":
		render.Matches(coll.All(), editor.SearchIndices(coll.All(), *search))
		return nil
	case *diffFile != "":
		return diffDumps(coll, *diffFile, logger)
	case *interactive:
		sess := &editor.Session{
			Collection: coll,
			Library:    lib,
			Family:     *family,
			SavePath:   savePath(*save, *file),
			DryRun:     *dryRun,
			Logger:     logger,
		}
		return sess.Run()
	}

	// Batch mode: stage -set and -preset changes, then report, save or import.
	staged := 0
	for _, spec := range sets {
		changed, err := editor.ApplySetSpec(coll, spec)
		if err != nil {
			return err
		}
		if changed {
			staged++
		}
	}

	if *presetName != "" {
		n, err := applyPreset(coll, lib, *presetName, *family, *dryRun, logger)
		if err != nil {
			return err
		}
		staged += n
	}

	render.ChangesTable("Staged Changes", compare.DirtyChanges(coll.All()))
	modified, total := coll.Counts()
	render.Status(modified, total)
	logger.Info("batch complete", zap.Int("staged", staged), zap.Int("dirty", modified))

	if *dryRun {
		pterm.Warning.Println("DRY RUN - nothing written.")
		return nil
	}

	if *doImport {
		return importChanges(coll, runner, logger)
	}

	if *save != "" {
		return saveChanges(coll, *save)
	}

	return nil
}

func loadLibrary(path string) (*preset.Library, error) {
	if path == "" {
		return preset.LoadDefault()
	}
	return preset.LoadFile(path)
}

func loadDump(path string, logger *zap.Logger) (*models.Collection, []reader.Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	settings, warnings := reader.Parse(string(data))
	logger.Info("dump loaded",
		zap.String("file", path),
		zap.Int("settings", len(settings)),
		zap.Int("warnings", len(warnings)))
	for _, w := range warnings {
		logger.Warn("parse warning", zap.String("setting", w.Setting), zap.String("message", w.Message))
	}
	return models.NewCollection(settings), warnings, nil
}

func listPresetLibrary(lib *preset.Library, family string) {
	names := lib.Names(family)
	if len(names) == 0 {
		pterm.Warning.Println("No presets available for this family.")
		return
	}
	rows := pterm.TableData{{"Preset", "Family", "Tier", "Targets"}}
	for _, name := range names {
		p := lib.Find(name, family)
		fam := p.Family
		if fam == "" {
			fam = "any"
		}
		rows = append(rows, []string{p.Name, fam, p.Tier, fmt.Sprintf("%d", len(p.Targets))})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func applyPreset(coll *models.Collection, lib *preset.Library, name, family string, dryRun bool, logger *zap.Logger) (int, error) {
	p := lib.Find(name, family)
	if p == nil {
		if suggestions := lib.Suggest(name, family); len(suggestions) > 0 {
			return 0, fmt.Errorf("no preset named %q (did you mean: %s)",
				name, strings.Join(suggestions, ", "))
		}
		return 0, fmt.Errorf("no preset named %q", name)
	}

	targets := preset.Resolve(coll.All(), []*preset.Preset{p})
	if dryRun {
		pterm.Info.Printf("Preset %q matches %d setting(s).\n", p.Name, len(targets))
		for _, t := range targets {
			pterm.Printf("  %s (targets: %s)\n", t.Setting.Name, strings.Join(t.Values, ", "))
		}
		return 0, nil
	}

	changed := preset.ApplyTargets(targets)
	logger.Info("preset applied",
		zap.String("preset", p.Name), zap.Int("matched", len(targets)), zap.Int("changed", changed))
	pterm.Success.Printf("Preset %q staged %d change(s) across %d matched setting(s).\n",
		p.Name, changed, len(targets))
	return changed, nil
}

func diffDumps(coll *models.Collection, otherPath string, logger *zap.Logger) error {
	other, _, err := loadDump(otherPath, logger)
	if err != nil {
		return err
	}
	render.ChangesTable("Differences", compare.Files(coll.All(), other.All()))
	return nil
}

func saveChanges(coll *models.Collection, out string) error {
	dirty := coll.Dirty()
	content, err := export.Assemble(filepath.Base(out), time.Now(), dirty)
	if err != nil {
		if errors.Is(err, export.ErrNoChanges) {
			pterm.Info.Println("No modified settings; nothing to write.")
			return nil
		}
		return err
	}
	backup, err := export.Save(out, content)
	if err != nil {
		return err
	}
	if backup != "" {
		pterm.Info.Printf("Backup created: %s\n", backup)
	}
	pterm.Success.Printf("Saved %s (%d edited settings).\n", out, len(dirty))
	return nil
}

// importChanges writes the overlay beside SCEWIN and feeds it into the BIOS.
func importChanges(coll *models.Collection, runner *scewin.Runner, logger *zap.Logger) error {
	dirty := coll.Dirty()
	overlay := filepath.Join(filepath.Dir(runner.ExePath), config.TunedNvramName)
	content, err := export.Assemble(config.TunedNvramName, time.Now(), dirty)
	if err != nil {
		if errors.Is(err, export.ErrNoChanges) {
			pterm.Info.Println("No modified settings; nothing to import.")
			return nil
		}
		return err
	}
	if _, err := export.Save(overlay, content); err != nil {
		return err
	}
	logger.Info("overlay written", zap.String("path", overlay), zap.Int("settings", len(dirty)))

	res, err := runner.Import(context.Background(), overlay)
	if err != nil {
		return scewinError("import", err)
	}
	pterm.Success.Printf("Imported %d setting(s) into NVRAM.\n", len(dirty))
	if res.Stdout != "" {
		logger.Debug("scewin output", zap.String("stdout", res.Stdout))
	}
	pterm.Warning.Println("Reboot required for changes to take effect.")
	return nil
}

// exportAndLoad dumps the current NVRAM via SCEWIN and shows a parse report.
func exportAndLoad(runner *scewin.Runner, cfg *config.Config, logger *zap.Logger) error {
	spinner, _ := pterm.DefaultSpinner.Start("Exporting NVRAM via SCEWIN...")
	if _, err := runner.Export(context.Background(), cfg.NvramFile); err != nil {
		spinner.Fail("Export failed")
		return scewinError("export", err)
	}
	dump := filepath.Join(filepath.Dir(runner.ExePath), cfg.NvramFile)
	spinner.Success("NVRAM exported to " + dump)

	coll, warnings, err := loadDump(dump, logger)
	if err != nil {
		return err
	}
	inspect.Display(inspect.Analyze(coll.All(), warnings))
	return nil
}

// scewinError maps the runner's failure kinds to actionable messages.
func scewinError(op string, err error) error {
	var exitErr *scewin.ExitError
	switch {
	case errors.Is(err, scewin.ErrExeNotFound):
		return fmt.Errorf("SCEWIN executable not found; set SCEWIN_PATH or -scewin (%w)", err)
	case errors.Is(err, scewin.ErrInputNotFound):
		return fmt.Errorf("scewin %s: %w", op, err)
	case errors.Is(err, scewin.ErrTimeout):
		return fmt.Errorf("scewin %s: %w (is the tool waiting for elevation?)", op, err)
	case errors.As(err, &exitErr):
		return fmt.Errorf("scewin %s failed with exit code %d: %s",
			op, exitErr.Result.ExitCode, strings.TrimSpace(exitErr.Result.Stderr))
	default:
		return fmt.Errorf("scewin %s: %w", op, err)
	}
}

func savePath(save, file string) string {
	if save != "" {
		return save
	}
	return file
}
