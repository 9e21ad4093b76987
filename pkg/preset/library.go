package preset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pelletier/go-toml/v2"
)

// Preset is one curated bundle of target values, keyed by setting display
// name. A setting may list several acceptable synonymous targets ("0",
// "Disable", "Disabled" all mean off); the resolver tries them in order.
type Preset struct {
	Name    string              `toml:"name"`
	Family  string              `toml:"family"` // "intel", "amd" or "" for any
	Tier    string              `toml:"tier"`   // "basic" or "advanced"
	Targets map[string][]string `toml:"targets"`
}

// Library is a loadable collection of presets. The vendor-specific knowledge
// base lives in data, not in source: a compact default ships embedded, and
// users can point the tool at their own TOML file with the same schema.
type Library struct {
	Presets []Preset `toml:"preset"`
}

//go:embed presets.toml
var defaultLibraryTOML []byte

// LoadDefault parses the embedded preset library.
func LoadDefault() (*Library, error) {
	return parseLibrary(defaultLibraryTOML)
}

// LoadFile parses a user-supplied preset library.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset library: %w", err)
	}
	return parseLibrary(data)
}

func parseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := toml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parsing preset library: %w", err)
	}
	return &lib, nil
}

// Find returns the preset with the given name for the given family, or nil.
// A preset with an empty family matches any family.
func (l *Library) Find(name, family string) *Preset {
	for i := range l.Presets {
		p := &l.Presets[i]
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		if p.Family == "" || family == "" || strings.EqualFold(p.Family, family) {
			return p
		}
	}
	return nil
}

// Names lists the preset names available for a family, sorted.
func (l *Library) Names(family string) []string {
	var out []string
	for _, p := range l.Presets {
		if family == "" || p.Family == "" || strings.EqualFold(p.Family, family) {
			out = append(out, p.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns up to three preset names close to the query, for "did you
// mean" output when Find comes up empty.
func (l *Library) Suggest(name, family string) []string {
	ranks := fuzzy.RankFindNormalizedFold(name, l.Names(family))
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}
