package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nvramtool/pkg/models"
)

const eistBlock = `Setup Question = EIST
Options = *[00]Disabled
          [01]Enabled`

func TestParseOptionsBlock(t *testing.T) {
	settings, warnings := Parse(eistBlock)
	require.Len(t, settings, 1)
	assert.Empty(t, warnings)

	s := settings[0]
	assert.Equal(t, "EIST", s.Name)
	assert.Equal(t, models.KindOptions, s.Kind)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, []models.Option{
		{Code: "00", Label: "Disabled"},
		{Code: "01", Label: "Enabled"},
	}, s.Options)
}

func TestParseValueBlockWithBounds(t *testing.T) {
	input := `Setup Question = EC Polling Period
Help String = Range is 1 - 255
Value =<50>`

	settings, warnings := Parse(input)
	require.Len(t, settings, 1)
	assert.Empty(t, warnings)

	s := settings[0]
	assert.Equal(t, "EC Polling Period", s.Name)
	assert.Equal(t, models.KindValue, s.Kind)
	assert.Equal(t, "50", s.Value)
	require.NotNil(t, s.ValueMin)
	require.NotNil(t, s.ValueMax)
	assert.Equal(t, 1, *s.ValueMin)
	assert.Equal(t, 255, *s.ValueMax)
	assert.True(t, s.ValueHasBrackets)
}

func TestParseUnbracketedValue(t *testing.T) {
	settings, _ := Parse("Setup Question = TDP Limit\nValue =45")
	require.Len(t, settings, 1)
	assert.Equal(t, "45", settings[0].Value)
	assert.False(t, settings[0].ValueHasBrackets)
}

func TestParseBareOpenerWithFollowingEntries(t *testing.T) {
	input := `Setup Question = Package C State Limit
Options =
          [00]C0/C1
         *[08]Auto`

	settings, _ := Parse(input)
	require.Len(t, settings, 1)

	s := settings[0]
	assert.Equal(t, models.KindOptions, s.Kind)
	require.Len(t, s.Options, 2)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, "Auto", s.CurrentLabel())
}

func TestParseOpenerWithoutEntries(t *testing.T) {
	input := `Setup Question = Strange
Options =
Value =<7>`

	settings, _ := Parse(input)
	require.Len(t, settings, 1)

	s := settings[0]
	assert.Equal(t, models.KindValue, s.Kind, "an opener that never gains an entry leaves the block value-kind")
	assert.Equal(t, "7", s.Value)
}

func TestParseMultipleBlocks(t *testing.T) {
	input := strings.Join([]string{
		eistBlock,
		"",
		"Setup Question = EC Polling Period",
		"Value =<64>",
		"",
		"Setup Question = Active LTR",
		"Value =<80008000>",
	}, "\n")

	settings, _ := Parse(input)
	require.Len(t, settings, 3)
	assert.Equal(t, "EIST", settings[0].Name)
	assert.Equal(t, "EC Polling Period", settings[1].Name)
	assert.Equal(t, "Active LTR", settings[2].Name)
	assert.Equal(t, "80008000", settings[2].Value)
}

func TestParseMultipleStarsWarns(t *testing.T) {
	input := `Setup Question = C-States
Options = *[00]Disabled
          *[01]Enabled`

	settings, warnings := Parse(input)
	require.Len(t, settings, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, "C-States", warnings[0].Setting)

	// Last star wins.
	assert.Equal(t, 1, settings[0].CurrentIndex)
}

func TestParseDegradedBlock(t *testing.T) {
	settings, _ := Parse("Setup Question = Mystery\nSomething unrecognizable")
	require.Len(t, settings, 1)

	s := settings[0]
	assert.Equal(t, models.KindValue, s.Kind)
	assert.Equal(t, "", s.Value)
}

func TestParsePreservesBlockLines(t *testing.T) {
	input := `Setup Question = EIST
Help String = Enable/Disable processor EIST
Options = *[01]Enabled	// Default
          [00]Disabled`

	settings, _ := Parse(input)
	require.Len(t, settings, 1)
	assert.Equal(t, strings.Split(input, "\n"), settings[0].BlockLines)
}

func TestParseOptionComments(t *testing.T) {
	om, ok := MatchOptionLine("         *[01]Enabled // default choice")
	require.True(t, ok)
	assert.True(t, om.Starred)
	assert.Equal(t, "01", om.Code)
	assert.Equal(t, "Enabled", om.Label)
	assert.Equal(t, "// default choice", om.Comment)
}

func TestMatchValueLine(t *testing.T) {
	tests := []struct {
		line      string
		raw       string
		bracketed bool
		ok        bool
	}{
		{"Value =<50>", "50", true, true},
		{"Value =50", "50", false, true},
		{"    Value = <80008000>  // move the needle", "80008000", true, true},
		{"Value =", "", false, false},
		{"Options = [00]X", "", false, false},
	}
	for _, tt := range tests {
		vm, ok := MatchValueLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.raw, vm.Raw, tt.line)
			assert.Equal(t, tt.bracketed, vm.Bracketed, tt.line)
		}
	}
}

func TestRangeHint(t *testing.T) {
	min, max, ok := RangeHint("Range is 1 - 255.")
	require.True(t, ok)
	assert.Equal(t, 1, min)
	assert.Equal(t, 255, max)

	_, _, ok = RangeHint("Range is 255 - 1.")
	assert.False(t, ok, "descending hints are discarded")

	_, _, ok = RangeHint("no numbers here")
	assert.False(t, ok)
}
