package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nvramtool/pkg/models"
	"nvramtool/pkg/reader"
)

func TestRewriteRoundTripIdentity(t *testing.T) {
	blocks := []string{
		"Setup Question = EIST\nOptions = *[00]Disabled\n          [01]Enabled",
		"Setup Question = EC Polling Period\nHelp String = Range is 1 - 255\nValue =<50>",
		"Setup Question = TDP Limit\nValue =45",
	}
	for _, block := range blocks {
		settings, _ := reader.Parse(block)
		require.Len(t, settings, 1)
		got := strings.Join(RewriteBlock(settings[0]), "\n")
		assert.Equal(t, block, got, "unmutated settings must reproduce their source")
	}
}

func TestRewriteMovesStar(t *testing.T) {
	input := `Setup Question = EIST
Options = *[00]Disabled
          [01]Enabled`

	settings, _ := reader.Parse(input)
	require.True(t, settings[0].SetCurrentByLabel("Enabled"))

	got := RewriteBlock(settings[0])
	assert.Equal(t, []string{
		"Setup Question = EIST",
		"Options = [00]Disabled",
		"          *[01]Enabled",
	}, got)
}

func TestRewriteBracketPreservation(t *testing.T) {
	settings, _ := reader.Parse("Setup Question = A\nValue =<42>")
	require.True(t, settings[0].SetValue("100"))
	assert.Contains(t, RewriteBlock(settings[0]), "Value =<100>")

	settings, _ = reader.Parse("Setup Question = B\nValue =42")
	require.True(t, settings[0].SetValue("100"))
	assert.Contains(t, RewriteBlock(settings[0]), "Value =100")
}

func TestRewriteKeepsComments(t *testing.T) {
	input := `Setup Question = Active LTR
Value =<80008000> // Move by 4 bits`

	settings, _ := reader.Parse(input)
	require.True(t, settings[0].SetValue("0"))

	got := RewriteBlock(settings[0])
	assert.Equal(t, "Value =<0> // Move by 4 bits", got[1])
}

func TestRewriteKeepsOptionIndent(t *testing.T) {
	input := "Setup Question = X\nOptions = [00]A\n\t[01]B"

	settings, _ := reader.Parse(input)
	require.True(t, settings[0].SetCurrentByCode("01"))

	got := RewriteBlock(settings[0])
	assert.Equal(t, "\t*[01]B", got[2], "tab indentation survives the rewrite")
}

func TestHeader(t *testing.T) {
	now := time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC)
	h := Header("nvram_tuned.txt", now)

	assert.Contains(t, h, "// Script File Name : nvram_tuned.txt")
	assert.Contains(t, h, "// Created on 08/23/26 at 14:05:09")
	assert.Contains(t, h, "HIICrc32= CC76FA3")
}

func TestAssembleDirtySetExactness(t *testing.T) {
	input := strings.Join([]string{
		"Setup Question = First",
		"Options = *[00]Disabled",
		"          [01]Enabled",
		"",
		"Setup Question = Second",
		"Value =<10>",
		"",
		"Setup Question = Third",
		"Value =<20>",
	}, "\n")

	settings, _ := reader.Parse(input)
	require.Len(t, settings, 3)
	require.True(t, settings[0].SetCurrentByLabel("Enabled"))
	require.True(t, settings[2].SetValue("99"))

	var dirtySettings []*models.Setting
	for _, s := range settings {
		if s.Dirty() {
			dirtySettings = append(dirtySettings, s)
		}
	}

	out, err := Assemble("nvram_tuned.txt", time.Now(), dirtySettings)
	require.NoError(t, err)

	assert.Contains(t, out, "Setup Question = First")
	assert.NotContains(t, out, "Setup Question = Second", "clean settings are absent")
	assert.Contains(t, out, "Setup Question = Third")
	assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Third"),
		"blocks keep their source order")
	assert.Contains(t, out, "Value =<99>")
}

func TestAssembleNoChanges(t *testing.T) {
	_, err := Assemble("nvram_tuned.txt", time.Now(), nil)
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestSaveCreatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvram_tuned.txt")

	backup, err := Save(path, "first")
	require.NoError(t, err)
	assert.Empty(t, backup, "no backup when the file is new")

	backup, err = Save(path, "second")
	require.NoError(t, err)
	require.NotEmpty(t, backup)
	assert.True(t, strings.HasPrefix(filepath.Base(backup), "nvram_tuned.txt.backup_"))

	old, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "first", string(old))

	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(cur))
}
