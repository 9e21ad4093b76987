package export

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"nvramtool/pkg/models"
)

// ErrNoChanges is returned when nothing is dirty. It is an informational
// no-op condition, not a failure: a SCEWIN overlay with zero blocks would
// change nothing and should not be written.
var ErrNoChanges = errors.New("no modified settings to write")

// headerTemplate mirrors the banner AMISCE itself writes; SCEWIN expects it
// at the top of an import file.
const headerTemplate = `// Script File Name : %s
// Created on %s at %s
// AMISCE Utility. Ver 5.05.01.0002
// Copyright (c) 2021 AMI. All rights reserved.
HIICrc32= CC76FA3

`

// Header renders the fixed import-file banner.
func Header(fname string, now time.Time) string {
	return fmt.Sprintf(headerTemplate, fname, now.Format("01/02/06"), now.Format("15:04:05"))
}

// Assemble builds the output text: the banner followed by the rewritten
// blocks of only the dirty settings, each block followed by one blank
// separator line. Settings that are clean are entirely absent — the output
// is an overlay, not a re-export.
func Assemble(fname string, now time.Time, dirty []*models.Setting) (string, error) {
	if len(dirty) == 0 {
		return "", ErrNoChanges
	}
	var blocks []string
	for _, s := range dirty {
		blocks = append(blocks, RewriteBlock(s)...)
		blocks = append(blocks, "")
	}
	return Header(fname, now) + strings.Join(blocks, "\n"), nil
}

// CreateBackup copies an existing file aside with a timestamp suffix before
// it gets overwritten.
func CreateBackup(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	backupName := filename + ".backup_" + time.Now().Format("20060102_150405")
	if err := os.WriteFile(backupName, data, 0644); err != nil {
		return "", err
	}
	return backupName, nil
}

// Save writes the assembled content to path, backing up any existing file
// first. Returns the backup path when one was made.
func Save(path, content string) (string, error) {
	backup := ""
	if _, err := os.Stat(path); err == nil {
		b, err := CreateBackup(path)
		if err != nil {
			return "", fmt.Errorf("backing up %s: %w", path, err)
		}
		backup = b
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return backup, err
	}
	return backup, nil
}
