// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package converter turns a project file into its sibling format. The
// target is the source path with the extension swapped; the whole
// target document is serialized in memory before the filesystem is
// touched, so a failing conversion never leaves partial output.
package converter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/mdnovx/internal/logger"
	"github.com/pdiddy/mdnovx/internal/mdnov"
	"github.com/pdiddy/mdnovx/internal/novx"
	"github.com/pdiddy/mdnovx/pkg/types"
)

// Format is one side of the conversion: an extension with its reader
// and writer.
type Format struct {
	Extension string
	Read      func(io.Reader) (*types.Novel, error)
	Write     func(io.Writer, *types.Novel) error
}

var (
	novxFormat  = Format{Extension: ".novx", Read: novx.Read, Write: novx.Write}
	mdnovFormat = Format{Extension: ".mdnov", Read: mdnov.Read, Write: mdnov.Write}
)

// pairs maps a source extension to its reader and the writer of the
// sibling format.
var pairs = map[string]struct{ source, target Format }{
	".novx":  {source: novxFormat, target: mdnovFormat},
	".mdnov": {source: mdnovFormat, target: novxFormat},
}

// Options control a conversion run.
type Options struct {
	// KeepBackup leaves the <target>.bak file behind after a
	// successful overwrite instead of deleting it.
	KeepBackup bool

	Logger *logger.Logger
}

// Run converts the file at sourcePath into the sibling format next to
// it and returns the target path. An unknown extension yields
// ErrUnsupportedExtension before anything is read or written.
func Run(sourcePath string, opts Options) (string, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	pair, ok := pairs[strings.ToLower(filepath.Ext(sourcePath))]
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedExtension, filepath.Ext(sourcePath))
	}
	targetPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + pair.target.Extension

	start := time.Now()
	log.ConversionStarted(sourcePath, targetPath)

	novel, err := readSource(sourcePath, pair.source)
	if err != nil {
		return "", err
	}
	sections := 0
	for _, ch := range novel.Chapters {
		sections += len(ch.Sections)
	}
	log.DocumentLoaded(sourcePath, len(novel.Chapters), sections)

	// Serialize the complete target before touching the filesystem.
	var buf bytes.Buffer
	if err := pair.target.Write(&buf, novel); err != nil {
		return "", err
	}

	if err := replaceFile(targetPath, buf.Bytes(), opts.KeepBackup, log); err != nil {
		return "", err
	}
	log.ConversionCompleted(targetPath, time.Since(start))
	return targetPath, nil
}

func readSource(path string, f Format) (*types.Novel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()
	return f.Read(file)
}

// replaceFile writes data to path, moving an existing file aside
// first and restoring it when the write fails.
func replaceFile(path string, data []byte, keepBackup bool, log *logger.Logger) error {
	backupPath := path + ".bak"
	backedUp := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("back up %q: %w", path, err)
		}
		backedUp = true
		log.BackupWritten(backupPath)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if backedUp {
			if restoreErr := os.Rename(backupPath, path); restoreErr == nil {
				log.BackupRestored(path)
			}
		}
		return fmt.Errorf("write %q: %w", path, err)
	}
	if backedUp && !keepBackup {
		if err := os.Remove(backupPath); err != nil {
			log.Warn("could not remove backup", "path", backupPath, "err", err)
		}
	}
	return nil
}
