package store

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RotateBackup copies the existing file at path into backupDir, timestamped,
// then evicts the oldest backups beyond maxBackups (0 means unlimited). A
// missing source file is not an error — there is nothing to back up yet.
func RotateBackup(path, backupDir string, maxBackups int, now time.Time) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(path) + "." + now.UTC().Format("20060102T150405.000000000Z") + ".bak"
	if err := os.WriteFile(filepath.Join(backupDir, name), data, 0o644); err != nil {
		return err
	}
	if maxBackups <= 0 {
		return nil
	}
	return evictOldest(backupDir, filepath.Base(path), maxBackups)
}

func evictOldest(backupDir, prefix string, keep int) error {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return err
	}
	type backupFile struct {
		name    string
		modTime time.Time
	}
	var files []backupFile
	for _, e := range entries {
		if e.IsDir() || !isBackupOf(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, backupFile{name: e.Name(), modTime: info.ModTime()})
	}
	if len(files) <= keep {
		return nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(filepath.Join(backupDir, f.name)); err != nil {
			return err
		}
	}
	return nil
}

func isBackupOf(name, prefix string) bool {
	return len(name) > len(prefix) && name[:len(prefix)] == prefix
}
