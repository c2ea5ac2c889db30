package mutate

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/store"
)

// BackupMetadata is written as <name>.metadata.json in backups/safety,
// beside each safety backup snapshot rather than inside it.
type BackupMetadata struct {
	Name             string    `json:"name"`
	Timestamp        time.Time `json:"timestamp"`
	Files            []string  `json:"files"`
	TotalSize        int64     `json:"totalSize"`
	ValidationErrors []string  `json:"validationErrors,omitempty"`
}

// snapshotFiles is the four persistent files a safety backup captures,
// per spec.md §4.7. Sessions state and the lifecycle manifests are not
// included.
func (tx *Transaction) snapshotFiles() []string {
	return []string{
		tx.Paths.Active(),
		tx.Paths.Archive(),
		tx.Paths.ProjectConfig(),
		tx.Paths.AuditLog(),
	}
}

// Backup snapshots all four persistent files into a timestamped directory
// under backups/safety (or a single .tar.gz when compress is set), writing
// <name>.metadata.json beside it and evicting the oldest snapshots beyond
// backups.maxBackups (0 means unlimited).
func (tx *Transaction) Backup(name string, compress bool) (string, error) {
	now := tx.now()
	if name == "" {
		name = "backup-" + now.UTC().Format("20060102T150405")
	}
	safetyDir := filepath.Join(tx.Paths.Backups(), "safety")
	if err := os.MkdirAll(safetyDir, 0o755); err != nil {
		return "", model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "create %s: %v", safetyDir, err)
	}

	meta := BackupMetadata{Name: name, Timestamp: now}
	var dest string
	var err error
	if compress {
		dest = filepath.Join(safetyDir, name+".tar.gz")
		err = tx.writeCompressedSnapshot(dest, &meta)
	} else {
		dest = filepath.Join(safetyDir, name)
		err = tx.writeDirSnapshot(dest, &meta)
	}
	if err != nil {
		return "", err
	}

	metaPath := filepath.Join(safetyDir, name+".metadata.json")
	data, err := sonic.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", model.ErrResource("backup_failed", exitcode.FileOperationFailure, false, "marshal backup metadata: %v", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return "", model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "write %s: %v", metaPath, err)
	}

	if err := tx.evictSafetyBackups(safetyDir); err != nil {
		return "", err
	}

	entry := model.AuditEntry{
		ID:        auditID(now),
		Timestamp: now,
		Action:    "backup.create",
		Details:   map[string]any{"name": name, "path": dest},
	}
	if err := store.AppendAudit(tx.Paths.AuditLog(), entry); err != nil {
		return "", err
	}
	return dest, nil
}

// writeDirSnapshot copies every snapshot file into a fresh directory.
// Missing source files (e.g. todo-archive.json before the first archive)
// are skipped, not an error.
func (tx *Transaction) writeDirSnapshot(dir string, meta *BackupMetadata) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "create %s: %v", dir, err)
	}
	for _, src := range tx.snapshotFiles() {
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "read %s: %v", src, err)
		}
		name := filepath.Base(src)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "write %s: %v", name, err)
		}
		meta.Files = append(meta.Files, name)
		meta.TotalSize += int64(len(data))
	}
	return nil
}

// writeCompressedSnapshot tars and gzips every snapshot file into one
// archive at dest. No third-party archiving library appears in the
// retrieval pack's go.mod manifests, so this uses the standard library
// (see DESIGN.md).
func (tx *Transaction) writeCompressedSnapshot(dest string, meta *BackupMetadata) error {
	f, err := os.Create(dest)
	if err != nil {
		return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "create %s: %v", dest, err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	for _, src := range tx.snapshotFiles() {
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "read %s: %v", src, err)
		}
		name := filepath.Base(src)
		hdr := &tar.Header{Name: name, Size: int64(len(data)), Mode: 0o644}
		if err := tw.WriteHeader(hdr); err != nil {
			return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "write tar header for %s: %v", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "write tar body for %s: %v", name, err)
		}
		meta.Files = append(meta.Files, name)
		meta.TotalSize += int64(len(data))
	}
	return nil
}

func (tx *Transaction) evictSafetyBackups(safetyDir string) error {
	keep := tx.Config.Backups.MaxBackups
	if keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(safetyDir)
	if err != nil {
		return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "read %s: %v", safetyDir, err)
	}
	type snapshot struct {
		key     string
		modTime time.Time
	}
	byKey := map[string][]string{} // snapshot key -> every file belonging to it (dir/archive + metadata)
	var snapshots []snapshot
	seen := map[string]bool{}
	for _, e := range entries {
		base := filepath.Base(e.Name())
		key := trimSnapshotSuffix(base)
		byKey[key] = append(byKey[key], filepath.Join(safetyDir, base))
		if seen[key] {
			continue
		}
		seen[key] = true
		info, err := e.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot{key: key, modTime: info.ModTime()})
	}
	if len(snapshots) <= keep {
		return nil
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].modTime.Before(snapshots[j].modTime) })
	for _, s := range snapshots[:len(snapshots)-keep] {
		for _, path := range byKey[s.key] {
			if err := os.RemoveAll(path); err != nil {
				return model.ErrResource("backup_failed", exitcode.FileOperationFailure, true, "evict %s: %v", path, err)
			}
		}
	}
	return nil
}

func trimSnapshotSuffix(name string) string {
	for _, suffix := range []string{".tar.gz", ".metadata.json"} {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
