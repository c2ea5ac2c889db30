package store

import (
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

// MaxAuditLogBytes is the size threshold past which AppendAudit rotates the
// log before appending, per spec.md §6's file table (todo-log.jsonl is the
// one persistent file that isn't a whole-file JSON document).
const MaxAuditLogBytes = 10 * 1024 * 1024 // 10MiB

// AppendAudit appends one JSONL record to path, rotating the existing log to
// path+"."+<UTC timestamp, 20060102T150405Z> first if it has grown past
// MaxAuditLogBytes.
func AppendAudit(path string, entry model.AuditEntry) error {
	if err := rotateIfOversize(path); err != nil {
		return err
	}
	line, err := sonic.Marshal(entry)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

func rotateIfOversize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < MaxAuditLogBytes {
		return nil
	}
	rotated := path + "." + time.Now().UTC().Format("20060102T150405Z")
	return os.Rename(path, rotated)
}

// ReadAudit reads every JSONL record from path. A missing file yields an
// empty slice, not an error.
func ReadAudit(path string) ([]model.AuditEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []model.AuditEntry
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1
			if len(line) == 0 {
				continue
			}
			var e model.AuditEntry
			if err := sonic.Unmarshal(line, &e); err != nil {
				return nil, model.ErrResource("audit_parse_failed", exitcode.FileOperationFailure, true,
					"parse audit entry at byte offset %d: %v", start, err)
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}
