// Package sequence implements the monotonic task-id allocator described in
// spec.md §4.3: `next()` returns "T" + a zero-padded counter and persists
// the increment atomically; `check()`/`repair()` detect and correct drift
// against the actual ids present in the active and archive stores.
package sequence

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/store"
)

// MinWidth is the minimum zero-padded digit width for an allocated id.
// Counters beyond 999 simply grow wider ("T1000"), matching model.IDPattern
// (`^T\d{3,}$`, at least three digits with no upper bound).
const MinWidth = 3

var idDigits = regexp.MustCompile(`^T(\d+)$`)

// Allocator reads and advances a .sequence file.
type Allocator struct {
	path       string
	backupDir  string
	maxBackups int
}

// Open returns an allocator bound to path.
func Open(path, backupDir string, maxBackups int) *Allocator {
	return &Allocator{path: path, backupDir: backupDir, maxBackups: maxBackups}
}

// Load reads the current sequence file, defaulting to counter=1 if the file
// does not exist yet (a fresh project).
func (a *Allocator) Load() (model.SequenceFile, error) {
	var sf model.SequenceFile
	err := store.LoadJSON(a.path, &sf)
	if err == nil {
		return sf, nil
	}
	if ce, ok := err.(*model.CoreError); ok && ce.ExitCode == exitcode.NotFound {
		return model.SequenceFile{Counter: 1}, nil
	}
	return model.SequenceFile{}, err
}

func (a *Allocator) save(sf model.SequenceFile, now time.Time) error {
	sum, err := store.Checksum(sf.Counter)
	if err != nil {
		return err
	}
	sf.Checksum = sum
	return store.SaveJSON(a.path, sf, store.SaveOptions{
		BackupDir:  a.backupDir,
		MaxBackups: a.maxBackups,
		Now:        now,
	})
}

// Next allocates the next id, persisting the incremented counter.
func (a *Allocator) Next(now time.Time) (string, error) {
	sf, err := a.Load()
	if err != nil {
		return "", err
	}
	id := formatID(sf.Counter)
	sf.Counter++
	if err := a.save(sf, now); err != nil {
		return "", err
	}
	return id, nil
}

func formatID(counter int) string {
	s := strconv.Itoa(counter)
	for len(s) < MinWidth {
		s = "0" + s
	}
	return "T" + s
}

// DriftStatus is the outcome of Check.
type DriftStatus string

const (
	DriftNone DriftStatus = "ok"
	Drift     DriftStatus = "drift"
)

// Check compares the stored counter against max(existing ids)+1 across
// activeIDs and archiveIDs, per spec.md §4.3.
func (a *Allocator) Check(activeIDs, archiveIDs []string) (DriftStatus, error) {
	sf, err := a.Load()
	if err != nil {
		return "", err
	}
	want := maxCounter(activeIDs, archiveIDs) + 1
	if sf.Counter < want {
		return Drift, nil
	}
	return DriftNone, nil
}

// Repair resets the counter to max(existing ids)+1 and persists it,
// returning the audit details the caller should record (fromCounter,
// toCounter) — sequence itself does not write to the audit log; that is a
// cross-cutting concern owned by internal/mutate and internal/validate.
func (a *Allocator) Repair(activeIDs, archiveIDs []string, now time.Time) (details map[string]any, err error) {
	sf, err := a.Load()
	if err != nil {
		return nil, err
	}
	want := maxCounter(activeIDs, archiveIDs) + 1
	if sf.Counter >= want {
		return nil, nil
	}
	from := sf.Counter
	sf.Counter = want
	if err := a.save(sf, now); err != nil {
		return nil, err
	}
	return map[string]any{"fromCounter": from, "toCounter": want}, nil
}

func maxCounter(idLists ...[]string) int {
	highest := 0
	for _, ids := range idLists {
		for _, id := range ids {
			m := idDigits.FindStringSubmatch(id)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > highest {
				highest = n
			}
		}
	}
	return highest
}

// Validate reports whether id matches the canonical id shape.
func Validate(id string) error {
	if !model.IDPattern.MatchString(id) {
		return fmt.Errorf("invalid task id %q: must match T\\d{3,}", id)
	}
	return nil
}
