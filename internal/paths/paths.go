// Package paths finds the project-state directory and names the canonical
// locations of every file warden persists.
package paths

import (
	"os"
	"path/filepath"
)

// StateDirName is the marker directory that identifies a warden project
// root, analogous to sow's ".sow".
const StateDirName = ".warden"

// Paths is the resolved set of canonical file locations for one project.
type Paths struct {
	Root string // the directory containing StateDirName (or cwd, if none found)
	Dir  string // Root/.warden
}

// Find walks up from startDir looking for a StateDirName directory. If none
// is found by the filesystem root, it falls back to startDir itself — this
// is never an error, since `warden init` is what creates the directory in
// the first place.
func Find(startDir string) (*Paths, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, StateDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return newPaths(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return newPaths(startDir), nil
		}
		dir = parent
	}
}

// FindFromCwd is Find rooted at the process's current working directory.
func FindFromCwd() (*Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Find(cwd)
}

func newPaths(root string) *Paths {
	return &Paths{Root: root, Dir: filepath.Join(root, StateDirName)}
}

// Exists reports whether the state directory has actually been created.
func (p *Paths) Exists() bool {
	info, err := os.Stat(p.Dir)
	return err == nil && info.IsDir()
}

// Active is todo.json: the active tasks plus project and focus state.
func (p *Paths) Active() string { return filepath.Join(p.Dir, "todo.json") }

// Archive is todo-archive.json.
func (p *Paths) Archive() string { return filepath.Join(p.Dir, "todo-archive.json") }

// Sequence is .sequence, the monotonic id allocator file.
func (p *Paths) Sequence() string { return filepath.Join(p.Dir, ".sequence") }

// AuditLog is the append-only JSONL audit trail.
func (p *Paths) AuditLog() string { return filepath.Join(p.Dir, "todo-log.jsonl") }

// Sessions is sessions.json.
func (p *Paths) Sessions() string { return filepath.Join(p.Dir, "sessions.json") }

// Binding is .current-session, the terminal/process session pointer.
func (p *Paths) Binding() string { return filepath.Join(p.Dir, ".current-session") }

// ProjectConfig is the project-scoped config.json.
func (p *Paths) ProjectConfig() string { return filepath.Join(p.Dir, "config.json") }

// Lifecycle is the per-epic RCSD manifest directory.
func (p *Paths) Lifecycle() string { return filepath.Join(p.Dir, "lifecycle") }

// LifecycleManifest is the RCSD manifest file for one epic.
func (p *Paths) LifecycleManifest(epicID string) string {
	return filepath.Join(p.Lifecycle(), epicID+".json")
}

// Backups is the directory backup snapshots are written into.
func (p *Paths) Backups() string { return filepath.Join(p.Dir, "backups") }

// GlobalConfigDir returns the user-global config directory
// (~/.config/warden), honoring $XDG_CONFIG_HOME when set.
func GlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "warden"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "warden"), nil
}

// GlobalConfig returns the path to the user-global config.json.
func GlobalConfig() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
