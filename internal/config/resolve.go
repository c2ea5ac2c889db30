package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

// EnvPrefix is the prefix every recognized environment variable carries.
const EnvPrefix = "WARDEN_"

// Scope names the target of a set() call.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// Resolve implements the five-source overlay from spec.md §4.1: CLI flag,
// env var, project config file, global config file, schema defaults — in
// that strict priority, highest first. projectPath/globalPath may point at
// files that don't exist yet; a missing file contributes nothing.
func Resolve(cliFlags map[string]string, environ []string, projectPath, globalPath string) (Config, error) {
	cfg := Defaults()

	global, err := loadOverlayFile(globalPath)
	if err != nil {
		return Config{}, err
	}
	cfg = global.Apply(cfg)

	project, err := loadOverlayFile(projectPath)
	if err != nil {
		return Config{}, err
	}
	cfg = project.Apply(cfg)

	envOverlay, err := overlayFromEnviron(environ)
	if err != nil {
		return Config{}, err
	}
	cfg = envOverlay.Apply(cfg)

	cliOverlay, err := overlayFromFlags(cliFlags)
	if err != nil {
		return Config{}, err
	}
	cfg = cliOverlay.Apply(cfg)

	return cfg, nil
}

func loadOverlayFile(path string) (*Overlay, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, model.ErrResource("config_read_failed", exitcode.ConfigError, true, "read config %s: %v", path, err)
	}
	var o Overlay
	if len(strings.TrimSpace(string(data))) == 0 {
		return &o, nil
	}
	if err := sonic.Unmarshal(data, &o); err != nil {
		return nil, model.ErrInput("config_parse_failed", "parse config %s: %v", path, err)
	}
	return &o, nil
}

func overlayFromFlags(flags map[string]string) (*Overlay, error) {
	o := &Overlay{}
	for path, value := range flags {
		f, ok := fieldByPath(path)
		if !ok {
			return nil, fmt.Errorf("unknown config option %q", path)
		}
		if err := f.set(o, value); err != nil {
			return nil, fmt.Errorf("config option %q: %w", path, err)
		}
	}
	return o, nil
}

func overlayFromEnviron(environ []string) (*Overlay, error) {
	o := &Overlay{}
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		values[strings.TrimPrefix(k, EnvPrefix)] = v
	}
	for _, f := range fields() {
		if v, ok := values[f.env]; ok {
			if err := f.set(o, v); err != nil {
				return nil, fmt.Errorf("env %s%s: %w", EnvPrefix, f.env, err)
			}
		}
	}
	return o, nil
}

// Get returns the resolved value of path as a string, per spec.md §4.1's
// get(path) contract.
func Get(cfg Config, path string) (string, error) {
	f, ok := fieldByPath(path)
	if !ok {
		return "", fmt.Errorf("unknown config option %q", path)
	}
	return f.get(cfg), nil
}

// Set validates value against path's constraints and persists it into the
// overlay file at targetPath (project or global scope — the caller resolves
// the scope to a path via internal/paths), per spec.md §4.1's
// set(path, value, scope) contract.
func Set(targetPath, path, value string) error {
	f, ok := fieldByPath(path)
	if !ok {
		return fmt.Errorf("unknown config option %q", path)
	}
	existing, err := loadOverlayFile(targetPath)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = &Overlay{}
	}
	if err := f.set(existing, value); err != nil {
		return fmt.Errorf("config option %q: %w", path, err)
	}
	data, err := sonic.MarshalIndent(existing, "", "  ")
	if err != nil {
		return model.ErrResource("config_marshal_failed", exitcode.ConfigError, false, "marshal config: %v", err)
	}
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return model.ErrResource("config_write_failed", exitcode.ConfigError, true, "write config %s: %v", targetPath, err)
	}
	return nil
}

// KnownPaths lists every recognized config option path, in table order.
func KnownPaths() []string {
	fs := fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.path
	}
	return out
}
