// Package config resolves the layered warden configuration: CLI flag, env
// var, project file, global file, and schema defaults, in that precedence
// order, following spec.md §4.1.
package config

// Config is the fully-resolved configuration: every field always has a
// value, since Resolve always starts from Defaults() and overlays onto it.
type Config struct {
	Output               OutputConfig
	Archive              ArchiveConfig
	Validation           ValidationConfig
	Session              SessionConfig
	MultiSession         MultiSessionConfig
	Analyze              AnalyzeConfig
	Backups              BackupsConfig
	Defaults             DefaultsConfig
	LifecycleEnforcement LifecycleConfig
}

type OutputConfig struct {
	DefaultFormat string // "text" | "json"
	ShowColor     bool
	ShowUnicode   bool
}

type ArchiveConfig struct {
	Enabled               bool
	DaysUntilArchive      int
	MaxCompletedTasks     int
	PreserveRecentCount   int
	ArchiveOnSessionEnd   bool
	AutoArchiveOnComplete bool
}

type PhaseValidationConfig struct {
	PhaseAdvanceThreshold int // 0-100
	BlockOnCriticalTasks  bool
}

type ValidationConfig struct {
	StrictMode       bool
	ChecksumEnabled  bool
	MaxActiveTasks   int
	PhaseValidation  PhaseValidationConfig
}

type SessionConfig struct {
	RequireSessionNote bool
	AutoStartSession   bool
}

type MultiSessionConfig struct {
	Enabled               bool
	MaxConcurrentSessions int
	AllowScopeOverlap     bool
}

type HierarchyWeightConfig struct {
	ParentChild float64
	CrossEpic   float64
	CrossPhase  float64
}

type AnalyzeConfig struct {
	HierarchyWeight HierarchyWeightConfig
}

type BackupsConfig struct {
	MaxBackups int // 0 means unlimited
}

type DefaultsConfig struct {
	Priority string
	Phase    string
	Labels   []string
}

// LifecycleMode is the enforcement mode for the RCSD lifecycle gate.
type LifecycleMode string

const (
	LifecycleStrict   LifecycleMode = "strict"
	LifecycleAdvisory LifecycleMode = "advisory"
	LifecycleOff      LifecycleMode = "off"
)

type LifecycleConfig struct {
	Mode LifecycleMode
}

// Defaults returns the built-in schema defaults — the lowest-precedence
// layer in the five-source overlay.
func Defaults() Config {
	return Config{
		Output: OutputConfig{
			DefaultFormat: "text",
			ShowColor:     true,
			ShowUnicode:   true,
		},
		Archive: ArchiveConfig{
			Enabled:               true,
			DaysUntilArchive:      14,
			MaxCompletedTasks:     0,
			PreserveRecentCount:   10,
			ArchiveOnSessionEnd:   false,
			AutoArchiveOnComplete: false,
		},
		Validation: ValidationConfig{
			StrictMode:      false,
			ChecksumEnabled: true,
			MaxActiveTasks:  1,
			PhaseValidation: PhaseValidationConfig{
				PhaseAdvanceThreshold: 80,
				BlockOnCriticalTasks:  true,
			},
		},
		Session: SessionConfig{
			RequireSessionNote: false,
			AutoStartSession:   false,
		},
		MultiSession: MultiSessionConfig{
			Enabled:               false,
			MaxConcurrentSessions: 1,
			AllowScopeOverlap:     false,
		},
		Analyze: AnalyzeConfig{
			HierarchyWeight: HierarchyWeightConfig{
				ParentChild: 0.3,
				CrossEpic:   1.0,
				CrossPhase:  1.5,
			},
		},
		Backups: BackupsConfig{
			MaxBackups: 10,
		},
		Defaults: DefaultsConfig{
			Priority: "medium",
			Phase:    "",
			Labels:   nil,
		},
		LifecycleEnforcement: LifecycleConfig{
			Mode: LifecycleAdvisory,
		},
	}
}
